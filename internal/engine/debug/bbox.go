package debug

// BoxLineVertexCount is the number of vertices BoxLines returns.
const BoxLineVertexCount = 24

// boxEdges pairs corner indices; bit 0 of a corner selects x, bit 1 y and
// bit 2 z from the high bound.
var boxEdges = [12][2]int{
	{0, 1}, {1, 5}, {5, 4}, {4, 0}, // bottom
	{2, 3}, {3, 7}, {7, 6}, {6, 2}, // top
	{0, 2}, {1, 3}, {5, 7}, {4, 6}, // sides
}

// BoxLines returns line-list positions for the twelve edges of the box
// spanning lo and hi, grown by padding on every side.
func BoxLines(lo, hi [3]float32, padding float32) []float32 {
	corner := func(i int) [3]float32 {
		var c [3]float32
		for axis := range 3 {
			if i&(1<<axis) != 0 {
				c[axis] = hi[axis] + padding
			} else {
				c[axis] = lo[axis] - padding
			}
		}
		return c
	}
	out := make([]float32, 0, BoxLineVertexCount*3)
	for _, e := range boxEdges {
		a, b := corner(e[0]), corner(e[1])
		out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
	}
	return out
}
