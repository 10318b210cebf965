package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// buildVertices zips flat position/normal/texcoord streams into vertices.
// positions must hold 3n values; normals 3n or none; texcoords 2n or none.
func buildVertices(positions, normals, texcoords []float32) ([]Vertex, string) {
	if len(positions)%3 != 0 {
		return nil, "position stream length is not a multiple of 3"
	}
	n := len(positions) / 3
	if len(normals) != 0 && len(normals) != 3*n {
		return nil, "normal stream does not match position stream"
	}
	if len(texcoords) != 0 && len(texcoords) != 2*n {
		return nil, "texcoord stream does not match position stream"
	}

	vertices := make([]Vertex, n)
	for i := range vertices {
		v := &vertices[i]
		copy(v.Position[:], positions[3*i:3*i+3])
		if len(normals) != 0 {
			copy(v.Normal[:], normals[3*i:3*i+3])
		}
		if len(texcoords) != 0 {
			copy(v.TexCoords[:], texcoords[2*i:2*i+2])
		}
	}
	return vertices, ""
}

// checkIndices verifies indices form whole triangles inside the vertex list.
func checkIndices(indices []uint32, vertexCount int) string {
	if len(indices)%3 != 0 {
		return "index count is not a multiple of 3"
	}
	for _, idx := range indices {
		if int(idx) >= vertexCount {
			return "index out of range"
		}
	}
	return ""
}

// GenerateNormals sets area-weighted per-vertex normals from the triangles.
func GenerateNormals(vertices []Vertex, indices []uint32) {
	acc := make([]mgl32.Vec3, len(vertices))
	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		p0 := mgl32.Vec3(vertices[i0].Position)
		e1 := mgl32.Vec3(vertices[i1].Position).Sub(p0)
		e2 := mgl32.Vec3(vertices[i2].Position).Sub(p0)
		// Unnormalized cross product weights by triangle area
		n := e1.Cross(e2)
		acc[i0] = acc[i0].Add(n)
		acc[i1] = acc[i1].Add(n)
		acc[i2] = acc[i2].Add(n)
	}
	for i := range vertices {
		vertices[i].Normal = normalize(acc[i], mgl32.Vec3{0, 1, 0})
	}
}

// ComputeTangents accumulates per-triangle tangents and bitangents from the
// texture coordinate gradients and orthogonalizes them against the normal.
func ComputeTangents(vertices []Vertex, indices []uint32) {
	tan := make([]mgl32.Vec3, len(vertices))
	bitan := make([]mgl32.Vec3, len(vertices))

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		v0, v1, v2 := &vertices[i0], &vertices[i1], &vertices[i2]

		e1 := mgl32.Vec3(v1.Position).Sub(mgl32.Vec3(v0.Position))
		e2 := mgl32.Vec3(v2.Position).Sub(mgl32.Vec3(v0.Position))
		du1, dv1 := v1.TexCoords[0]-v0.TexCoords[0], v1.TexCoords[1]-v0.TexCoords[1]
		du2, dv2 := v2.TexCoords[0]-v0.TexCoords[0], v2.TexCoords[1]-v0.TexCoords[1]

		det := du1*dv2 - du2*dv1
		if det > -1e-8 && det < 1e-8 {
			continue
		}
		f := 1 / det
		tangent := e1.Mul(dv2).Sub(e2.Mul(dv1)).Mul(f)
		bitangent := e2.Mul(du1).Sub(e1.Mul(du2)).Mul(f)

		for _, i := range [3]uint32{i0, i1, i2} {
			tan[i] = tan[i].Add(tangent)
			bitan[i] = bitan[i].Add(bitangent)
		}
	}

	for i := range vertices {
		n := mgl32.Vec3(vertices[i].Normal)
		// Gram-Schmidt against the normal
		t := tan[i].Sub(n.Mul(n.Dot(tan[i])))
		t = normalize(t, fallbackTangent(n))
		b := bitan[i]
		if b.Len() < 1e-6 {
			b = n.Cross(t)
		}
		vertices[i].Tangent = t
		vertices[i].Bitangent = normalize(b, n.Cross(t))
	}
}

// fallbackTangent returns any unit vector perpendicular to n.
func fallbackTangent(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if n.X() > 0.9 || n.X() < -0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return normalize(axis.Sub(n.Mul(n.Dot(axis))), mgl32.Vec3{1, 0, 0})
}

// weldTolerance is the grid size under which two positions count as one.
const weldTolerance = 1e-3

func weldKey(p [3]float32) [3]int32 {
	var k [3]int32
	for i, c := range p {
		k[i] = int32(math32.Floor(c/weldTolerance + 0.5))
	}
	return k
}

// SmoothNormals gives every vertex the normalized sum of the normals of all
// vertices welded to its position, hiding the seams left where the OBJ
// splits a position across texture coordinates. A vertex whose welded sum
// cancels out keeps its own normal.
func SmoothNormals(vertices []Vertex) {
	sums := make(map[[3]int32]mgl32.Vec3, len(vertices))
	for _, v := range vertices {
		k := weldKey(v.Position)
		sums[k] = sums[k].Add(v.Normal)
	}
	for i, v := range vertices {
		vertices[i].Normal = normalize(sums[weldKey(v.Position)], v.Normal)
	}
}

// ComputeBounds returns the bounding box of the vertex positions.
func ComputeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for i := 1; i < len(vertices); i++ {
		updateBounds(&b, vertices[i].Position)
	}
	return b
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func normalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-6 {
		return fallback
	}
	return v.Normalize()
}
