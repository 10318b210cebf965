package input

// MouseTracker turns absolute cursor positions into per-event offsets.
// The first position only primes the tracker, so a cursor that starts far
// from the window center does not jerk the camera.
type MouseTracker struct {
	lastX, lastY float64
	primed       bool
}

// Offset returns the movement since the previous position. The y offset is
// reversed since window coordinates grow downward.
func (m *MouseTracker) Offset(x, y float64) (dx, dy float32) {
	if !m.primed {
		m.lastX, m.lastY = x, y
		m.primed = true
	}
	dx = float32(x - m.lastX)
	dy = float32(m.lastY - y)
	m.lastX, m.lastY = x, y
	return dx, dy
}

// Reset makes the next position prime the tracker again, e.g. after the
// cursor was released and recaptured.
func (m *MouseTracker) Reset() {
	m.primed = false
}
