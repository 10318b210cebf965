package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeldKeysSurviveFrames(t *testing.T) {
	in := New()
	in.Push(Event{Type: EventKeyDown, Key: KeyW})
	assert.True(t, in.IsKeyPressed(KeyW))
	assert.True(t, in.IsKeyDown(KeyW))

	in.BeginFrame()
	assert.False(t, in.IsKeyPressed(KeyW), "press is reported for one frame")
	assert.True(t, in.IsKeyDown(KeyW), "held until released")

	in.Push(Event{Type: EventKeyUp, Key: KeyW})
	assert.False(t, in.IsKeyDown(KeyW))
	assert.Len(t, in.Events(), 1)
}

func TestUnknownKeysIgnored(t *testing.T) {
	in := New()
	in.Push(Event{Type: EventKeyDown, Key: KeyUnknown})
	in.Push(Event{Type: EventKeyDown, Key: Key(1000)})
	assert.False(t, in.IsKeyDown(KeyUnknown))
	assert.False(t, in.IsKeyDown(Key(1000)))
	assert.Equal(t, "Unknown", Key(1000).String())
	assert.Equal(t, "F12", KeyF12.String())
}

func TestQuit(t *testing.T) {
	in := New()
	assert.False(t, in.Quit())
	in.Push(Event{Type: EventQuit})
	in.BeginFrame()
	assert.True(t, in.Quit())
}

func TestMouseTracker(t *testing.T) {
	var m MouseTracker

	dx, dy := m.Offset(400, 300)
	assert.Zero(t, dx, "first position only primes")
	assert.Zero(t, dy)

	dx, dy = m.Offset(410, 280)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(20), dy, "moving up yields a positive offset")

	m.Reset()
	dx, dy = m.Offset(0, 0)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}
