package framebuffer

import "fmt"

// G-buffer attachment order.
const (
	GPosition = iota
	GNormal
	GAlbedoSpec
	gbufferAttachments
)

// GBuffer is the deferred-shading geometry target: view or world position,
// normal, and albedo with specular intensity in alpha.
type GBuffer struct {
	*Framebuffer
}

// NewGBuffer creates a G-buffer with float attachments and nearest filtering.
func NewGBuffer(width, height int32) (*GBuffer, error) {
	fb, err := New(width, height, Options{
		HDR:              true,
		Nearest:          true,
		ClampToEdge:      true,
		ColorAttachments: gbufferAttachments,
	})
	if err != nil {
		return nil, fmt.Errorf("creating g-buffer: %w", err)
	}
	return &GBuffer{Framebuffer: fb}, nil
}

// Position returns the position attachment.
func (g *GBuffer) Position() uint32 { return g.colorTextures[GPosition] }

// Normal returns the normal attachment.
func (g *GBuffer) Normal() uint32 { return g.colorTextures[GNormal] }

// AlbedoSpec returns the albedo/specular attachment.
func (g *GBuffer) AlbedoSpec() uint32 { return g.colorTextures[GAlbedoSpec] }

// PingPong is a pair of color-only float targets used for separable blurs.
type PingPong struct {
	targets [2]*Framebuffer
}

// NewPingPong creates both targets. With red set they hold one channel.
func NewPingPong(width, height int32, red bool) (*PingPong, error) {
	p := &PingPong{}
	for i := range p.targets {
		fb, err := New(width, height, Options{
			HDR:         true,
			Red:         red,
			ClampToEdge: true,
			NoDepth:     true,
		})
		if err != nil {
			p.Destroy()
			return nil, fmt.Errorf("creating ping-pong target %d: %w", i, err)
		}
		p.targets[i] = fb
	}
	return p, nil
}

// Target returns target i (0 or 1).
func (p *PingPong) Target(i int) *Framebuffer { return p.targets[i&1] }

// Run performs passes alternating between the two targets. Each pass is
// called with its target bound, the direction flag (true on even passes)
// and the texture to read: input on the first pass, then the previous
// pass's output. It returns the texture written last.
func (p *PingPong) Run(passes int, input uint32, pass func(horizontal bool, src uint32)) uint32 {
	src := input
	horizontal := true
	for i := 0; i < passes; i++ {
		target := p.targets[i&1]
		target.Bind()
		pass(horizontal, src)
		src = target.ColorTexture()
		horizontal = !horizontal
	}
	p.targets[0].Unbind()
	return src
}

// Resize resizes both targets.
func (p *PingPong) Resize(width, height int32) {
	for _, t := range p.targets {
		t.Resize(width, height)
	}
}

// Destroy releases both targets.
func (p *PingPong) Destroy() {
	for i, t := range p.targets {
		if t != nil {
			t.Destroy()
			p.targets[i] = nil
		}
	}
}
