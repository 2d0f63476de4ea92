package scene

import "github.com/philipparndt/gobim/pkg/geometry"

// Renderer is the clipping state of the underlying renderer. The
// section-cutting services write this state directly; drawing code reads
// it each frame.
type Renderer struct {
	// ClippingPlanes is the global clipping list. The cutting services
	// overwrite it with a single plane rather than accumulating.
	ClippingPlanes []*geometry.Plane

	// LocalClippingEnabled must be true for material-level clipping
	// planes to take effect.
	LocalClippingEnabled bool
}

// NewRenderer creates a renderer with no clipping state.
func NewRenderer() *Renderer {
	return &Renderer{}
}
