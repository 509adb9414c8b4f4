package mdmd

// RenderContext holds the mutable state of a single render: the package
// registry and the paragraph suppression stack. A RenderContext must not
// be shared between concurrent renders.
type RenderContext struct {
	Packages *Packages

	images   ImageRewriter
	suppress []bool
}

// Option configures a RenderContext.
type Option func(*RenderContext)

// WithImageReferenceWidth sets the pixel width that maps to a scale of 1.0
// for <img> widths given without a percent sign. Non-positive values keep
// DefaultReferenceWidth.
func WithImageReferenceWidth(px float64) Option {
	return func(c *RenderContext) {
		c.images.ReferenceWidth = px
	}
}

// NewRenderContext returns a context with an empty registry and a
// suppression stack holding only its bottom sentinel.
func NewRenderContext(opts ...Option) *RenderContext {
	c := &RenderContext{
		Packages: &Packages{},
		suppress: []bool{false},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Suppressed reports whether paragraphs currently render without their
// trailing newline, which is the case directly inside a tight list.
func (c *RenderContext) Suppressed() bool {
	if len(c.suppress) == 0 {
		return false
	}
	return c.suppress[len(c.suppress)-1]
}

// Depth returns the size of the suppression stack, including the sentinel.
func (c *RenderContext) Depth() int {
	return len(c.suppress)
}

func (c *RenderContext) push(suppress bool) {
	c.suppress = append(c.suppress, suppress)
}

// pop never removes the sentinel.
func (c *RenderContext) pop() {
	if len(c.suppress) > 1 {
		c.suppress = c.suppress[:len(c.suppress)-1]
	}
}
