// Package anim binds glyphs carrying an animation tag to per-frame drivers.
package anim

import (
	"time"

	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/layout"
)

// Driver animates the glyphs bound to one animation tag. Every method returns
// whether any bound glyph changed and needs a redraw.
type Driver interface {
	// Tag is the name used in <anim=name>.
	Tag() string
	// Attach adds a glyph at the end of the bound set.
	Attach(g *glyph.Glyph) bool
	// Reset restores every override the driver applied and empties the set.
	Reset() bool
	// Tick advances the animation by dt.
	Tick(dt time.Duration) bool
}

// Restarter is implemented by drivers whose progress must start over when
// the bound glyphs change, such as the typewriter.
type Restarter interface {
	Running() bool
	Start() bool
	Stop() bool
}

// Bind re-associates the glyphs of a page with drivers. Each driver is reset
// first, then receives, in traversal order, every glyph whose style chain
// contains its tag. A running restarter is stopped before the reset and
// started again afterwards, discarding partial progress.
func Bind(page *layout.Block, drivers []Driver) bool {
	redraw := false
	restart := make([]bool, len(drivers))
	for i, d := range drivers {
		if r, ok := d.(Restarter); ok && r.Running() {
			restart[i] = true
			redraw = r.Stop() || redraw
		}
		redraw = d.Reset() || redraw
	}
	if page != nil {
		for _, g := range page.Glyphs() {
			for _, d := range drivers {
				if g.Style().HasAnim(d.Tag()) {
					redraw = d.Attach(g) || redraw
				}
			}
		}
	}
	for i, d := range drivers {
		if restart[i] {
			redraw = d.(Restarter).Start() || redraw
		}
	}
	return redraw
}

// Unbind resets every driver, e.g. when the text component is disabled.
func Unbind(drivers []Driver) bool {
	redraw := false
	for _, d := range drivers {
		if r, ok := d.(Restarter); ok && r.Running() {
			redraw = r.Stop() || redraw
		}
		redraw = d.Reset() || redraw
	}
	return redraw
}

// Tick advances all drivers.
func Tick(drivers []Driver, dt time.Duration) bool {
	redraw := false
	for _, d := range drivers {
		redraw = d.Tick(dt) || redraw
	}
	return redraw
}

// group is the bound glyph set shared by the built-in drivers.
type group struct {
	tag    string
	glyphs []*glyph.Glyph
}

func (g *group) Tag() string { return g.tag }

// Glyphs returns the bound glyphs in binding order.
func (g *group) Glyphs() []*glyph.Glyph { return g.glyphs }

func (g *group) attach(gl *glyph.Glyph) { g.glyphs = append(g.glyphs, gl) }

// reset applies restore to every glyph before forgetting them.
func (g *group) reset(restore func(*glyph.Glyph) bool) bool {
	redraw := false
	for _, gl := range g.glyphs {
		redraw = restore(gl) || redraw
	}
	g.glyphs = nil
	return redraw
}

// fontScale is the resolved font size used to scale pixel amplitudes.
func fontScale(gl *glyph.Glyph) float64 { return gl.FontSize() }
