package anim

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/ByLCY/lively/glyph"
	"github.com/ByLCY/lively/markup"
)

// Wave bobs glyphs up and down along a sine wave travelling through the text.
type Wave struct {
	group
	// Height is the amplitude as a fraction of half the font size.
	Height    float64
	Speed     float64
	Frequency float64

	elapsed time.Duration
}

// NewWave returns a wave bound to <anim=wave>.
func NewWave() *Wave {
	return &Wave{group: group{tag: "wave"}, Height: 1, Speed: 1, Frequency: 1}
}

func (w *Wave) Attach(g *glyph.Glyph) bool {
	w.attach(g)
	return w.apply(len(w.glyphs)-1, g)
}

func (w *Wave) Reset() bool {
	return w.reset(func(g *glyph.Glyph) bool { return g.SetOffset(glyph.Vec3{}) })
}

func (w *Wave) Tick(dt time.Duration) bool {
	w.elapsed += dt
	redraw := false
	for i, g := range w.glyphs {
		redraw = w.apply(i, g) || redraw
	}
	return redraw
}

func (w *Wave) apply(i int, g *glyph.Glyph) bool {
	phase := (float64(i)*w.Frequency + w.elapsed.Seconds()*w.Speed) * 2 * math.Pi
	return g.SetOffset(glyph.Vec3{Y: math.Sin(phase) * w.Height * fontScale(g) * 0.5})
}

// Shake jitters glyphs in random directions.
type Shake struct {
	group
	// Radius is the displacement as a fraction of half the font size.
	Radius          float64
	ShakesPerSecond float64

	rng   *rand.Rand
	since time.Duration
}

// NewShake returns a shake bound to <anim=shake>. A nil source uses a
// randomly seeded one.
func NewShake(src rand.Source) *Shake {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Shake{group: group{tag: "shake"}, Radius: 1, ShakesPerSecond: 1, rng: rand.New(src)}
}

func (s *Shake) Attach(g *glyph.Glyph) bool {
	s.attach(g)
	return s.jolt(g)
}

func (s *Shake) Reset() bool {
	s.since = 0
	return s.reset(func(g *glyph.Glyph) bool { return g.SetOffset(glyph.Vec3{}) })
}

func (s *Shake) Tick(dt time.Duration) bool {
	s.since += dt
	if s.ShakesPerSecond <= 0 || s.since.Seconds() < 1/s.ShakesPerSecond {
		return false
	}
	s.since = 0
	redraw := false
	for _, g := range s.glyphs {
		redraw = s.jolt(g) || redraw
	}
	return redraw
}

func (s *Shake) jolt(g *glyph.Glyph) bool {
	angle := s.rng.Float64() * 2 * math.Pi
	r := s.Radius * fontScale(g) * 0.5
	return g.SetOffset(glyph.Vec3{X: math.Cos(angle) * r, Y: math.Sin(angle) * r})
}

// Throb pulses glyphs toward a tint color.
type Throb struct {
	group
	Color     markup.Color
	Speed     float64
	Frequency float64

	elapsed time.Duration
}

// NewThrob returns a throb toward c bound to <anim=throb>.
func NewThrob(c markup.Color) *Throb {
	return &Throb{group: group{tag: "throb"}, Color: c, Speed: 1}
}

func (t *Throb) Attach(g *glyph.Glyph) bool {
	t.attach(g)
	return t.apply(len(t.glyphs)-1, g)
}

func (t *Throb) Reset() bool {
	return t.reset(func(g *glyph.Glyph) bool {
		h := g.Hue()
		h.A = 0
		return g.SetHue(h)
	})
}

func (t *Throb) Tick(dt time.Duration) bool {
	t.elapsed += dt
	redraw := false
	for i, g := range t.glyphs {
		redraw = t.apply(i, g) || redraw
	}
	return redraw
}

func (t *Throb) apply(i int, g *glyph.Glyph) bool {
	phase := (float64(i)*t.Frequency + t.elapsed.Seconds()*t.Speed) * 2 * math.Pi
	c := t.Color
	c.A = (math.Cos(phase) + 1) / 2
	return g.SetHue(c)
}
