package anim

import (
	"slices"
	"time"

	"github.com/ByLCY/lively/glyph"
)

// TypewriterTag is the default tag for the reveal animation.
const TypewriterTag = "type"

// Typewriter hides its glyphs and reveals them at a steady rate, pausing
// after punctuation.
type Typewriter struct {
	group

	GlyphsPerSecond float64
	ShortPause      time.Duration
	LongPause       time.Duration
	ShortPauseChars []rune
	LongPauseChars  []rune

	running bool
	next    int
	carry   float64
	wait    time.Duration
}

// NewTypewriter returns a typewriter with the defaults: 100 glyphs a second,
// 0.1s after , ; : and 0.25s after . ! ?
func NewTypewriter() *Typewriter {
	return &Typewriter{
		group:           group{tag: TypewriterTag},
		GlyphsPerSecond: 100,
		ShortPause:      100 * time.Millisecond,
		LongPause:       250 * time.Millisecond,
		ShortPauseChars: []rune{',', ';', ':'},
		LongPauseChars:  []rune{'.', '!', '?'},
	}
}

// Running reports whether glyphs are still being revealed.
func (t *Typewriter) Running() bool { return t.running }

// Done reports whether every bound glyph has been revealed.
func (t *Typewriter) Done() bool { return !t.running }

// Start hides every bound glyph and starts revealing from the first one.
func (t *Typewriter) Start() bool {
	t.running, t.next, t.carry, t.wait = true, 0, 0, 0
	redraw := false
	for _, g := range t.glyphs {
		redraw = g.SetVisible(false) || redraw
	}
	if len(t.glyphs) == 0 {
		t.running = false
	}
	return redraw
}

// Stop reveals everything at once.
func (t *Typewriter) Stop() bool {
	t.running = false
	redraw := false
	for _, g := range t.glyphs {
		redraw = g.SetVisible(true) || redraw
	}
	return redraw
}

// Skip finishes the current reveal immediately.
func (t *Typewriter) Skip() bool { return t.Stop() }

func (t *Typewriter) Attach(g *glyph.Glyph) bool {
	t.attach(g)
	if t.running {
		return g.SetVisible(false)
	}
	return false
}

func (t *Typewriter) Reset() bool {
	t.next, t.carry, t.wait = 0, 0, 0
	return t.reset(func(g *glyph.Glyph) bool { return g.SetVisible(true) })
}

func (t *Typewriter) Tick(dt time.Duration) bool {
	if !t.running {
		return false
	}
	if t.wait > 0 {
		t.wait -= dt
		if t.wait > 0 {
			return false
		}
		dt = -t.wait
		t.wait = 0
	}
	t.carry += dt.Seconds() * t.GlyphsPerSecond
	redraw := false
	for t.carry >= 1 && t.next < len(t.glyphs) {
		g := t.glyphs[t.next]
		t.next++
		t.carry--
		redraw = g.SetVisible(true) || redraw
		if pause := t.pauseAfter(g); pause > 0 {
			t.carry = 0
			t.wait = pause
			break
		}
	}
	if t.next >= len(t.glyphs) {
		t.running = false
	}
	return redraw
}

func (t *Typewriter) pauseAfter(g *glyph.Glyph) time.Duration {
	if g.Kind() != glyph.Char {
		return 0
	}
	switch {
	case slices.Contains(t.LongPauseChars, g.Rune()):
		return t.LongPause
	case slices.Contains(t.ShortPauseChars, g.Rune()):
		return t.ShortPause
	}
	return 0
}
