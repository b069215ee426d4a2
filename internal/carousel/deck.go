package carousel

import (
	"sync"
)

const (
	baseLayer = 0
	topLayer  = 20
)

// Display is the presentation state of one slide.
type Display struct {
	Visible     bool
	Interactive bool
	Layer       int
}

// Frame is an immutable snapshot of a slide handed to a Rasterizer.
type Frame struct {
	Index   int
	Text    string
	Opacity float64
	Layer   int
}

// Deck holds a fixed, ordered list of slides and the index currently shown.
// Only the current slide is visible and interactive. A capture may temporarily
// override a slide's display through forceVisible; overrides sit on top of the
// display rule, so navigation while an override is held never gets clobbered
// when the override is released.
type Deck struct {
	mu        sync.Mutex
	slides    []string
	current   int
	overrides map[int]Display
}

func NewDeck(slides []string) *Deck {
	cp := make([]string, len(slides))
	copy(cp, slides)
	return &Deck{slides: cp, overrides: map[int]Display{}}
}

func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.slides)
}

func (d *Deck) Current() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Deck) Slides() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.slides))
	copy(out, d.slides)
	return out
}

// Next advances to the following slide, wrapping to 0 after the last one.
func (d *Deck) Next() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n := len(d.slides); n > 0 {
		d.current = (d.current + 1) % n
	}
	return d.current
}

// Previous steps back, wrapping from 0 to the last slide.
func (d *Deck) Previous() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n := len(d.slides); n > 0 {
		d.current = (d.current - 1 + n) % n
	}
	return d.current
}

// JumpTo shows slide i. Out-of-range indexes are ignored and report false.
func (d *Deck) JumpTo(i int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.slides) {
		return false
	}
	d.current = i
	return true
}

// Display returns the effective display state of slide i.
func (d *Deck) Display(i int) (Display, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.slides) {
		return Display{}, false
	}
	return d.displayLocked(i), true
}

func (d *Deck) displayLocked(i int) Display {
	if o, ok := d.overrides[i]; ok {
		return o
	}
	active := i == d.current
	return Display{Visible: active, Interactive: active, Layer: baseLayer}
}

// forceVisible makes slide i visible and top-most until release is called.
// release is idempotent.
func (d *Deck) forceVisible(i int) (release func(), ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.slides) {
		return func() {}, false
	}
	prev, hadPrev := d.overrides[i]
	d.overrides[i] = Display{Visible: true, Interactive: false, Layer: topLayer}

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if hadPrev {
				d.overrides[i] = prev
				return
			}
			delete(d.overrides, i)
		})
	}, true
}

func (d *Deck) frame(i int) (Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.slides) {
		return Frame{}, false
	}
	disp := d.displayLocked(i)
	opacity := 0.0
	if disp.Visible {
		opacity = 1
	}
	return Frame{Index: i, Text: d.slides[i], Opacity: opacity, Layer: disp.Layer}, true
}
