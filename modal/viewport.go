package modal

import (
	"github.com/chrisuehlinger/tingle/dom"
)

// Box is the layout box of a rendered element.
type Box struct {
	Left   float64
	Width  float64
	Height float64
}

// Viewport reports the layout facts a dialog needs to decide on overflow
// and scroll locking.
type Viewport interface {
	Height() float64
	ScrollY() float64
	ScrollTo(y float64)
	Measure(el *dom.Element) Box
}

// StaticViewport is a fixed-size viewport. Elements measure as zero-height
// boxes unless Boxes says otherwise, so dialogs never overflow it by
// default.
type StaticViewport struct {
	W, H   float64
	Scroll float64
	Boxes  map[*dom.Element]Box
}

// NewStaticViewport returns a w x h viewport scrolled to the top.
func NewStaticViewport(w, h float64) *StaticViewport {
	return &StaticViewport{W: w, H: h, Boxes: make(map[*dom.Element]Box)}
}

func (v *StaticViewport) Height() float64    { return v.H }
func (v *StaticViewport) ScrollY() float64   { return v.Scroll }
func (v *StaticViewport) ScrollTo(y float64) { v.Scroll = y }

func (v *StaticViewport) Measure(el *dom.Element) Box {
	if b, ok := v.Boxes[el]; ok {
		return b
	}
	return Box{Width: v.W}
}
