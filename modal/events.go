package modal

import (
	"github.com/chrisuehlinger/tingle/dom"
)

// KeyEscape is the key name that dismisses a dialog.
const KeyEscape = "Escape"

// HandleKeyDown closes an open dialog on Escape when escape closing is
// enabled. It reports whether the dialog closed.
func (m *Modal) HandleKeyDown(key string) bool {
	if key != KeyEscape || !m.opts.allows(CloseEscape) || !m.IsOpen() {
		return false
	}
	return m.Close(false)
}

// HandleMouseDown closes the dialog when the overlay itself is pressed,
// outside the dialog box and left of the overlay's scrollbar. clientX is
// the horizontal pointer position.
func (m *Modal) HandleMouseDown(target *dom.Element, clientX float64) bool {
	if !m.opts.allows(CloseOverlay) || !m.IsOpen() || !m.root.Contains(target) {
		return false
	}
	if insideModal(target) {
		return false
	}
	if clientX >= m.viewport.Measure(m.root).Width {
		return false
	}
	return m.Close(false)
}

// insideModal reports whether an ancestor of el is the overlay element.
func insideModal(el *dom.Element) bool {
	for p := el.AsNode().ParentElement(); p != nil; p = p.AsNode().ParentElement() {
		if p.ClassList().Contains(ClassModal) {
			return true
		}
	}
	return false
}

// Click dispatches a click on el: the close button closes the dialog and
// footer buttons run their callbacks. It reports whether anything handled
// the click.
func (m *Modal) Click(el *dom.Element) bool {
	if el == nil || m.state == Destroyed {
		return false
	}
	if m.closeBtn != nil && m.closeBtn.Contains(el) {
		return m.Close(false)
	}
	for btn, fn := range m.buttons {
		if btn.Contains(el) {
			fn()
			return true
		}
	}
	return false
}

// Resize re-checks overflow after the viewport changed size.
func (m *Modal) Resize() {
	m.CheckOverflow()
}
