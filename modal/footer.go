package modal

import (
	"strings"

	"github.com/chrisuehlinger/tingle/dom"
)

// AddFooter appends an empty footer to the dialog box. A dialog has at
// most one footer; calling it again returns the existing one.
func (m *Modal) AddFooter() *dom.Element {
	if m.state == Destroyed {
		return nil
	}
	if m.footer != nil {
		return m.footer
	}
	m.footer = m.doc.CreateElement("div")
	m.footer.ClassList().Add(ClassFooter)
	m.box.AppendChild(m.footer.AsNode())
	return m.footer
}

// SetFooterContent replaces the footer content with parsed HTML.
func (m *Modal) SetFooterContent(html string) error {
	if m.state == Destroyed {
		return ErrDestroyed
	}
	if m.footer == nil {
		return ErrNoFooter
	}
	return m.footer.SetInnerHTML(html)
}

// FooterContent returns the footer element, or nil without a footer.
func (m *Modal) FooterContent() *dom.Element {
	if m.state == Destroyed {
		return nil
	}
	return m.footer
}

// AddFooterButton appends a button to the footer, creating the footer if
// needed. fn runs when the button is clicked through Click.
func (m *Modal) AddFooterButton(label, cssClass string, fn func()) *dom.Element {
	if m.AddFooter() == nil {
		return nil
	}
	btn := m.doc.CreateElement("button")
	if err := btn.SetInnerHTML(label); err != nil {
		btn.SetTextContent(label)
	}
	for _, c := range strings.Fields(cssClass) {
		if err := btn.ClassList().Add(c); err != nil {
			m.logger.Warn("ignoring button class", "class", c, "err", err)
		}
	}
	m.footer.AppendChild(btn.AsNode())
	if fn != nil {
		m.buttons[btn] = fn
	}
	return btn
}

// FooterButtons returns the footer buttons in document order.
func (m *Modal) FooterButtons() []*dom.Element {
	if m.FooterContent() == nil {
		return nil
	}
	return m.footer.GetElementsByTagName("button")
}

// IsOverflow reports whether the dialog box is at least as tall as the
// viewport.
func (m *Modal) IsOverflow() bool {
	if m.state == Destroyed {
		return false
	}
	return m.viewport.Measure(m.box).Height >= m.viewport.Height()
}

// SetStickyFooter pins the footer to the bottom of the viewport. A dialog
// that fits the viewport never gets a sticky footer.
func (m *Modal) SetStickyFooter(sticky bool) {
	if m.state == Destroyed || m.footer == nil {
		return
	}
	if !m.IsOverflow() {
		sticky = false
	}

	inBox := m.box.Contains(m.footer)
	switch {
	case sticky && inBox:
		m.root.AppendChild(m.footer.AsNode())
		m.footer.ClassList().Add(ClassFooterSticky)
		m.recalculateFooterPosition()
		footerHeight := m.viewport.Measure(m.footer).Height
		m.content.Style().SetProperty("padding-bottom", px(footerHeight+20))
	case !sticky && !inBox:
		m.box.AppendChild(m.footer.AsNode())
		m.footer.Style().SetProperty("width", "auto")
		m.footer.Style().RemoveProperty("left")
		m.content.Style().RemoveProperty("padding-bottom")
		m.footer.ClassList().Remove(ClassFooterSticky)
	}
}

func (m *Modal) recalculateFooterPosition() {
	if m.footer == nil {
		return
	}
	b := m.viewport.Measure(m.box)
	m.footer.Style().SetProperty("width", px(b.Width))
	m.footer.Style().SetProperty("left", px(b.Left))
}

// CheckOverflow updates the overflow class and sticky footer of a visible
// dialog.
func (m *Modal) CheckOverflow() {
	if m.state == Destroyed || !m.root.ClassList().Contains(ClassVisible) {
		return
	}
	overflow := m.IsOverflow()
	if overflow {
		m.root.ClassList().Add(ClassOverflow)
	} else {
		m.root.ClassList().Remove(ClassOverflow)
	}

	if !m.opts.StickyFooter {
		return
	}
	if overflow {
		m.recalculateFooterPosition()
		m.SetStickyFooter(true)
	} else {
		m.SetStickyFooter(false)
	}
}
