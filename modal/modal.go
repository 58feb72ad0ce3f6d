// Package modal builds tingle dialogs: the overlay chrome, the open/close
// lifecycle with scroll locking, footers and overflow handling. Every dialog
// embeds a binding.Binder scoped to its content container.
package modal

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/chrisuehlinger/tingle/binding"
	"github.com/chrisuehlinger/tingle/dom"
	"github.com/chrisuehlinger/tingle/log"
)

var (
	ErrNoDocument = errors.New("modal: document has no body")
	ErrDestroyed  = errors.New("modal: dialog is destroyed")
	ErrNoFooter   = errors.New("modal: dialog has no footer")
)

// Class names of the dialog chrome.
const (
	ClassModal          = "tingle-modal"
	ClassVisible        = "tingle-modal--visible"
	ClassOverflow       = "tingle-modal--overflow"
	ClassNoOverlayClose = "tingle-modal--noOverlayClose"
	ClassClose          = "tingle-modal__close"
	ClassCloseIcon      = "tingle-modal__closeIcon"
	ClassCloseLabel     = "tingle-modal__closeLabel"
	ClassBox            = "tingle-modal-box"
	ClassContent        = "tingle-modal-box__content"
	ClassFooter         = "tingle-modal-box__footer"
	ClassFooterSticky   = "tingle-modal-box__footer--sticky"
	ClassBodyEnabled    = "tingle-enabled"
)

const closeIcon = `<svg viewBox="0 0 10 10" xmlns="http://www.w3.org/2000/svg"><path d="M.3 9.7c.2.2.4.3.7.3.3 0 .5-.1.7-.3L5 6.4l3.3 3.3c.2.2.5.3.7.3.2 0 .5-.1.7-.3.4-.4.4-1 0-1.4L6.4 5l3.3-3.3c.4-.4.4-1 0-1.4-.4-.4-1-.4-1.4 0L5 3.6 1.7.3C1.3-.1.7-.1.3.3c-.4.4-.4 1 0 1.4L3.6 5 .3 8.3c-.4.4-.4 1 0 1.4z" fill="#000" fill-rule="nonzero"/></svg>`

// State is the lifecycle state of a dialog.
type State int

const (
	Ready State = iota
	Open
	Destroyed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Open:
		return "open"
	case Destroyed:
		return "destroyed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Modal is a dialog rendered into a document.
type Modal struct {
	*binding.Binder

	id       string
	doc      *dom.Document
	opts     Options
	logger   *slog.Logger
	viewport Viewport

	root     *dom.Element
	box      *dom.Element
	content  *dom.Element
	footer   *dom.Element
	closeBtn *dom.Element
	buttons  map[*dom.Element]func()

	state          State
	busy           bool
	scrollPosition float64
}

// New builds a dialog and inserts it as the first child of the document
// body. The dialog starts hidden in the Ready state.
func New(doc *dom.Document, opts Options) (*Modal, error) {
	if doc == nil || doc.Body() == nil {
		return nil, ErrNoDocument
	}
	opts = opts.withDefaults()

	m := &Modal{
		id:       uuid.NewString(),
		doc:      doc,
		opts:     opts,
		viewport: opts.Viewport,
		buttons:  make(map[*dom.Element]func()),
	}
	if m.viewport == nil {
		m.viewport = NewStaticViewport(1024, 768)
	}
	if opts.Logger != nil {
		m.logger = opts.Logger.With(slog.String("modal", m.id))
	} else {
		m.logger = log.Discard()
	}

	var bopts []binding.Option
	if opts.EntityDefaults != nil {
		bopts = append(bopts, binding.WithDefaults(*opts.EntityDefaults))
	}
	m.Binder = binding.NewBinder(m.scope, bopts...)

	m.build()
	body := doc.Body()
	body.AsNode().InsertBefore(m.root.AsNode(), body.AsNode().FirstChild())
	if opts.Footer {
		m.AddFooter()
	}

	m.logger.Debug("modal built", "footer", opts.Footer, "closeMethods", opts.CloseMethods)
	return m, nil
}

func (m *Modal) build() {
	m.root = m.doc.CreateElement("div")
	m.root.ClassList().Add(ClassModal)
	if !m.opts.allows(CloseOverlay) {
		m.root.ClassList().Add(ClassNoOverlayClose)
	}
	m.root.Style().SetProperty("display", "none")
	for _, c := range m.opts.CSSClass {
		if err := m.root.ClassList().Add(c); err != nil {
			m.logger.Warn("ignoring css class", "class", c, "err", err)
		}
	}

	if m.opts.allows(CloseButton) {
		m.closeBtn = m.doc.CreateElement("button")
		_ = m.closeBtn.SetAttribute("type", "button")
		m.closeBtn.ClassList().Add(ClassClose)

		icon := m.doc.CreateElement("span")
		icon.ClassList().Add(ClassCloseIcon)
		_ = icon.SetInnerHTML(closeIcon)

		label := m.doc.CreateElement("span")
		label.ClassList().Add(ClassCloseLabel)
		_ = label.SetInnerHTML(m.opts.CloseLabel)

		m.closeBtn.AppendChild(icon.AsNode())
		m.closeBtn.AppendChild(label.AsNode())
		m.root.AppendChild(m.closeBtn.AsNode())
	}

	m.box = m.doc.CreateElement("div")
	m.box.ClassList().Add(ClassBox)
	m.content = m.doc.CreateElement("div")
	m.content.ClassList().Add(ClassContent)
	m.box.AppendChild(m.content.AsNode())
	m.root.AppendChild(m.box.AsNode())
}

// scope is the binding container: the content element until destroyed.
func (m *Modal) scope() *dom.Element {
	if m.state == Destroyed {
		return nil
	}
	return m.content
}

// ID returns the unique id of the dialog.
func (m *Modal) ID() string { return m.id }

// State returns the lifecycle state.
func (m *Modal) State() State { return m.state }

// Options returns the options the dialog was built with.
func (m *Modal) Options() Options { return m.opts }

// Root returns the outer overlay element, nil once destroyed.
func (m *Modal) Root() *dom.Element {
	if m.state == Destroyed {
		return nil
	}
	return m.root
}

// Document returns the document the dialog renders into.
func (m *Modal) Document() *dom.Document { return m.doc }

// IsOpen reports whether the dialog is visible.
func (m *Modal) IsOpen() bool {
	return m.state == Open && m.root.ClassList().Contains(ClassVisible)
}

// Open shows the dialog and locks page scrolling. It returns false when the
// dialog is destroyed, already open, or busy in another transition.
func (m *Modal) Open() bool {
	if m.state != Ready || m.busy {
		return false
	}
	m.busy = true

	if m.opts.BeforeOpen != nil {
		m.opts.BeforeOpen(m)
	}

	m.root.Style().RemoveProperty("display")

	m.scrollPosition = m.viewport.ScrollY()
	body := m.doc.Body()
	body.ClassList().Add(ClassBodyEnabled)
	body.Style().SetProperty("top", px(-m.scrollPosition))

	m.SetStickyFooter(m.opts.StickyFooter)
	m.root.ClassList().Add(ClassVisible)
	m.state = Open

	if m.opts.OnOpen != nil {
		m.opts.OnOpen(m)
	}
	m.busy = false

	m.CheckOverflow()
	m.logger.Info("modal opened")
	return true
}

// Close hides the dialog and restores page scrolling. BeforeClose may veto
// the close unless force is set. It reports whether the dialog closed.
func (m *Modal) Close(force bool) bool {
	if m.state != Open || m.busy {
		return false
	}
	m.busy = true
	defer func() { m.busy = false }()

	if !force && m.opts.BeforeClose != nil && !m.opts.BeforeClose(m) {
		m.logger.Debug("modal close vetoed")
		return false
	}

	body := m.doc.Body()
	body.ClassList().Remove(ClassBodyEnabled)
	m.viewport.ScrollTo(m.scrollPosition)
	body.Style().RemoveProperty("top")

	m.root.ClassList().Remove(ClassVisible)
	m.root.Style().SetProperty("display", "none")
	m.state = Ready

	if m.opts.OnClose != nil {
		m.opts.OnClose(m)
	}
	m.logger.Info("modal closed", "forced", force)
	return true
}

// Destroy closes the dialog if needed and removes it from the document.
// Binding operations on a destroyed dialog find no elements.
func (m *Modal) Destroy() bool {
	if m.state == Destroyed {
		return false
	}
	if m.state == Open {
		m.Close(true)
	}
	m.root.Remove()
	m.buttons = nil
	m.state = Destroyed
	m.logger.Info("modal destroyed")
	return true
}

// SetContent replaces the content with parsed HTML.
func (m *Modal) SetContent(html string) error {
	if m.state == Destroyed {
		return ErrDestroyed
	}
	if err := m.content.SetInnerHTML(html); err != nil {
		return err
	}
	if m.IsOpen() {
		m.CheckOverflow()
	}
	return nil
}

// SetContentNode replaces the content with n.
func (m *Modal) SetContentNode(n *dom.Node) error {
	if m.state == Destroyed {
		return ErrDestroyed
	}
	if err := m.content.SetInnerHTML(""); err != nil {
		return err
	}
	if _, err := m.content.AsNode().AppendChildWithError(n); err != nil {
		return err
	}
	if m.IsOpen() {
		m.CheckOverflow()
	}
	return nil
}

// Content returns the content container, nil once destroyed.
func (m *Modal) Content() *dom.Element {
	return m.scope()
}

// HTML serializes the dialog with live form state reflected as attributes.
func (m *Modal) HTML() string {
	if m.state == Destroyed {
		return ""
	}
	return dom.Serialize(m.root.AsNode(), dom.SerializeOptions{ReflectState: true})
}

func px(v float64) string {
	if v == 0 {
		return "0px"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
