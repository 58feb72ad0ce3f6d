package ui

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/tingle/dom"
	"github.com/chrisuehlinger/tingle/modal"
)

const controlSelector = "input, select, textarea"

// field ties one form control of the dialog content to its widget.
type field struct {
	el     *dom.Element
	label  string
	widget fyne.CanvasObject
	load   func()
}

// FormView renders the form controls of a dialog as Fyne widgets. Widget
// edits are written to the elements as they happen; Refresh copies element
// state back into the widgets after the dialog changed it.
type FormView struct {
	modal   *modal.Modal
	fields  []*field
	buttons []*widget.Button
	form    *widget.Form
	footer  *fyne.Container
	content *fyne.Container

	// OnDismiss runs when a widget action closed the dialog.
	OnDismiss func()

	loading bool
	mu      sync.Mutex
}

// NewFormView builds the widgets for the controls and footer buttons of m.
func NewFormView(m *modal.Modal) *FormView {
	v := &FormView{modal: m}
	v.form = widget.NewForm()
	v.footer = container.NewHBox()

	if content := m.Content(); content != nil {
		controls, _ := content.QuerySelectorAll(controlSelector)
		for _, el := range controls {
			f := v.newField(el)
			if f == nil {
				continue
			}
			v.fields = append(v.fields, f)
			v.form.Append(f.label, f.widget)
		}
	}

	for _, el := range m.FooterButtons() {
		btn := el
		b := widget.NewButton(strings.TrimSpace(btn.TextContent()), func() {
			v.dispatch(func() { v.modal.Click(btn) })
		})
		v.buttons = append(v.buttons, b)
		v.footer.Add(b)
	}
	for _, cm := range m.Options().CloseMethods {
		if cm == modal.CloseButton {
			v.footer.Add(widget.NewButton(m.Options().CloseLabel, func() {
				v.dispatch(func() { v.modal.Close(false) })
			}))
			break
		}
	}

	v.content = container.NewBorder(nil, v.footer, nil, nil, container.NewVScroll(v.form))
	v.Refresh()
	return v
}

// Content returns the root widget of the view.
func (v *FormView) Content() fyne.CanvasObject {
	return v.content
}

// Fields returns the number of controls rendered.
func (v *FormView) Fields() int {
	return len(v.fields)
}

// Widget returns the widget rendering el, or nil.
func (v *FormView) Widget(el *dom.Element) fyne.CanvasObject {
	for _, f := range v.fields {
		if f.el == el {
			return f.widget
		}
	}
	return nil
}

// Buttons returns the widgets of the footer buttons in document order.
func (v *FormView) Buttons() []*widget.Button {
	return v.buttons
}

// Refresh copies the current element state into the widgets.
func (v *FormView) Refresh() {
	v.mu.Lock()
	v.loading = true
	for _, f := range v.fields {
		f.load()
	}
	v.loading = false
	v.mu.Unlock()
}

// HandleKey forwards a key press to the dialog. It reports whether the
// dialog closed.
func (v *FormView) HandleKey(key fyne.KeyName) bool {
	if key != fyne.KeyEscape {
		return false
	}
	closed := false
	v.dispatch(func() { closed = v.modal.HandleKeyDown(modal.KeyEscape) })
	return closed
}

// dispatch runs a dialog action, then resyncs the widgets and reports a
// dismissal.
func (v *FormView) dispatch(action func()) {
	wasOpen := v.modal.IsOpen()
	action()
	v.Refresh()
	if wasOpen && !v.modal.IsOpen() && v.OnDismiss != nil {
		v.OnDismiss()
	}
}

// store runs a widget edit against the elements unless the edit came from
// Refresh.
func (v *FormView) store(write func()) {
	if v.loading {
		return
	}
	write()
}

func (v *FormView) newField(el *dom.Element) *field {
	f := &field{el: el, label: fieldLabel(el)}

	switch el.LocalName() {
	case "textarea":
		entry := widget.NewMultiLineEntry()
		entry.OnChanged = func(s string) { v.store(func() { el.SetValue(s) }) }
		f.widget = entry
		f.load = func() { entry.SetText(el.Value()) }

	case "select":
		var labels []string
		options, _ := el.QuerySelectorAll("option")
		for _, opt := range options {
			labels = append(labels, strings.Join(strings.Fields(opt.TextContent()), " "))
		}
		sel := widget.NewSelect(labels, nil)
		sel.OnChanged = func(string) {
			v.store(func() { el.SetSelectedIndex(sel.SelectedIndex()) })
		}
		f.widget = sel
		f.load = func() {
			if i := el.SelectedIndex(); i >= 0 && i < len(labels) {
				sel.SetSelectedIndex(i)
			} else {
				sel.ClearSelected()
			}
		}

	default:
		switch strings.ToLower(el.GetAttribute("type")) {
		case "hidden", "submit", "button", "reset", "image", "file":
			return nil
		case "checkbox", "radio":
			check := widget.NewCheck("", func(b bool) { v.store(func() { el.SetChecked(b) }) })
			f.widget = check
			f.load = func() { check.SetChecked(el.Checked()) }
		case "password":
			entry := widget.NewPasswordEntry()
			entry.OnChanged = func(s string) { v.store(func() { el.SetValue(s) }) }
			f.widget = entry
			f.load = func() { entry.SetText(el.Value()) }
		default:
			entry := widget.NewEntry()
			entry.SetPlaceHolder(el.GetAttribute("placeholder"))
			entry.OnChanged = func(s string) { v.store(func() { el.SetValue(s) }) }
			f.widget = entry
			f.load = func() { entry.SetText(el.Value()) }
		}
	}
	return f
}

// fieldLabel names a control by its associated label, then its name, id
// or placeholder.
func fieldLabel(el *dom.Element) string {
	if id := el.GetAttribute("id"); id != "" {
		if doc := el.AsNode().OwnerDocument(); doc != nil {
			for _, l := range doc.GetElementsByTagName("label") {
				if l.GetAttribute("for") == id {
					return strings.TrimSpace(l.TextContent())
				}
			}
		}
	}
	for _, attr := range []string{"name", "id", "placeholder"} {
		if s := el.GetAttribute(attr); s != "" {
			return s
		}
	}
	return el.LocalName()
}
