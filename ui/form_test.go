package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/tingle/dom"
	"github.com/chrisuehlinger/tingle/modal"
)

const dialogContent = `<form>
	<label for="t">Title</label><input id="t" name="title" value="x">
	<input type="password" name="pw">
	<textarea name="notes">n</textarea>
	<input type="checkbox" name="agree" checked>
	<select name="size"><option>S</option><option selected>M</option></select>
	<input type="hidden" name="token" value="secret">
</form>`

func newDialog(t *testing.T) (*modal.Modal, *dom.Document) {
	t.Helper()
	doc := dom.NewDocument()
	m, err := modal.New(doc, modal.Options{Footer: true})
	if err != nil {
		t.Fatalf("modal.New failed: %v", err)
	}
	if err := m.SetContent(dialogContent); err != nil {
		t.Fatalf("SetContent failed: %v", err)
	}
	return m, doc
}

func control(t *testing.T, m *modal.Modal, selector string) *dom.Element {
	t.Helper()
	el, err := m.Content().QuerySelector(selector)
	if err != nil || el == nil {
		t.Fatalf("Missing control %q", selector)
	}
	return el
}

func TestFormView_Widgets(t *testing.T) {
	test.NewTempApp(t)
	m, _ := newDialog(t)
	v := NewFormView(m)

	if v.Fields() != 5 {
		t.Fatalf("Expected 5 fields, got %d", v.Fields())
	}
	if v.fields[0].label != "Title" || v.fields[1].label != "pw" {
		t.Errorf("Unexpected labels %q, %q", v.fields[0].label, v.fields[1].label)
	}

	title, ok := v.Widget(control(t, m, `[name="title"]`)).(*widget.Entry)
	if !ok || title.Text != "x" {
		t.Error("Expected an entry holding the input value")
	}
	pw, ok := v.Widget(control(t, m, `[name="pw"]`)).(*widget.Entry)
	if !ok || !pw.Password {
		t.Error("Expected a password entry")
	}
	notes, ok := v.Widget(control(t, m, "textarea")).(*widget.Entry)
	if !ok || !notes.MultiLine || notes.Text != "n" {
		t.Error("Expected a multi-line entry holding the textarea value")
	}
	agree, ok := v.Widget(control(t, m, `[name="agree"]`)).(*widget.Check)
	if !ok || !agree.Checked {
		t.Error("Expected a checked check box")
	}
	size, ok := v.Widget(control(t, m, "select")).(*widget.Select)
	if !ok || size.Selected != "M" {
		t.Error("Expected a select showing the selected option")
	}
	if v.Widget(control(t, m, `[name="token"]`)) != nil {
		t.Error("Expected hidden inputs to be skipped")
	}
}

func TestFormView_EditsReachElements(t *testing.T) {
	test.NewTempApp(t)
	m, _ := newDialog(t)
	v := NewFormView(m)

	titleEl := control(t, m, `[name="title"]`)
	v.Widget(titleEl).(*widget.Entry).SetText("edited")
	if titleEl.Value() != "edited" {
		t.Errorf("Expected the input value to follow the entry, got %q", titleEl.Value())
	}
	if titleEl.GetAttribute("value") != "x" {
		t.Error("Expected the value attribute to be left alone")
	}

	agreeEl := control(t, m, `[name="agree"]`)
	v.Widget(agreeEl).(*widget.Check).SetChecked(false)
	if agreeEl.Checked() {
		t.Error("Expected the check box to be unchecked")
	}

	sizeEl := control(t, m, "select")
	v.Widget(sizeEl).(*widget.Select).SetSelectedIndex(0)
	if sizeEl.SelectedIndex() != 0 {
		t.Errorf("Expected the first option, got %d", sizeEl.SelectedIndex())
	}

	if err := m.CreateEntity("title", map[string]any{"placeholder": "Title"}, false); err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	if got, _ := m.GetValue("title"); got != "edited" {
		t.Errorf("Expected the binder to read the edited value, got %v", got)
	}
}

func TestFormView_Refresh(t *testing.T) {
	test.NewTempApp(t)
	m, _ := newDialog(t)
	v := NewFormView(m)

	if err := m.CreateEntity("title", "from entity", false); err != nil {
		t.Fatalf("CreateEntity failed: %v", err)
	}
	if _, err := m.UpdateFormFromEntity("title"); err != nil {
		t.Fatalf("UpdateFormFromEntity failed: %v", err)
	}
	titleEl := control(t, m, `[name="title"]`)
	entry := v.Widget(titleEl).(*widget.Entry)
	if entry.Text != "x" {
		t.Fatalf("Expected the entry to be stale before Refresh, got %q", entry.Text)
	}

	v.Refresh()
	if entry.Text != "from entity" {
		t.Errorf("Expected the refreshed entry, got %q", entry.Text)
	}
}

func TestFormView_Buttons(t *testing.T) {
	test.NewTempApp(t)
	m, _ := newDialog(t)
	saved := 0
	m.AddFooterButton("Save", "tingle-btn", func() { saved++ })

	v := NewFormView(m)
	dismissed := 0
	v.OnDismiss = func() { dismissed++ }

	if len(v.Buttons()) != 1 || v.Buttons()[0].Text != "Save" {
		t.Fatal("Expected one footer button widget")
	}
	test.Tap(v.Buttons()[0])
	if saved != 1 {
		t.Errorf("Expected the footer callback to run once, got %d", saved)
	}

	if !m.Open() {
		t.Fatal("Open failed")
	}
	if v.HandleKey(fyne.KeyReturn) {
		t.Error("Expected other keys to be ignored")
	}
	if !v.HandleKey(fyne.KeyEscape) {
		t.Error("Expected Escape to close the dialog")
	}
	if dismissed != 1 {
		t.Errorf("Expected one dismissal, got %d", dismissed)
	}
}

func TestFormView_NoCloseButton(t *testing.T) {
	test.NewTempApp(t)
	doc := dom.NewDocument()
	m, err := modal.New(doc, modal.Options{CloseMethods: []modal.CloseMethod{}})
	if err != nil {
		t.Fatalf("modal.New failed: %v", err)
	}
	v := NewFormView(m)
	if len(v.footer.Objects) != 0 {
		t.Errorf("Expected no footer widgets, got %d", len(v.footer.Objects))
	}
	if v.HandleKey(fyne.KeyEscape) {
		t.Error("Expected Escape to be disabled")
	}
}

func TestPreview(t *testing.T) {
	a := test.NewTempApp(t)
	m, _ := newDialog(t)

	p := NewPreviewWithApp(a, m, Window{Title: "Profile"}, nil)
	if p.Window().Title() != "Profile" {
		t.Errorf("Unexpected title %q", p.Window().Title())
	}
	p.Show()
	if !m.IsOpen() {
		t.Fatal("Expected Show to open the dialog")
	}
	p.View().HandleKey(fyne.KeyEscape)
	if m.IsOpen() {
		t.Error("Expected Escape to close the dialog")
	}
}

func TestWindowDefaults(t *testing.T) {
	w := Window{Width: 800}.withDefaults()
	if w.Width != 800 || w.Height != 480 || w.Title != "Tingle" {
		t.Errorf("Unexpected window %+v", w)
	}
}
