package dom

import (
	"testing"
)

func TestProperty_InputValue(t *testing.T) {
	doc, _ := ParseHTML(`<input name="phone" value="default">`)
	input := doc.GetElementsByTagName("input")[0]

	if v, ok := input.Property("value"); !ok || v != "default" {
		t.Fatalf("Expected value 'default', got %v (%v)", v, ok)
	}
	if !input.SetProperty("value", "555-1234") {
		t.Fatal("SetProperty(value) failed")
	}
	if v, _ := input.Property("value"); v != "555-1234" {
		t.Errorf("Expected live value '555-1234', got %v", v)
	}
	if input.GetAttribute("value") != "default" {
		t.Error("Expected the value attribute to keep the default")
	}
	if v, _ := input.Property("defaultValue"); v != "default" {
		t.Errorf("Expected defaultValue 'default', got %v", v)
	}
	if !input.SetProperty("value", 42) {
		t.Fatal("SetProperty(value, 42) failed")
	}
	if input.Value() != "42" {
		t.Errorf("Expected '42', got %s", input.Value())
	}
	if input.SetProperty("value", map[string]any{"x": 1}) {
		t.Error("Expected structured values to be rejected")
	}
}

func TestProperty_Applicability(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	input := doc.CreateElement("input")

	if div.HasProperty("value") {
		t.Error("div should not have a value property")
	}
	if !input.HasProperty("value") || !input.HasProperty("checked") {
		t.Error("input should have value and checked properties")
	}
	if !div.HasProperty("hidden") || !div.HasProperty("textContent") {
		t.Error("every element should have hidden and textContent")
	}
	if div.SetProperty("value", "x") {
		t.Error("Expected SetProperty to fail for a missing property")
	}
}

func TestProperty_ReflectedBoolean(t *testing.T) {
	doc := NewDocument()
	input := doc.CreateElement("input")

	input.SetProperty("disabled", true)
	if !input.HasAttribute("disabled") {
		t.Error("Expected disabled attribute")
	}
	input.SetProperty("disabled", "")
	if input.HasAttribute("disabled") {
		t.Error("Expected empty string to clear disabled")
	}
	input.SetProperty("readOnly", 1)
	if !input.HasAttribute("readonly") {
		t.Error("Expected readonly attribute")
	}
}

func TestProperty_Checkbox(t *testing.T) {
	doc, _ := ParseHTML(`<input type="checkbox" name="a" checked>`)
	cb := doc.GetElementsByTagName("input")[0]

	if !cb.Checked() {
		t.Error("Expected checked from attribute")
	}
	cb.SetProperty("checked", false)
	if cb.Checked() {
		t.Error("Expected unchecked after assignment")
	}
	if !cb.HasAttribute("checked") {
		t.Error("Expected the checked attribute to be untouched")
	}
	if cb.Value() != "on" {
		t.Errorf("Expected default checkbox value 'on', got %s", cb.Value())
	}
}

func TestProperty_RadioGroup(t *testing.T) {
	doc, _ := ParseHTML(`<form><input type="radio" name="r" value="1" checked><input type="radio" name="r" value="2"></form>`)
	radios := doc.GetElementsByTagName("input")

	radios[1].SetChecked(true)
	if radios[0].Checked() {
		t.Error("Expected first radio to be unchecked")
	}
	if !radios[1].Checked() {
		t.Error("Expected second radio to be checked")
	}
}

func TestProperty_Select(t *testing.T) {
	doc, _ := ParseHTML(`<select name="s"><option value="a">A</option><option value="b" selected>B</option><option>C</option></select>`)
	sel := doc.GetElementsByTagName("select")[0]

	if sel.Value() != "b" {
		t.Errorf("Expected 'b', got %s", sel.Value())
	}
	if sel.SelectedIndex() != 1 {
		t.Errorf("Expected selectedIndex 1, got %d", sel.SelectedIndex())
	}
	sel.SetProperty("value", "C")
	if sel.Value() != "C" {
		t.Errorf("Expected 'C', got %s", sel.Value())
	}
	sel.SetProperty("selectedIndex", 0)
	if sel.Value() != "a" {
		t.Errorf("Expected 'a', got %s", sel.Value())
	}
	sel.SetValue("missing")
	if sel.Value() != "" || sel.SelectedIndex() != -1 {
		t.Errorf("Expected no selection, got %q / %d", sel.Value(), sel.SelectedIndex())
	}
}

func TestProperty_SelectDefaultsToFirstOption(t *testing.T) {
	doc, _ := ParseHTML(`<select><option value="x">X</option><option value="y">Y</option></select>`)
	sel := doc.GetElementsByTagName("select")[0]
	if sel.Value() != "x" {
		t.Errorf("Expected first option to be selected, got %q", sel.Value())
	}
}

func TestProperty_Textarea(t *testing.T) {
	doc, _ := ParseHTML(`<textarea name="t">hello</textarea>`)
	ta := doc.GetElementsByTagName("textarea")[0]

	if ta.Value() != "hello" {
		t.Errorf("Expected 'hello', got %s", ta.Value())
	}
	ta.SetProperty("value", "bye")
	if ta.Value() != "bye" || ta.TextContent() != "hello" {
		t.Errorf("Expected live value 'bye' over content 'hello', got %s / %s", ta.Value(), ta.TextContent())
	}
}
