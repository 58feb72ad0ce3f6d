package dom

import (
	"strings"
	"testing"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc == nil {
		t.Fatal("NewDocument returned nil")
	}
	if doc.AsNode().NodeType() != DocumentNode {
		t.Errorf("Expected DocumentNode, got %v", doc.AsNode().NodeType())
	}
	if doc.Body() == nil {
		t.Fatal("Expected a body element")
	}
	if doc.Head() == nil {
		t.Fatal("Expected a head element")
	}
	if !doc.Body().IsConnected() {
		t.Error("Expected body to be connected")
	}
}

func TestDocument_CreateElement(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("DIV")

	if el.TagName() != "DIV" {
		t.Errorf("Expected tagName 'DIV', got '%s'", el.TagName())
	}
	if el.LocalName() != "div" {
		t.Errorf("Expected localName 'div', got '%s'", el.LocalName())
	}
	if el.AsNode().NodeType() != ElementNode {
		t.Errorf("Expected ElementNode, got %v", el.AsNode().NodeType())
	}
	if el.IsConnected() {
		t.Error("Expected a new element to be detached")
	}
}

func TestElement_Attributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("input")

	if err := el.SetAttribute("Name", "phone"); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	if got := el.GetAttribute("name"); got != "phone" {
		t.Errorf("Expected 'phone', got '%s'", got)
	}
	if !el.HasAttribute("NAME") {
		t.Error("Expected attribute lookup to be case-insensitive")
	}
	if err := el.SetAttribute("bad name", "x"); err == nil {
		t.Error("Expected an error for an attribute name with whitespace")
	}

	_ = el.SetAttribute("type", "text")
	attrs := el.Attributes()
	if len(attrs) != 2 || attrs[0].Name != "name" || attrs[1].Name != "type" {
		t.Errorf("Unexpected attributes: %+v", attrs)
	}

	el.RemoveAttribute("name")
	if el.HasAttribute("name") {
		t.Error("Expected attribute to be removed")
	}
}

func TestNode_AppendAndRemove(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	a := doc.CreateElement("span")
	b := doc.CreateElement("span")

	parent.AppendChild(a.AsNode())
	parent.AppendChild(b.AsNode())
	if len(parent.Children()) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(parent.Children()))
	}

	parent.AsNode().InsertBefore(b.AsNode(), a.AsNode())
	if parent.FirstElementChild() != b {
		t.Error("Expected b to be moved before a")
	}

	if _, err := a.AsNode().AppendChildWithError(parent.AsNode()); err == nil {
		t.Error("Expected HierarchyRequestError when appending an ancestor")
	}

	parent.AsNode().RemoveChild(b.AsNode())
	if b.AsNode().ParentNode() != nil {
		t.Error("Expected removed child to be detached")
	}
	if _, err := parent.AsNode().RemoveChildWithError(b.AsNode()); err == nil {
		t.Error("Expected NotFoundError for a node that is not a child")
	}
}

func TestNode_TextContent(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.SetTextContent("Hello")
	span := doc.CreateElement("span")
	span.SetTextContent(" World")
	div.AppendChild(span.AsNode())

	if got := div.TextContent(); got != "Hello World" {
		t.Errorf("Expected 'Hello World', got '%s'", got)
	}
}

func TestParseHTML(t *testing.T) {
	doc, err := ParseHTML(`<!DOCTYPE html><html><body><form id="f"><input name="phone" value="1"></form></body></html>`)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	form := doc.GetElementById("f")
	if form == nil {
		t.Fatal("Expected form element")
	}
	inputs := form.GetElementsByTagName("input")
	if len(inputs) != 1 {
		t.Fatalf("Expected 1 input, got %d", len(inputs))
	}
	if inputs[0].GetAttribute("value") != "1" {
		t.Errorf("Expected value '1', got '%s'", inputs[0].GetAttribute("value"))
	}
}

func TestElement_InnerHTML(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	doc.Body().AppendChild(div.AsNode())

	if err := div.SetInnerHTML(`<p class="a">one &amp; two</p><br>`); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}
	if len(div.Children()) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(div.Children()))
	}
	if got := div.InnerHTML(); got != `<p class="a">one &amp; two</p><br>` {
		t.Errorf("Unexpected innerHTML: %s", got)
	}
	if !div.Children()[0].IsConnected() {
		t.Error("Expected parsed children to be connected")
	}

	if err := div.SetInnerHTML(""); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}
	if div.AsNode().HasChildNodes() {
		t.Error("Expected empty innerHTML to clear children")
	}
}

func TestElement_ClassList(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	cl := el.ClassList()

	if err := cl.Add("a", "b", "a"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if el.ClassName() != "a b" {
		t.Errorf("Expected 'a b', got '%s'", el.ClassName())
	}
	if err := cl.Add("bad token"); err == nil {
		t.Error("Expected an error for a token with whitespace")
	}
	cl.Remove("a")
	if cl.Contains("a") || !cl.Contains("b") {
		t.Errorf("Unexpected classes after remove: %v", cl.Values())
	}
	if on, _ := cl.Toggle("c"); !on {
		t.Error("Expected toggle to add c")
	}
	if on, _ := cl.Toggle("c"); on {
		t.Error("Expected toggle to remove c")
	}
}

func TestElement_Style(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	st := el.Style()

	st.SetProperty("display", "none")
	st.SetProperty("top", "-10px")
	if got := el.GetAttribute("style"); got != "display: none; top: -10px;" {
		t.Errorf("Unexpected style attribute: %s", got)
	}
	if st.GetPropertyValue("display") != "none" {
		t.Error("Expected display none")
	}
	st.RemoveProperty("display")
	if st.GetPropertyValue("display") != "" {
		t.Error("Expected display to be removed")
	}
	st.SetProperty("top", "")
	if el.HasAttribute("style") {
		t.Error("Expected style attribute to be removed when empty")
	}

	_ = el.SetAttribute("style", "color: red; width:10px")
	if st.Length() != 2 {
		t.Errorf("Expected 2 declarations, got %d", st.Length())
	}
}

func TestSerialize_ReflectState(t *testing.T) {
	doc, err := ParseHTML(`<body><input name="a" value="x"><input type="checkbox" name="c"><textarea>t</textarea><select><option>1</option><option>2</option></select></body>`)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	body := doc.Body()
	inputs := body.GetElementsByTagName("input")
	inputs[0].SetValue("y")
	inputs[1].SetChecked(true)
	body.GetElementsByTagName("textarea")[0].SetValue("new")
	body.GetElementsByTagName("select")[0].SetValue("2")

	plain := Serialize(body.AsNode(), SerializeOptions{})
	if !strings.Contains(plain, `value="x"`) {
		t.Errorf("Expected default value in plain output: %s", plain)
	}

	out := Serialize(body.AsNode(), SerializeOptions{ReflectState: true})
	for _, want := range []string{
		`<input name="a" value="y">`,
		`<input type="checkbox" name="c" checked="">`,
		`<textarea>new</textarea>`,
		`<option selected="">2</option>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %s", want, out)
		}
	}
}
