package dom

import (
	"strings"
)

// Element represents an element in the tree.
// Element shares Node's representation and adds element-specific behavior.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the tag name in uppercase.
func (e *Element) TagName() string {
	return strings.ToUpper(e.LocalName())
}

// LocalName returns the lowercase local name of the element.
func (e *Element) LocalName() string {
	if e.elementData == nil {
		return strings.ToLower(e.nodeName)
	}
	return e.elementData.localName
}

func (e *Element) data() *elementData {
	if e.elementData == nil {
		e.elementData = &elementData{localName: strings.ToLower(e.nodeName)}
	}
	return e.elementData
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the id attribute value.
func (e *Element) SetId(id string) {
	_ = e.SetAttribute("id", id)
}

// ClassName returns the class attribute value.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName sets the class attribute value.
func (e *Element) SetClassName(className string) {
	_ = e.SetAttribute("class", className)
}

// ClassList returns a DOMTokenList for the class attribute.
func (e *Element) ClassList() *DOMTokenList {
	d := e.data()
	if d.classList == nil {
		d.classList = newDOMTokenList(e, "class")
	}
	return d.classList
}

// Style returns the inline style declaration backed by the style attribute.
func (e *Element) Style() *CSSStyleDeclaration {
	return &CSSStyleDeclaration{element: e}
}

// Attributes returns a copy of the element's attributes in insertion order.
func (e *Element) Attributes() []Attr {
	attrs := e.data().attributes
	out := make([]Attr, len(attrs))
	copy(out, attrs)
	return out
}

func (e *Element) attrIndex(name string) int {
	name = strings.ToLower(name)
	for i, a := range e.data().attributes {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// GetAttribute returns the value of the attribute with the given name, or an
// empty string if it is absent. Names are matched case-insensitively.
func (e *Element) GetAttribute(name string) string {
	if i := e.attrIndex(name); i >= 0 {
		return e.elementData.attributes[i].Value
	}
	return ""
}

// HasAttribute returns true if the element has the named attribute.
func (e *Element) HasAttribute(name string) bool {
	return e.attrIndex(name) >= 0
}

// SetAttribute sets the value of the attribute with the given name.
// The name is lowercased; an invalid name yields InvalidCharacterError.
func (e *Element) SetAttribute(name, value string) error {
	if !IsValidAttributeLocalName(name) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}
	name = strings.ToLower(name)
	d := e.data()
	if i := e.attrIndex(name); i >= 0 {
		d.attributes[i].Value = value
		return nil
	}
	d.attributes = append(d.attributes, Attr{Name: name, Value: value})
	return nil
}

// RemoveAttribute removes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	i := e.attrIndex(name)
	if i < 0 {
		return
	}
	d := e.elementData
	d.attributes = append(d.attributes[:i], d.attributes[i+1:]...)
}

// IsValidAttributeLocalName checks if a string is a valid attribute local name.
// A string is valid if it is not empty and contains no ASCII whitespace,
// NULL, '/', '=' or '>'.
func IsValidAttributeLocalName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r' {
			return false
		}
		if r == '\x00' || r == '/' || r == '=' || r == '>' {
			return false
		}
	}
	return true
}

// Children returns the element children of this element.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			out = append(out, (*Element)(c))
		}
	}
	return out
}

// FirstElementChild returns the first child that is an element.
func (e *Element) FirstElementChild() *Element {
	for c := e.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// GetElementsByTagName returns the descendants with the given tag name in
// document order. "*" matches every element.
func (e *Element) GetElementsByTagName(tagName string) []*Element {
	return elementsByTagName(e.AsNode(), tagName)
}

// GetElementsByClassName returns the descendants carrying every class in the
// space-separated classNames list.
func (e *Element) GetElementsByClassName(classNames string) []*Element {
	return elementsByClassName(e.AsNode(), classNames)
}

func elementsByTagName(root *Node, tagName string) []*Element {
	tagName = strings.ToLower(tagName)
	var out []*Element
	root.walkElements(func(el *Element) bool {
		if tagName == "*" || el.LocalName() == tagName {
			out = append(out, el)
		}
		return true
	})
	return out
}

func elementsByClassName(root *Node, classNames string) []*Element {
	wanted := strings.Fields(classNames)
	if len(wanted) == 0 {
		return nil
	}
	var out []*Element
	root.walkElements(func(el *Element) bool {
		cl := el.ClassList()
		for _, c := range wanted {
			if !cl.Contains(c) {
				return true
			}
		}
		out = append(out, el)
		return true
	})
	return out
}

// QuerySelector returns the first descendant element matching the selector.
func (e *Element) QuerySelector(selector string) (*Element, error) {
	return querySelector(e.AsNode(), selector)
}

// QuerySelectorAll returns all descendant elements matching the selector.
func (e *Element) QuerySelectorAll(selector string) ([]*Element, error) {
	return querySelectorAll(e.AsNode(), selector)
}

// Matches returns true if the element matches the given selector.
func (e *Element) Matches(selector string) (bool, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return false, err
	}
	return list.matches(e), nil
}

// Closest returns the closest inclusive ancestor matching the selector.
func (e *Element) Closest(selector string) (*Element, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	for current := e; current != nil; current = current.AsNode().ParentElement() {
		if list.matches(current) {
			return current, nil
		}
	}
	return nil, nil
}

// InnerHTML returns the HTML serialization of the element's children.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for child := e.firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb, SerializeOptions{})
	}
	return sb.String()
}

// SetInnerHTML replaces the element's children with the parsed fragment.
func (e *Element) SetInnerHTML(htmlContent string) error {
	nodes, err := parseHTMLFragment(htmlContent, e)
	if err != nil {
		return err
	}
	e.AsNode().removeAllChildren()
	for _, node := range nodes {
		e.AsNode().AppendChild(node)
	}
	return nil
}

// OuterHTML returns the HTML of the element including the element itself.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	serializeNode(e.AsNode(), &sb, SerializeOptions{})
	return sb.String()
}

// TextContent returns the text content of the element.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent sets the text content of the element.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// AppendChild appends a child node to the element.
func (e *Element) AppendChild(child *Node) *Node {
	return e.AsNode().AppendChild(child)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	e.AsNode().Remove()
}

// Contains returns true if other is an inclusive descendant of the element.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	return e.AsNode().Contains(other.AsNode())
}

// IsConnected returns true if the element is attached to a document.
func (e *Element) IsConnected() bool {
	return e.AsNode().IsConnected()
}
