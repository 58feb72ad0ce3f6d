package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// SerializeOptions controls HTML serialization.
type SerializeOptions struct {
	// ReflectState writes the live state of form controls (current value,
	// checkedness, selectedness) as attributes, so the output shows what a
	// user would see instead of the defaults the markup was parsed with.
	ReflectState bool
}

// Serialize returns the HTML serialization of n, including n itself unless
// it is a document or fragment.
func Serialize(n *Node, opts SerializeOptions) string {
	var sb strings.Builder
	if n.nodeType == DocumentNode || n.nodeType == DocumentFragmentNode {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			serializeNode(c, &sb, opts)
		}
		return sb.String()
	}
	serializeNode(n, &sb, opts)
	return sb.String()
}

// serializeNode serializes a node to HTML.
func serializeNode(n *Node, sb *strings.Builder, opts SerializeOptions) {
	switch n.nodeType {
	case TextNode:
		if p := n.ParentElement(); p != nil && isRawTextElement(p.LocalName()) {
			sb.WriteString(n.nodeValue)
			return
		}
		sb.WriteString(html.EscapeString(n.nodeValue))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.nodeValue)
		sb.WriteString("-->")
	case DocumentTypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.nodeName)
		sb.WriteString(">")
	case ElementNode:
		el := (*Element)(n)
		tagName := el.LocalName()
		sb.WriteString("<")
		sb.WriteString(tagName)

		attrs := el.Attributes()
		if opts.ReflectState {
			attrs = el.stateAttributes(attrs)
		}
		for _, attr := range attrs {
			sb.WriteString(" ")
			sb.WriteString(attr.Name)
			sb.WriteString("=\"")
			sb.WriteString(html.EscapeString(attr.Value))
			sb.WriteString("\"")
		}
		sb.WriteString(">")

		if isVoidElement(tagName) {
			return
		}

		if opts.ReflectState && tagName == "textarea" {
			sb.WriteString(html.EscapeString(el.Value()))
		} else {
			for child := n.firstChild; child != nil; child = child.nextSibling {
				serializeNode(child, sb, opts)
			}
		}

		sb.WriteString("</")
		sb.WriteString(tagName)
		sb.WriteString(">")
	case DocumentFragmentNode, DocumentNode:
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb, opts)
		}
	}
}

// stateAttributes returns attrs with live form state folded in.
func (e *Element) stateAttributes(attrs []Attr) []Attr {
	set := func(name, value string, present bool) {
		for i, a := range attrs {
			if a.Name == name {
				if present {
					attrs[i].Value = value
				} else {
					attrs = append(attrs[:i], attrs[i+1:]...)
				}
				return
			}
		}
		if present {
			attrs = append(attrs, Attr{Name: name, Value: value})
		}
	}

	switch e.LocalName() {
	case "input":
		if e.isCheckable() {
			set("checked", "", e.Checked())
		} else if e.data().value != nil {
			set("value", e.Value(), true)
		}
	case "option":
		if e.ownerSelect() != nil {
			set("selected", "", e.Selected())
		}
	}
	return attrs
}

// isVoidElement returns true if the element is a void element.
func isVoidElement(tagName string) bool {
	switch tagName {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

func isRawTextElement(tagName string) bool {
	switch tagName {
	case "script", "style":
		return true
	}
	return false
}
