package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document represents an HTML document.
type Document Node

func newDocument() *Document {
	n := newNode(DocumentNode, "#document", nil)
	return (*Document)(n)
}

// NewDocument creates an HTML document with empty head and body elements.
func NewDocument() *Document {
	doc := newDocument()
	root := doc.CreateElement("html")
	root.AppendChild(doc.CreateElement("head").AsNode())
	root.AppendChild(doc.CreateElement("body").AsNode())
	doc.AsNode().AppendChild(root.AsNode())
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// DocumentElement returns the root element.
func (d *Document) DocumentElement() *Element {
	for c := d.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

func (d *Document) rootChild(localName string) *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for _, c := range root.Children() {
		if c.LocalName() == localName {
			return c
		}
	}
	return nil
}

// Head returns the head element, or nil.
func (d *Document) Head() *Element {
	return d.rootChild("head")
}

// Body returns the body element, or nil.
func (d *Document) Body() *Element {
	return d.rootChild("body")
}

// CreateElement creates an element with the given (lowercased) tag name.
func (d *Document) CreateElement(tagName string) *Element {
	n := newNode(ElementNode, tagName, d)
	n.elementData = &elementData{localName: strings.ToLower(tagName)}
	return (*Element)(n)
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(data string) *Node {
	return newText(data, d)
}

// CreateComment creates a comment node.
func (d *Document) CreateComment(data string) *Node {
	n := newNode(CommentNode, "#comment", d)
	n.nodeValue = data
	return n
}

// CreateDocumentFragment creates an empty fragment.
func (d *Document) CreateDocumentFragment() *Node {
	return newNode(DocumentFragmentNode, "#document-fragment", d)
}

// GetElementById returns the first element with the given id in document order.
func (d *Document) GetElementById(id string) *Element {
	var found *Element
	d.AsNode().walkElements(func(el *Element) bool {
		if el.Id() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// GetElementsByTagName returns all elements with the given tag name.
func (d *Document) GetElementsByTagName(tagName string) []*Element {
	return elementsByTagName(d.AsNode(), tagName)
}

// GetElementsByClassName returns all elements carrying the given classes.
func (d *Document) GetElementsByClassName(classNames string) []*Element {
	return elementsByClassName(d.AsNode(), classNames)
}

// QuerySelector returns the first element matching the selector.
func (d *Document) QuerySelector(selector string) (*Element, error) {
	return querySelector(d.AsNode(), selector)
}

// QuerySelectorAll returns all elements matching the selector.
func (d *Document) QuerySelectorAll(selector string) ([]*Element, error) {
	return querySelectorAll(d.AsNode(), selector)
}

// ParseHTML parses an HTML string and returns a Document.
func ParseHTML(htmlContent string) (*Document, error) {
	netDoc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}
	doc := newDocument()
	convertHTMLTree(netDoc, doc.AsNode(), doc)
	return doc, nil
}

// ParseFragment parses htmlContent as the children of context and returns
// the resulting detached nodes owned by doc.
func (d *Document) ParseFragment(htmlContent string, context *Element) ([]*Node, error) {
	if context == nil {
		context = d.CreateElement("div")
	}
	nodes, err := parseHTMLFragment(htmlContent, context)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		adoptNode(n, d)
	}
	return nodes, nil
}

// convertHTMLTree converts the children of src into children of parent.
func convertHTMLTree(src *html.Node, parent *Node, doc *Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		var node *Node

		switch c.Type {
		case html.TextNode:
			node = doc.CreateTextNode(c.Data)
		case html.ElementNode:
			el := doc.CreateElement(c.Data)
			for _, attr := range c.Attr {
				_ = el.SetAttribute(attr.Key, attr.Val)
			}
			node = el.AsNode()
		case html.CommentNode:
			node = doc.CreateComment(c.Data)
		case html.DoctypeNode:
			node = newNode(DocumentTypeNode, c.Data, doc)
		case html.DocumentNode:
			convertHTMLTree(c, parent, doc)
			continue
		default:
			continue
		}

		parent.AppendChild(node)
		if c.Type == html.ElementNode {
			convertHTMLTree(c, node, doc)
		}
	}
}

// parseHTMLFragment parses an HTML fragment in the context of an element.
func parseHTMLFragment(htmlContent string, context *Element) ([]*Node, error) {
	tagName := context.LocalName()
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tagName)),
		Data:     tagName,
	}

	nodes, err := html.ParseFragment(strings.NewReader(htmlContent), contextNode)
	if err != nil {
		return nil, err
	}

	doc := context.ownerDoc
	if doc == nil {
		doc = newDocument()
	}
	holder := doc.CreateDocumentFragment()
	for _, n := range nodes {
		wrapper := &html.Node{Type: html.DocumentNode}
		wrapper.AppendChild(n)
		convertHTMLTree(wrapper, holder, doc)
	}
	result := holder.ChildNodes()
	for _, n := range result {
		holder.removeChildInternal(n)
	}
	return result, nil
}
