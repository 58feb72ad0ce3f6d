package dom

import (
	"strings"
)

// Node represents a node in the tree. Document, Element, Text, Comment and
// DocumentFragment all share this representation.
type Node struct {
	nodeType  NodeType
	nodeName  string
	nodeValue string
	ownerDoc  *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Only set for ElementNode.
	elementData *elementData
}

// elementData holds data specific to Element nodes.
type elementData struct {
	localName  string
	attributes []Attr
	classList  *DOMTokenList

	// Live form control state. A nil pointer means the control is still
	// clean and the property reads through to its content attribute.
	value    *string
	checked  *bool
	selected *bool
}

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// For elements, this is the tag name in uppercase.
func (n *Node) NodeName() string {
	if n.nodeType == ElementNode {
		return (*Element)(n).TagName()
	}
	return n.nodeName
}

// NodeValue returns the data of text and comment nodes, and an empty string
// for everything else.
func (n *Node) NodeValue() string {
	return n.nodeValue
}

// SetNodeValue sets the data of a text or comment node.
func (n *Node) SetNodeValue(value string) {
	switch n.nodeType {
	case TextNode, CommentNode:
		n.nodeValue = value
	}
}

// OwnerDocument returns the Document that owns this node.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// ChildNodes returns a snapshot of the child nodes.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}
	return children
}

// GetRootNode returns the topmost ancestor of the node.
func (n *Node) GetRootNode() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// IsConnected returns true if the node's root is a document.
func (n *Node) IsConnected() bool {
	return n.GetRootNode().nodeType == DocumentNode
}

// Contains returns true if other is an inclusive descendant of this node.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parentNode {
		if p == n {
			return true
		}
	}
	return false
}

// TextContent returns the text content of the node and its descendants.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return ""
	case TextNode, CommentNode:
		return n.nodeValue
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			sb.WriteString(child.nodeValue)
		case ElementNode, DocumentFragmentNode:
			child.collectTextContent(sb)
		}
	}
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return
	case TextNode, CommentNode:
		n.nodeValue = value
	default:
		n.removeAllChildren()
		if value != "" {
			n.AppendChild(newText(value, n.ownerDoc))
		}
	}
}

// AppendChild adds a node to the end of the list of children of this node.
// For the error-returning version, use AppendChildWithError.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of the list of children of this node.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts a node before a reference child node.
// Inserting a DocumentFragment moves its children instead of the fragment.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if newChild == nil {
		return nil, ErrHierarchyRequest("The node to insert is null.")
	}
	if n.nodeType != ElementNode && n.nodeType != DocumentNode && n.nodeType != DocumentFragmentNode {
		return nil, ErrHierarchyRequest("The parent cannot have children.")
	}
	if newChild.nodeType == DocumentNode {
		return nil, ErrHierarchyRequest("A document cannot be inserted.")
	}
	if newChild.Contains(n) {
		return nil, ErrHierarchyRequest("The new child is an ancestor of the parent.")
	}
	if refChild != nil && refChild.parentNode != n {
		return nil, ErrNotFound("The reference node is not a child of this node.")
	}
	if refChild == newChild {
		refChild = newChild.nextSibling
	}

	if newChild.nodeType == DocumentFragmentNode {
		for _, c := range newChild.ChildNodes() {
			newChild.removeChildInternal(c)
			n.insertBeforeInternal(c, refChild)
		}
		return newChild, nil
	}

	if newChild.parentNode != nil {
		newChild.parentNode.removeChildInternal(newChild)
	}
	n.insertBeforeInternal(newChild, refChild)
	return newChild, nil
}

// RemoveChild removes a child node from this node.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node, returning NotFoundError if the
// node is not a child of this node.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	n.removeChildInternal(child)
	return child, nil
}

// Remove detaches the node from its parent.
func (n *Node) Remove() {
	if n.parentNode != nil {
		n.parentNode.removeChildInternal(n)
	}
}

func (n *Node) removeAllChildren() {
	for n.firstChild != nil {
		n.removeChildInternal(n.firstChild)
	}
}

// removeChildInternal unlinks child without checking it belongs to n.
func (n *Node) removeChildInternal(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// insertBeforeInternal links newChild before refChild, or at the end if
// refChild is nil.
func (n *Node) insertBeforeInternal(newChild, refChild *Node) {
	newChild.parentNode = n

	doc := n.ownerDoc
	if n.nodeType == DocumentNode {
		doc = (*Document)(n)
	}
	if doc != nil && newChild.ownerDoc != doc {
		adoptNode(newChild, doc)
	}

	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
		return
	}

	newChild.prevSibling = refChild.prevSibling
	newChild.nextSibling = refChild
	if refChild.prevSibling != nil {
		refChild.prevSibling.nextSibling = newChild
	} else {
		n.firstChild = newChild
	}
	refChild.prevSibling = newChild
}

// adoptNode moves node and its descendants to doc.
func adoptNode(node *Node, doc *Document) {
	node.ownerDoc = doc
	for c := node.firstChild; c != nil; c = c.nextSibling {
		adoptNode(c, doc)
	}
}

// walkElements calls fn for every element descendant of n in document
// order. Returning false from fn stops the walk.
func (n *Node) walkElements(fn func(*Element) bool) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType != ElementNode {
			continue
		}
		if !fn((*Element)(c)) {
			return false
		}
		if !c.walkElements(fn) {
			return false
		}
	}
	return true
}

func newText(data string, doc *Document) *Node {
	n := newNode(TextNode, "#text", doc)
	n.nodeValue = data
	return n
}
