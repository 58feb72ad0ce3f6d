package dom

import (
	"strings"
)

// The selector engine covers what dialog content needs: type, universal,
// #id, .class and attribute selectors, compounds of those, descendant and
// child combinators, and comma-separated lists. Pseudo-classes are rejected
// with a SyntaxError.

type selectorList []complexSelector

// complexSelector is a chain of compounds. combinators[i] joins
// compounds[i] and compounds[i+1] and is either ' ' or '>'.
type complexSelector struct {
	compounds   []compoundSelector
	combinators []byte
}

type compoundSelector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrSelector
}

type attrSelector struct {
	name  string
	op    string
	value string
}

func querySelector(root *Node, selector string) (*Element, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	var found *Element
	root.walkElements(func(el *Element) bool {
		if list.matches(el) {
			found = el
			return false
		}
		return true
	})
	return found, nil
}

func querySelectorAll(root *Node, selector string) ([]*Element, error) {
	list, err := parseSelectorList(selector)
	if err != nil {
		return nil, err
	}
	var out []*Element
	root.walkElements(func(el *Element) bool {
		if list.matches(el) {
			out = append(out, el)
		}
		return true
	})
	return out, nil
}

func (l selectorList) matches(el *Element) bool {
	for _, sel := range l {
		if sel.matchesAt(el, len(sel.compounds)-1) {
			return true
		}
	}
	return false
}

// matchesAt reports whether el matches compounds[idx] and the chain to its left.
func (s complexSelector) matchesAt(el *Element, idx int) bool {
	if !s.compounds[idx].matches(el) {
		return false
	}
	if idx == 0 {
		return true
	}
	switch s.combinators[idx-1] {
	case '>':
		parent := el.AsNode().ParentElement()
		return parent != nil && s.matchesAt(parent, idx-1)
	default:
		for p := el.AsNode().ParentElement(); p != nil; p = p.AsNode().ParentElement() {
			if s.matchesAt(p, idx-1) {
				return true
			}
		}
		return false
	}
}

func (c compoundSelector) matches(el *Element) bool {
	if c.tag != "" && c.tag != "*" && el.LocalName() != c.tag {
		return false
	}
	if c.id != "" && el.Id() != c.id {
		return false
	}
	for _, class := range c.classes {
		if !el.ClassList().Contains(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		if !a.matches(el) {
			return false
		}
	}
	return true
}

func (a attrSelector) matches(el *Element) bool {
	if !el.HasAttribute(a.name) {
		return false
	}
	if a.op == "" {
		return true
	}
	attrValue := el.GetAttribute(a.name)
	switch a.op {
	case "=":
		return attrValue == a.value
	case "~=":
		for _, word := range strings.Fields(attrValue) {
			if word == a.value {
				return true
			}
		}
		return false
	case "|=":
		return attrValue == a.value || strings.HasPrefix(attrValue, a.value+"-")
	case "^=":
		return a.value != "" && strings.HasPrefix(attrValue, a.value)
	case "$=":
		return a.value != "" && strings.HasSuffix(attrValue, a.value)
	case "*=":
		return a.value != "" && strings.Contains(attrValue, a.value)
	}
	return false
}

func parseSelectorList(selector string) (selectorList, error) {
	parts, err := splitTopLevel(selector)
	if err != nil {
		return nil, err
	}
	list := make(selectorList, 0, len(parts))
	for _, part := range parts {
		sel, err := parseComplex(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		list = append(list, sel)
	}
	return list, nil
}

// splitTopLevel splits on commas outside brackets and quotes.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '\\':
			i++
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '[':
			depth++
		case ch == ']':
			depth--
		case ch == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if quote != 0 || depth != 0 {
		return nil, ErrSyntax("'" + s + "' is not a valid selector.")
	}
	return append(parts, s[start:]), nil
}

func parseComplex(s string) (complexSelector, error) {
	var sel complexSelector
	invalid := ErrSyntax("'" + s + "' is not a valid selector.")
	if s == "" {
		return sel, invalid
	}

	i := 0
	for {
		compound, next, err := parseCompound(s, i)
		if err != nil {
			return sel, err
		}
		sel.compounds = append(sel.compounds, compound)
		i = next

		sawSpace := false
		for i < len(s) && isSelectorSpace(s[i]) {
			sawSpace = true
			i++
		}
		if i >= len(s) {
			return sel, nil
		}
		if s[i] == '>' {
			sel.combinators = append(sel.combinators, '>')
			i++
			for i < len(s) && isSelectorSpace(s[i]) {
				i++
			}
			if i >= len(s) {
				return sel, invalid
			}
		} else if sawSpace {
			sel.combinators = append(sel.combinators, ' ')
		} else {
			return sel, invalid
		}
	}
}

func parseCompound(s string, i int) (compoundSelector, int, error) {
	var c compoundSelector
	invalid := ErrSyntax("'" + s + "' is not a valid selector.")
	start := i

	for i < len(s) {
		ch := s[i]
		switch {
		case ch == '*' && i == start:
			c.tag = "*"
			i++
		case isIdentStart(ch) && i == start:
			name, next := readIdent(s, i)
			c.tag = strings.ToLower(name)
			i = next
		case ch == '#':
			name, next := readIdent(s, i+1)
			if name == "" {
				return c, i, invalid
			}
			c.id = name
			i = next
		case ch == '.':
			name, next := readIdent(s, i+1)
			if name == "" {
				return c, i, invalid
			}
			c.classes = append(c.classes, name)
			i = next
		case ch == '[':
			end := closingBracket(s, i)
			if end < 0 {
				return c, i, invalid
			}
			a, err := parseAttrSelector(s[i+1 : end])
			if err != nil {
				return c, i, err
			}
			c.attrs = append(c.attrs, a)
			i = end + 1
		case isSelectorSpace(ch) || ch == '>':
			if i == start {
				return c, i, invalid
			}
			return c, i, nil
		default:
			return c, i, invalid
		}
	}
	if i == start {
		return c, i, invalid
	}
	return c, i, nil
}

func parseAttrSelector(body string) (attrSelector, error) {
	invalid := ErrSyntax("'[" + body + "]' is not a valid attribute selector.")
	body = strings.TrimSpace(body)
	opStart := strings.IndexAny(body, "~|^$*=")
	if opStart < 0 {
		name, next := readIdent(body, 0)
		if name == "" || next != len(body) {
			return attrSelector{}, invalid
		}
		return attrSelector{name: strings.ToLower(name)}, nil
	}

	name := strings.TrimSpace(body[:opStart])
	if name == "" {
		return attrSelector{}, invalid
	}
	var op string
	rest := body[opStart:]
	if rest[0] == '=' {
		op = "="
		rest = rest[1:]
	} else if len(rest) > 1 && rest[1] == '=' {
		op = rest[:2]
		rest = rest[2:]
	} else {
		return attrSelector{}, invalid
	}

	value := strings.TrimSpace(rest)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') {
		if value[len(value)-1] != value[0] {
			return attrSelector{}, invalid
		}
		value = unescape(value[1 : len(value)-1])
	} else {
		ident, next := readIdent(value, 0)
		if next != len(value) {
			return attrSelector{}, invalid
		}
		value = ident
	}
	return attrSelector{name: strings.ToLower(name), op: op, value: value}, nil
}

func closingBracket(s string, open int) int {
	var quote byte
	for i := open + 1; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == ']':
			return i
		}
	}
	return -1
}

// readIdent reads an identifier starting at i, honoring backslash escapes.
func readIdent(s string, i int) (string, int) {
	var sb strings.Builder
	for i < len(s) {
		ch := s[i]
		if ch == '\\' && i+1 < len(s) {
			sb.WriteByte(s[i+1])
			i += 2
			continue
		}
		if !isIdentChar(ch) {
			break
		}
		sb.WriteByte(ch)
		i++
	}
	return sb.String(), i
}

func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '-' || ch == '\\' || ch >= 0x80 ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func isSelectorSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}
