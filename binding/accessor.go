package binding

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/chrisuehlinger/tingle/dom"
)

// SetAttribute writes value to the named attribute or property of el and
// reports whether the write was applied.
//
// Names are tried in order: the class shorthands (classList, className),
// innerHTML, native properties of the element (style included), and
// finally a plain content attribute for string or numeric values.
func SetAttribute(el *dom.Element, name string, value any) bool {
	if el == nil || name == "" {
		return false
	}
	if s, ok := value.(Scalar); ok {
		value = string(s)
	}

	switch name {
	case "classList", "className":
		return setClass(el, value)
	case "innerHTML":
		s, ok := value.(string)
		if !ok {
			return false
		}
		return el.SetInnerHTML(s) == nil
	case "style":
		return setStyle(el, value)
	}

	if el.HasProperty(name) {
		return el.SetProperty(name, value)
	}

	s, ok := attributeString(value)
	if !ok {
		return false
	}
	return el.SetAttribute(name, s) == nil
}

// GetAttribute reads the named attribute or property of el using the same
// precedence as SetAttribute. It returns nil when nothing by that name can
// be read.
func GetAttribute(el *dom.Element, name string) any {
	if el == nil || name == "" {
		return nil
	}

	switch name {
	case "classList":
		return strings.Fields(el.ClassName())
	case "className":
		return el.ClassName()
	case "innerHTML":
		return el.InnerHTML()
	case "style":
		return el.Style().CSSText()
	}

	if v, ok := el.Property(name); ok {
		return v
	}
	if el.HasAttribute(name) {
		return el.GetAttribute(name)
	}
	return nil
}

func setClass(el *dom.Element, value any) bool {
	switch v := value.(type) {
	case nil:
		el.RemoveAttribute("class")
		return true
	case string:
		return el.SetAttribute("class", v) == nil
	case []string:
		if len(v) == 0 {
			return false
		}
		return el.ClassList().Add(v...) == nil
	case []any:
		if len(v) == 0 {
			return false
		}
		tokens := make([]string, 0, len(v))
		for _, t := range v {
			s, ok := t.(string)
			if !ok {
				return false
			}
			tokens = append(tokens, s)
		}
		return el.ClassList().Add(tokens...) == nil
	}
	return false
}

// setStyle accepts either a declaration block ("color: red; top: 0") or a
// map of property names to values. An empty value removes the property.
func setStyle(el *dom.Element, value any) bool {
	switch v := value.(type) {
	case string:
		el.Style().SetCSSText(v)
		return true
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s, ok := attributeString(v[name])
			if !ok {
				return false
			}
			el.Style().SetProperty(name, s)
		}
		return true
	case map[string]string:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			el.Style().SetProperty(name, v[name])
		}
		return true
	}
	return false
}

// attributeString formats the values a content attribute can hold.
func attributeString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}
