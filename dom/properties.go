package dom

import (
	"fmt"
	"strconv"
	"strings"
)

// Native properties are the settable IDL attributes of HTML elements. Most
// reflect a content attribute; the form control ones (value, checked,
// selected) keep a live value apart from the attribute once assigned, the
// way browsers distinguish a field's current value from its default.

type property struct {
	appliesTo func(e *Element) bool
	get       func(e *Element) any
	set       func(e *Element, v any) bool
}

var properties map[string]property

func init() {
	properties = map[string]property{
		"id":          reflectString("id", anyElement),
		"className":   reflectString("class", anyElement),
		"title":       reflectString("title", anyElement),
		"lang":        reflectString("lang", anyElement),
		"dir":         reflectString("dir", anyElement),
		"hidden":      reflectBool("hidden", anyElement),
		"name":        reflectString("name", tags("input", "select", "textarea", "button", "form", "fieldset", "output", "iframe", "object")),
		"type":        reflectString("type", tags("input", "button")),
		"placeholder": reflectString("placeholder", tags("input", "textarea")),
		"disabled":    reflectBool("disabled", tags("input", "select", "textarea", "button", "option", "optgroup", "fieldset")),
		"readOnly":    reflectBool("readonly", tags("input", "textarea")),
		"required":    reflectBool("required", tags("input", "select", "textarea")),
		"multiple":    reflectBool("multiple", tags("input", "select")),
		"href":        reflectString("href", tags("a", "area", "link")),
		"target":      reflectString("target", tags("a", "area", "form")),
		"src":         reflectString("src", tags("img", "script", "iframe", "input", "source")),
		"alt":         reflectString("alt", tags("img", "input", "area")),
		"htmlFor":     reflectString("for", tags("label", "output")),
		"action":      reflectString("action", tags("form")),
		"method":      reflectString("method", tags("form")),

		"textContent": {
			appliesTo: anyElement,
			get:       func(e *Element) any { return e.TextContent() },
			set: func(e *Element, v any) bool {
				s, ok := toString(v)
				if !ok {
					return false
				}
				e.SetTextContent(s)
				return true
			},
		},
		"value": {
			appliesTo: tags("input", "textarea", "select", "option", "button"),
			get:       func(e *Element) any { return e.Value() },
			set: func(e *Element, v any) bool {
				s, ok := toString(v)
				if !ok {
					return false
				}
				e.SetValue(s)
				return true
			},
		},
		"defaultValue": {
			appliesTo: tags("input", "textarea"),
			get: func(e *Element) any {
				if e.LocalName() == "textarea" {
					return e.TextContent()
				}
				return e.GetAttribute("value")
			},
			set: func(e *Element, v any) bool {
				s, ok := toString(v)
				if !ok {
					return false
				}
				if e.LocalName() == "textarea" {
					e.SetTextContent(s)
					return true
				}
				return e.SetAttribute("value", s) == nil
			},
		},
		"checked": {
			appliesTo: tags("input"),
			get:       func(e *Element) any { return e.Checked() },
			set: func(e *Element, v any) bool {
				e.SetChecked(toBool(v))
				return true
			},
		},
		"defaultChecked": reflectBool("checked", tags("input")),
		"selected": {
			appliesTo: tags("option"),
			get:       func(e *Element) any { return e.Selected() },
			set: func(e *Element, v any) bool {
				e.SetSelected(toBool(v))
				return true
			},
		},
		"defaultSelected": reflectBool("selected", tags("option")),
		"selectedIndex": {
			appliesTo: tags("select"),
			get:       func(e *Element) any { return e.SelectedIndex() },
			set: func(e *Element, v any) bool {
				i, ok := toInt(v)
				if !ok {
					return false
				}
				e.SetSelectedIndex(i)
				return true
			},
		},
	}
}

// HasProperty reports whether name is a native property of the element.
func (e *Element) HasProperty(name string) bool {
	p, ok := properties[name]
	return ok && p.appliesTo(e)
}

// Property returns the current value of a native property.
func (e *Element) Property(name string) (any, bool) {
	p, ok := properties[name]
	if !ok || !p.appliesTo(e) {
		return nil, false
	}
	return p.get(e), true
}

// SetProperty assigns a native property, converting v the way a script
// assignment would. It returns false if name is not a property of the
// element or v cannot be converted.
func (e *Element) SetProperty(name string, v any) bool {
	p, ok := properties[name]
	if !ok || !p.appliesTo(e) {
		return false
	}
	return p.set(e, v)
}

// Value returns the current value of a form control.
func (e *Element) Value() string {
	switch e.LocalName() {
	case "input":
		if e.isCheckable() {
			if e.HasAttribute("value") {
				return e.GetAttribute("value")
			}
			return "on"
		}
		if v := e.data().value; v != nil {
			return *v
		}
		return e.GetAttribute("value")
	case "textarea":
		if v := e.data().value; v != nil {
			return *v
		}
		return e.TextContent()
	case "select":
		for _, opt := range e.options() {
			if opt.Selected() {
				return opt.Value()
			}
		}
		return ""
	case "option":
		if e.HasAttribute("value") {
			return e.GetAttribute("value")
		}
		return strings.Join(strings.Fields(e.TextContent()), " ")
	}
	return e.GetAttribute("value")
}

// SetValue assigns the current value of a form control. Checkboxes, radios,
// options and buttons store it in the value attribute; text controls keep it
// as live state; selects pick the first option with that value.
func (e *Element) SetValue(value string) {
	switch e.LocalName() {
	case "input":
		if e.isCheckable() {
			_ = e.SetAttribute("value", value)
			return
		}
		e.data().value = &value
	case "textarea":
		e.data().value = &value
	case "select":
		matched := false
		for _, opt := range e.options() {
			sel := !matched && opt.Value() == value
			if sel {
				matched = true
			}
			opt.data().selected = &sel
		}
	default:
		_ = e.SetAttribute("value", value)
	}
}

// Checked returns the checkedness of an input.
func (e *Element) Checked() bool {
	if c := e.data().checked; c != nil {
		return *c
	}
	return e.HasAttribute("checked")
}

// SetChecked sets the checkedness of an input. Checking a radio button
// unchecks the other radios of its group in the same tree.
func (e *Element) SetChecked(checked bool) {
	e.data().checked = &checked
	if !checked || e.GetAttribute("type") != "radio" || e.GetAttribute("name") == "" {
		return
	}
	name := e.GetAttribute("name")
	e.AsNode().GetRootNode().walkElements(func(other *Element) bool {
		if other != e && other.LocalName() == "input" &&
			other.GetAttribute("type") == "radio" && other.GetAttribute("name") == name {
			f := false
			other.data().checked = &f
		}
		return true
	})
}

// Selected returns the selectedness of an option. A single-choice select
// with no explicitly selected option selects its first option.
func (e *Element) Selected() bool {
	if s := e.data().selected; s != nil {
		return *s
	}
	if e.HasAttribute("selected") {
		return true
	}
	sel := e.ownerSelect()
	if sel == nil || sel.HasAttribute("multiple") {
		return false
	}
	opts := sel.options()
	for _, opt := range opts {
		if s := opt.data().selected; (s != nil && *s) || (s == nil && opt.HasAttribute("selected")) {
			return false
		}
	}
	return len(opts) > 0 && opts[0] == e
}

// SetSelected sets the selectedness of an option. In a single-choice select
// the other options are deselected.
func (e *Element) SetSelected(selected bool) {
	sel := e.ownerSelect()
	if selected && sel != nil && !sel.HasAttribute("multiple") {
		for _, opt := range sel.options() {
			f := false
			opt.data().selected = &f
		}
	}
	e.data().selected = &selected
}

// SelectedIndex returns the index of the first selected option, or -1.
func (e *Element) SelectedIndex() int {
	for i, opt := range e.options() {
		if opt.Selected() {
			return i
		}
	}
	return -1
}

// SetSelectedIndex selects the option at index i; out of range deselects all.
func (e *Element) SetSelectedIndex(i int) {
	for j, opt := range e.options() {
		sel := j == i
		opt.data().selected = &sel
	}
}

func (e *Element) isCheckable() bool {
	t := strings.ToLower(e.GetAttribute("type"))
	return t == "checkbox" || t == "radio"
}

func (e *Element) options() []*Element {
	if e.LocalName() != "select" {
		return nil
	}
	return e.GetElementsByTagName("option")
}

func (e *Element) ownerSelect() *Element {
	for p := e.AsNode().ParentElement(); p != nil; p = p.AsNode().ParentElement() {
		switch p.LocalName() {
		case "select":
			return p
		case "optgroup":
			continue
		default:
			return nil
		}
	}
	return nil
}

func anyElement(*Element) bool { return true }

func tags(names ...string) func(*Element) bool {
	return func(e *Element) bool {
		local := e.LocalName()
		for _, n := range names {
			if n == local {
				return true
			}
		}
		return false
	}
}

func reflectString(attr string, appliesTo func(*Element) bool) property {
	return property{
		appliesTo: appliesTo,
		get:       func(e *Element) any { return e.GetAttribute(attr) },
		set: func(e *Element, v any) bool {
			s, ok := toString(v)
			if !ok {
				return false
			}
			return e.SetAttribute(attr, s) == nil
		},
	}
}

func reflectBool(attr string, appliesTo func(*Element) bool) property {
	return property{
		appliesTo: appliesTo,
		get:       func(e *Element) any { return e.HasAttribute(attr) },
		set: func(e *Element, v any) bool {
			if toBool(v) {
				return e.SetAttribute(attr, "") == nil
			}
			e.RemoveAttribute(attr)
			return true
		},
	}
}

// toString converts scalars the way a script assignment stringifies them.
// Structured values are refused.
func toString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
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

// toBool applies script truthiness.
func toBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0 && t == t
	}
	return true
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		return i, err == nil
	}
	return 0, false
}
