package dom

import (
	"strings"
)

// CSSStyleDeclaration represents an element's inline style. It holds no state
// of its own: every call parses the style attribute and writes it back, so
// direct attribute edits are always observed.
type CSSStyleDeclaration struct {
	element *Element
}

// styleProperty holds a single CSS declaration.
type styleProperty struct {
	name      string
	value     string
	important bool
}

func (sd *CSSStyleDeclaration) parse() []styleProperty {
	var props []styleProperty
	for _, decl := range strings.Split(sd.element.GetAttribute("style"), ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		important := false
		if i := strings.Index(strings.ToLower(value), "!important"); i >= 0 {
			important = true
			value = strings.TrimSpace(value[:i])
		}
		props = upsertStyle(props, styleProperty{name: name, value: value, important: important})
	}
	return props
}

func upsertStyle(props []styleProperty, p styleProperty) []styleProperty {
	for i := range props {
		if props[i].name == p.name {
			props[i] = p
			return props
		}
	}
	return append(props, p)
}

func (sd *CSSStyleDeclaration) write(props []styleProperty) {
	if len(props) == 0 {
		sd.element.RemoveAttribute("style")
		return
	}
	_ = sd.element.SetAttribute("style", serializeStyle(props))
}

func serializeStyle(props []styleProperty) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		part := p.name + ": " + p.value
		if p.important {
			part += " !important"
		}
		parts = append(parts, part+";")
	}
	return strings.Join(parts, " ")
}

// CSSText returns the textual representation of the declaration block.
func (sd *CSSStyleDeclaration) CSSText() string {
	return serializeStyle(sd.parse())
}

// SetCSSText replaces all declarations with the ones in cssText.
func (sd *CSSStyleDeclaration) SetCSSText(cssText string) {
	_ = sd.element.SetAttribute("style", cssText)
	sd.write(sd.parse())
}

// Length returns the number of declarations.
func (sd *CSSStyleDeclaration) Length() int {
	return len(sd.parse())
}

// GetPropertyValue returns the value of a property, or "" if unset.
func (sd *CSSStyleDeclaration) GetPropertyValue(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range sd.parse() {
		if p.name == name {
			return p.value
		}
	}
	return ""
}

// SetProperty sets a property. An empty value removes it.
func (sd *CSSStyleDeclaration) SetProperty(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		sd.RemoveProperty(name)
		return
	}
	sd.write(upsertStyle(sd.parse(), styleProperty{name: name, value: value}))
}

// RemoveProperty removes a property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	props := sd.parse()
	for i, p := range props {
		if p.name == name {
			sd.write(append(props[:i], props[i+1:]...))
			return p.value
		}
	}
	return ""
}
