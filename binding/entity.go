// Package binding keeps a set of named form properties ("entities")
// synchronized with the elements of a rendered form.
//
// Each entity says how its elements are found (by name, id, class, tag or a
// raw selector) and which attribute holds its value. The Binder pushes
// entity values into the view and pulls view values back into entities
// without the caller knowing how elements are addressed.
package binding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Method is the strategy used to locate the elements of an entity.
type Method string

const (
	ByName      Method = "name"
	ByID        Method = "id"
	ByClassName Method = "className"
	ByTagName   Method = "tagName"
	BySelector  Method = "selector"
)

// Methods lists the recognized identification methods.
var Methods = []Method{ByName, ByID, ByClassName, ByTagName, BySelector}

// Valid reports whether m is a recognized identification method.
func (m Method) Valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// Control keys of an entity descriptor.
const (
	KeyIdentificationMethod = "identificationMethod"
	KeyIdentificationValue  = "identificationValue"
	KeyDefaultAttribute     = "defaultAttribute"
	KeyUsesByForm           = "usesByForm"
	KeyMultiple             = "multiple"
	KeyDisallowedProperties = "disallowedProperties"
)

var reservedKeys = map[string]bool{
	KeyIdentificationMethod: true,
	KeyIdentificationValue:  true,
	KeyDefaultAttribute:     true,
	KeyUsesByForm:           true,
	KeyMultiple:             true,
	KeyDisallowedProperties: true,
}

// IsReserved reports whether name is a control key that is never written
// to an element.
func IsReserved(name string) bool {
	return reservedKeys[name]
}

// Entity is a named logical form property.
type Entity struct {
	Key string

	// Control fields, always populated once an entity is stored.
	Method           Method
	Identifier       string
	DefaultAttribute string
	Multiple         bool
	UsesByForm       bool

	// Fields holds the free-form attribute fields (value, innerHTML,
	// classList, ...) written to elements on push.
	Fields map[string]any
}

// DefaultEntity returns the template that fills control fields absent from
// entity data.
func DefaultEntity() Entity {
	return Entity{
		Method:           ByName,
		DefaultAttribute: "value",
		UsesByForm:       true,
	}
}

// descriptor is the decoded form of structured entity data. Pointers tell
// absent fields apart from zero values.
type descriptor struct {
	IdentificationMethod *string        `mapstructure:"identificationMethod"`
	IdentificationValue  *string        `mapstructure:"identificationValue"`
	DefaultAttribute     *string        `mapstructure:"defaultAttribute"`
	Multiple             *bool          `mapstructure:"multiple"`
	UsesByForm           *bool          `mapstructure:"usesByForm"`
	Disallowed           interface{}    `mapstructure:"disallowedProperties"`
	Fields               map[string]any `mapstructure:",remain"`
}

// MakeEntity normalizes data into an Entity. A string is wrapped as
// {identificationValue: key, value: data}; a string-keyed map is decoded as
// a descriptor; an Entity is taken as is. Fields absent from data are
// filled from defaults; fields present in data always win.
func MakeEntity(key string, data any, defaults Entity) (Entity, error) {
	if key == "" {
		return Entity{}, fmt.Errorf("%w: empty key", ErrInvalidData)
	}

	var desc descriptor
	switch d := data.(type) {
	case Entity:
		desc = descriptorOf(d)
	case *Entity:
		if d == nil {
			return Entity{}, fmt.Errorf("%w: nil entity", ErrInvalidData)
		}
		desc = descriptorOf(*d)
	case string:
		desc = scalarDescriptor(key, d)
	case Scalar:
		desc = scalarDescriptor(key, string(d))
	case Structured:
		if err := decodeDescriptor(map[string]any(d), &desc); err != nil {
			return Entity{}, err
		}
	case map[string]any:
		if err := decodeDescriptor(d, &desc); err != nil {
			return Entity{}, err
		}
	default:
		return Entity{}, fmt.Errorf("%w: %T is neither a string nor a structured value", ErrInvalidData, data)
	}

	e := Entity{
		Key:              key,
		Method:           defaults.Method,
		Identifier:       key,
		DefaultAttribute: defaults.DefaultAttribute,
		Multiple:         defaults.Multiple,
		UsesByForm:       defaults.UsesByForm,
		Fields:           make(map[string]any, len(desc.Fields)+len(defaults.Fields)),
	}
	if e.Method == "" {
		e.Method = ByName
	}
	if e.DefaultAttribute == "" {
		e.DefaultAttribute = "value"
	}

	if desc.IdentificationMethod != nil {
		e.Method = Method(*desc.IdentificationMethod)
	}
	if desc.IdentificationValue != nil && strings.TrimSpace(*desc.IdentificationValue) != "" {
		e.Identifier = *desc.IdentificationValue
	}
	if desc.DefaultAttribute != nil && *desc.DefaultAttribute != "" {
		e.DefaultAttribute = *desc.DefaultAttribute
	}
	if desc.Multiple != nil {
		e.Multiple = *desc.Multiple
	}
	if desc.UsesByForm != nil {
		e.UsesByForm = *desc.UsesByForm
	}
	for k, v := range desc.Fields {
		if !IsReserved(k) {
			e.Fields[k] = v
		}
	}
	for k, v := range defaults.Fields {
		if _, ok := e.Fields[k]; !ok && !IsReserved(k) {
			e.Fields[k] = v
		}
	}

	if !e.Method.Valid() {
		return Entity{}, fmt.Errorf("%w: %q", ErrInvalidMethod, e.Method)
	}
	return e, nil
}

func scalarDescriptor(key, value string) descriptor {
	return descriptor{
		IdentificationValue: &key,
		Fields:              map[string]any{"value": value},
	}
}

func descriptorOf(e Entity) descriptor {
	method := string(e.Method)
	return descriptor{
		IdentificationMethod: &method,
		IdentificationValue:  &e.Identifier,
		DefaultAttribute:     &e.DefaultAttribute,
		Multiple:             &e.Multiple,
		UsesByForm:           &e.UsesByForm,
		Fields:               e.Fields,
	}
}

func decodeDescriptor(data map[string]any, desc *descriptor) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    desc,
		TagName:   "mapstructure",
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}

// Clone returns a copy of the entity that shares no mutable state with it.
func (e Entity) Clone() Entity {
	c := e
	c.Fields = make(map[string]any, len(e.Fields))
	for k, v := range e.Fields {
		c.Fields[k] = cloneFieldValue(v)
	}
	return c
}

func cloneFieldValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		return append([]any(nil), t...)
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = cloneFieldValue(v)
		}
		return m
	}
	return v
}

// Value returns the entity's fields as the structured value pushed to its
// elements.
func (e Entity) Value() Structured {
	return Structured(e.Fields)
}

// DefaultValue returns the field named by the entity's default attribute.
func (e Entity) DefaultValue() any {
	return e.Fields[e.DefaultAttribute]
}

// PropertyNames returns the sorted names of the entity's free-form fields.
func (e Entity) PropertyNames() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		if !IsReserved(k) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// ToMap returns the JSON-like descriptor of the entity.
func (e Entity) ToMap() map[string]any {
	m := make(map[string]any, len(e.Fields)+5)
	for k, v := range e.Fields {
		m[k] = cloneFieldValue(v)
	}
	m[KeyIdentificationMethod] = string(e.Method)
	m[KeyIdentificationValue] = e.Identifier
	m[KeyDefaultAttribute] = e.DefaultAttribute
	m[KeyMultiple] = e.Multiple
	m[KeyUsesByForm] = e.UsesByForm
	return m
}
