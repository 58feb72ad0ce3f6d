package binding

// Value is a value bound to an entity: either a Scalar written to the
// entity's default attribute, or a Structured set of attribute writes.
type Value interface {
	isValue()
}

// Scalar is a plain value written to the entity's default attribute.
type Scalar string

// Structured maps attribute or property names to the values written to
// them. Reserved control keys are never written.
type Structured map[string]any

func (Scalar) isValue()     {}
func (Structured) isValue() {}

// ValueOf classifies caller-supplied data. Strings are scalar, string-keyed
// maps are structured, anything else is rejected.
func ValueOf(v any) (Value, bool) {
	switch t := v.(type) {
	case Scalar:
		return t, true
	case string:
		return Scalar(t), true
	case Structured:
		return t, true
	case map[string]any:
		return Structured(t), true
	case map[string]string:
		s := make(Structured, len(t))
		for k, v := range t {
			s[k] = v
		}
		return s, true
	}
	return nil, false
}
