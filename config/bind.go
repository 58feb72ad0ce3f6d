package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/PaesslerAG/jsonpath"

	"github.com/chrisuehlinger/tingle/modal"
)

// ParseData decodes a JSON document for Bind.
func ParseData(data []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	return v, nil
}

// Bind evaluates each JSONPath expression against data and returns the
// results by entity key.
func Bind(expressions map[string]string, data interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(expressions))
	for key, expr := range expressions {
		v, err := jsonpath.Get(expr, data)
		if err != nil {
			return nil, fmt.Errorf("bind %q: %w", key, err)
		}
		out[key] = bindValue(v)
	}
	return out, nil
}

// bindValue turns JSON numbers into their shortest decimal form, so
// integral values render without a fraction or an exponent.
func bindValue(v interface{}) interface{} {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return v
}

// Apply binds data into the dialog's entities and pushes each bound value
// to the form. It returns the number of elements changed.
func (d *Definition) Apply(m *modal.Modal, data interface{}) (int, error) {
	values, err := Bind(d.Bind, data)
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	changed := 0
	for _, key := range keys {
		n, err := m.UpdateEntityDefaultProperty(key, values[key], true)
		if err != nil {
			return changed, fmt.Errorf("apply %q: %w", key, err)
		}
		changed += n
	}
	return changed, nil
}
