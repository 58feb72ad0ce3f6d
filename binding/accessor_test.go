package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/tingle/dom"
)

func TestSetAttribute_Precedence(t *testing.T) {
	doc := dom.NewDocument()
	el := doc.CreateElement("input")

	tests := []struct {
		name  string
		value any
		ok    bool
		check func(t *testing.T)
	}{
		{"classList", []string{"a", "b"}, true, func(t *testing.T) {
			assert.Equal(t, "a b", el.ClassName())
		}},
		{"classList", []any{"c"}, true, func(t *testing.T) {
			assert.Equal(t, "a b c", el.ClassName())
		}},
		{"classList", []any{"d", 1}, false, nil},
		{"classList", []string{}, false, nil},
		{"className", "x y", true, func(t *testing.T) {
			assert.Equal(t, "x y", el.ClassName())
		}},
		{"className", nil, true, func(t *testing.T) {
			assert.False(t, el.HasAttribute("class"))
		}},
		{"className", 5, false, nil},
		{"value", "live", true, func(t *testing.T) {
			assert.Equal(t, "live", el.Value())
			assert.False(t, el.HasAttribute("value"))
		}},
		{"disabled", true, true, func(t *testing.T) {
			assert.True(t, el.HasAttribute("disabled"))
		}},
		{"style", map[string]any{"color": "red"}, true, func(t *testing.T) {
			assert.Equal(t, "red", el.Style().GetPropertyValue("color"))
		}},
		{"data-n", 12, true, func(t *testing.T) {
			assert.Equal(t, "12", el.GetAttribute("data-n"))
		}},
		{"data-s", Scalar("s"), true, func(t *testing.T) {
			assert.Equal(t, "s", el.GetAttribute("data-s"))
		}},
		{"data-b", true, false, nil},
		{"data-m", map[string]any{"a": 1}, false, nil},
		{"bad name", "x", false, nil},
	}

	for _, tt := range tests {
		ok := SetAttribute(el, tt.name, tt.value)
		require.Equal(t, tt.ok, ok, "SetAttribute(%q, %v)", tt.name, tt.value)
		if tt.check != nil {
			tt.check(t)
		}
	}

	assert.False(t, SetAttribute(nil, "value", "x"))
}

func TestSetAttribute_InnerHTML(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.CreateElement("div")

	assert.True(t, SetAttribute(div, "innerHTML", "<i>hi</i>"))
	assert.Equal(t, "<i>hi</i>", div.InnerHTML())
	assert.False(t, SetAttribute(div, "innerHTML", 3))
	assert.False(t, SetAttribute(div, "value", "x"))
	assert.Equal(t, "<i>hi</i>", GetAttribute(div, "innerHTML"))
}

func TestGetAttribute(t *testing.T) {
	doc, err := dom.ParseHTML(`<input class="a b" name="n" value="v" data-k="1" style="top: 0">`)
	require.NoError(t, err)
	el := doc.GetElementsByTagName("input")[0]

	assert.Equal(t, []string{"a", "b"}, GetAttribute(el, "classList"))
	assert.Equal(t, "a b", GetAttribute(el, "className"))
	assert.Equal(t, "v", GetAttribute(el, "value"))
	assert.Equal(t, false, GetAttribute(el, "checked"))
	assert.Equal(t, "1", GetAttribute(el, "data-k"))
	assert.Equal(t, "top: 0;", GetAttribute(el, "style"))
	assert.Nil(t, GetAttribute(el, "data-none"))
	assert.Nil(t, GetAttribute(nil, "value"))
}
