package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/tingle/dom"
	"github.com/chrisuehlinger/tingle/modal"
)

const yamlDefinition = `
options:
  closeLabel: Fermer
  cssClass: [profile]
content: |
  <form>
    <input name="name">
    <input name="age">
    <input type="checkbox" name="admin">
    <p id="note"></p>
  </form>
footer: "<span>footer</span>"
buttons:
  - label: Save
    cssClass: tingle-btn tingle-btn--primary
  - label: Cancel
    action: close
entities:
  name: Ada
  age: ""
  admin:
    defaultAttribute: checked
    checked: false
  note:
    identificationMethod: id
    defaultAttribute: innerHTML
    innerHTML: "<b>hi</b>"
bind:
  name: $.user.name
  age: $.user.age
  admin: $.user.admin
`

const tomlDefinition = `
content = '<input name="city">'
open = true

[options]
footer = true
closeMethods = ["button", "escape"]

[entities]
city = "Paris"
`

func TestParse_YAML(t *testing.T) {
	d, err := Parse([]byte(yamlDefinition), "yaml")
	require.NoError(t, err)

	assert.Equal(t, "Fermer", d.Options["closeLabel"])
	require.Len(t, d.Buttons, 2)
	assert.Equal(t, ActionClose, d.Buttons[1].Action)
	assert.Len(t, d.Entities, 4)
	assert.Equal(t, "$.user.name", d.Bind["name"])
	assert.False(t, d.Open)
}

func TestParse_TOML(t *testing.T) {
	d, err := Parse([]byte(tomlDefinition), "toml")
	require.NoError(t, err)

	assert.True(t, d.Open)
	assert.Equal(t, "Paris", d.Entities["city"])
}

func TestParse_JSON(t *testing.T) {
	d, err := Parse([]byte(`{"content": "<input name=\"q\">", "entities": {"q": "go"}}`), "json")
	require.NoError(t, err)
	assert.Equal(t, "go", d.Entities["q"])
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("content: x"), "ini")
	assert.True(t, errors.Is(err, ErrFormat))

	_, err = Parse([]byte("content: [unterminated"), "yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("options:\n  closeMethods: [swipe]\n"), "yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("buttons:\n  - action: close\n"), "yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("buttons:\n  - label: Go\n    action: launch\n"), "yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("bind:\n  name: \"\"\n"), "yaml")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	osReadFile = func(name string) ([]byte, error) {
		if name == "dialog.toml" {
			return []byte(tomlDefinition), nil
		}
		return nil, os.ErrNotExist
	}
	defer func() { osReadFile = os.ReadFile }()

	d, err := Load("dialog.toml")
	require.NoError(t, err)
	assert.Equal(t, "Paris", d.Entities["city"])

	_, err = Load("missing.yaml")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load("dialog.txt")
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestBuild(t *testing.T) {
	d, err := Parse([]byte(yamlDefinition), "yaml")
	require.NoError(t, err)

	doc := dom.NewDocument()
	m, err := d.Build(doc, nil)
	require.NoError(t, err)

	assert.Equal(t, modal.Ready, m.State())
	assert.True(t, m.Root().ClassList().Contains("profile"))
	assert.Equal(t, 4, m.Len())

	v, ok := m.GetValue("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", v)

	note := doc.GetElementById("note")
	require.NotNil(t, note)
	assert.Equal(t, "<b>hi</b>", note.InnerHTML())

	buttons := m.FooterButtons()
	require.Len(t, buttons, 2)
	assert.True(t, buttons[0].ClassList().Contains("tingle-btn--primary"))
	assert.Contains(t, m.FooterContent().InnerHTML(), "<span>footer</span>")

	require.True(t, m.Open())
	assert.True(t, m.Click(buttons[1]))
	assert.False(t, m.IsOpen())
}

func TestBuild_Open(t *testing.T) {
	d, err := Parse([]byte(tomlDefinition), "toml")
	require.NoError(t, err)

	m, err := d.Build(dom.NewDocument(), nil)
	require.NoError(t, err)
	assert.True(t, m.IsOpen())

	v, ok := m.GetValue("city")
	require.True(t, ok)
	assert.Equal(t, "Paris", v)
}

func TestBuild_NoDocument(t *testing.T) {
	d := &Definition{}
	_, err := d.Build(nil, nil)
	assert.True(t, errors.Is(err, modal.ErrNoDocument))
}

func TestBuild_InvalidEntity(t *testing.T) {
	d := &Definition{Entities: map[string]interface{}{"bad": 42}}
	doc := dom.NewDocument()
	_, err := d.Build(doc, nil)
	assert.Error(t, err)
	assert.Nil(t, doc.Body().FirstElementChild())
}

func TestBind(t *testing.T) {
	data, err := ParseData([]byte(`{"user": {"name": "Grace", "age": 85, "tags": ["a", "b"]}}`))
	require.NoError(t, err)

	values, err := Bind(map[string]string{
		"name": "$.user.name",
		"age":  "$.user.age",
		"tag":  "$.user.tags[1]",
	}, data)
	require.NoError(t, err)
	assert.Equal(t, "Grace", values["name"])
	assert.Equal(t, "85", values["age"])
	assert.Equal(t, "b", values["tag"])

	data, err = ParseData([]byte(`{"zip": 1234567, "price": 1000000, "rate": 0.25}`))
	require.NoError(t, err)
	values, err = Bind(map[string]string{"zip": "$.zip", "price": "$.price", "rate": "$.rate"}, data)
	require.NoError(t, err)
	assert.Equal(t, "1234567", values["zip"])
	assert.Equal(t, "1000000", values["price"])
	assert.Equal(t, "0.25", values["rate"])

	_, err = Bind(map[string]string{"x": "$.user.missing"}, data)
	assert.Error(t, err)

	_, err = ParseData([]byte("{"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	d, err := Parse([]byte(yamlDefinition), "yaml")
	require.NoError(t, err)
	m, err := d.Build(dom.NewDocument(), nil)
	require.NoError(t, err)

	data, err := ParseData([]byte(`{"user": {"name": "Grace", "age": 85, "admin": true}}`))
	require.NoError(t, err)

	n, err := d.Apply(m, data)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	values := m.GetSomeValues("name", "age", "admin")
	assert.Equal(t, "Grace", values["name"])
	assert.Equal(t, "85", values["age"])
	assert.Equal(t, true, values["admin"])

	d.Bind = map[string]string{"ghost": "$.user.name"}
	_, err = d.Apply(m, data)
	assert.Error(t, err)
}
