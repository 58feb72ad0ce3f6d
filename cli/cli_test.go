package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definition = `
content: '<input name="city"><input type="checkbox" name="news">'
buttons:
  - label: OK
    action: close
entities:
  city: Paris
  news:
    defaultAttribute: checked
    checked: false
bind:
  city: $.address.city
script: |
  console.info("built", modal.id);
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	dialog := writeFile(t, dir, "dialog.yaml", definition)

	out, _, err := run(t, "render", "--dialog", dialog)
	require.NoError(t, err)
	assert.Contains(t, out, `class="tingle-modal`)
	assert.Contains(t, out, `value="Paris"`)
	assert.Contains(t, out, "<button")
	assert.NotContains(t, out, "<body")
}

func TestRender_DataAndScript(t *testing.T) {
	dir := t.TempDir()
	dialog := writeFile(t, dir, "dialog.yaml", definition)
	data := writeFile(t, dir, "data.json", `{"address": {"city": "Lyon"}}`)
	script := writeFile(t, dir, "fill.js", `modal.setValue("news", {checked: true});`)

	out, _, err := run(t, "render", "--dialog", dialog, "--data", data, "--script", script, "--open")
	require.NoError(t, err)
	assert.Contains(t, out, `value="Lyon"`)
	assert.Contains(t, out, `checked=""`)
	assert.Contains(t, out, "tingle-modal--visible")
}

func TestRender_RemoteInputs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write([]byte(definition))
	}))
	defer server.Close()

	out, _, err := run(t, "render", "--dialog", server.URL+"/profile",
		"--data", `data:application/json,{"address":{"city":"Oslo"}}`)
	require.NoError(t, err)
	assert.Contains(t, out, `value="Oslo"`)
}

func TestRender_WholePage(t *testing.T) {
	dir := t.TempDir()
	dialog := writeFile(t, dir, "dialog.yaml", definition)
	page := writeFile(t, dir, "page.html", `<html><body><main id="app">app</main></body></html>`)

	out, _, err := run(t, "render", "--dialog", dialog, "--page", page, "--whole-page")
	require.NoError(t, err)
	assert.Contains(t, out, `<main id="app">app</main>`)
	assert.Contains(t, out, `<body><div class="tingle-modal`)
}

func TestRender_Logging(t *testing.T) {
	dir := t.TempDir()
	dialog := writeFile(t, dir, "dialog.yaml", definition)

	_, stderr, err := run(t, "--log-level", "debug", "render", "--dialog", dialog)
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=\"built")
	assert.Contains(t, stderr, "id=tingle")

	_, _, err = run(t, "--log-level", "loud", "render", "--dialog", dialog)
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	dialog := writeFile(t, dir, "dialog.yaml", definition)
	form := writeFile(t, dir, "form.html", `<input name="city" value="Rome"><input type="checkbox" name="news" checked>`)

	out, _, err := run(t, "extract", "--dialog", dialog, "--form", form)
	require.NoError(t, err)

	var entities map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &entities))
	require.Contains(t, entities, "city")
	assert.Equal(t, "Rome", entities["city"]["value"])
	assert.Equal(t, "name", entities["city"]["identificationMethod"])
	assert.Equal(t, true, entities["news"]["checked"])
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "render")
	assert.Error(t, err)

	_, _, err = run(t, "render", "--dialog", writeFile(t, dir, "dialog.ini", "x"))
	assert.Error(t, err)

	broken := writeFile(t, dir, "broken.yaml", "script: 'var x = ;'\n")
	_, _, err = run(t, "render", "--dialog", broken)
	assert.Error(t, err)

	dialog := writeFile(t, dir, "dialog.yaml", definition)
	_, _, err = run(t, "render", "--dialog", dialog, "--data", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
