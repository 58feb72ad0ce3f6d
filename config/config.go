// Package config loads dialog definitions from YAML, TOML or JSON files and
// builds dialogs from them.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/tingle/dom"
	"github.com/chrisuehlinger/tingle/modal"
)

// ErrFormat is returned for an unsupported definition file format.
var ErrFormat = errors.New("config: unsupported file format")

// Button actions.
const (
	ActionClose = "close"
	ActionNone  = "none"
)

// Button is a footer button of a dialog definition.
type Button struct {
	Label    string `mapstructure:"label"`
	CSSClass string `mapstructure:"cssClass"`
	Action   string `mapstructure:"action"`
}

// Definition describes a dialog: its options, markup, entities and how
// external data binds to them.
type Definition struct {
	Options  map[string]interface{} `mapstructure:"options"`
	Content  string                 `mapstructure:"content"`
	Footer   string                 `mapstructure:"footer"`
	Buttons  []Button               `mapstructure:"buttons"`
	Entities map[string]interface{} `mapstructure:"entities"`
	Bind     map[string]string      `mapstructure:"bind"`
	Script   string                 `mapstructure:"script"`
	Open     bool                   `mapstructure:"open"`
}

// osReadFile redirects to os.ReadFile.
var osReadFile = os.ReadFile

// parser turns raw definition data into a generic document.
type parser interface {
	parse(data []byte) (map[string]interface{}, error)
}

// parserYAML implements the YAML definition parser.
type parserYAML struct {
	yamlUnmarshal func(in []byte, out interface{}) error
}

func (p *parserYAML) parse(data []byte) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := p.yamlUnmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// parserTOML implements the TOML definition parser.
type parserTOML struct {
	tomlUnmarshal func(in []byte, out interface{}) error
}

func (p *parserTOML) parse(data []byte) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := p.tomlUnmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// parserJSON implements the JSON definition parser.
type parserJSON struct {
	jsonUnmarshal func(in []byte, out interface{}) error
}

func (p *parserJSON) parse(data []byte) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := p.jsonUnmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

var (
	_ parser = (*parserYAML)(nil)
	_ parser = (*parserTOML)(nil)
	_ parser = (*parserJSON)(nil)
)

// parserFor returns the parser of a format name or file extension.
func parserFor(format string) (parser, error) {
	switch format {
	case "yaml", "yml", ".yaml", ".yml":
		return &parserYAML{yamlUnmarshal: yaml.Unmarshal}, nil
	case "toml", ".toml":
		return &parserTOML{tomlUnmarshal: toml.Unmarshal}, nil
	case "json", ".json":
		return &parserJSON{jsonUnmarshal: json.Unmarshal}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, format)
}

// Load reads a definition file. The format follows the file extension.
func Load(path string) (*Definition, error) {
	p, err := parserFor(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	data, err := osReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return parse(p, data)
}

// Parse decodes a definition in the given format (yaml, toml or json).
func Parse(data []byte, format string) (*Definition, error) {
	p, err := parserFor(format)
	if err != nil {
		return nil, err
	}
	return parse(p, data)
}

func parse(p parser, data []byte) (*Definition, error) {
	raw, err := p.parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	var d Definition
	if err := mapstructure.Decode(raw, &d); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the parts of a definition that can be checked without
// building the dialog.
func (d *Definition) Validate() error {
	if _, err := modal.DecodeOptions(d.Options); err != nil {
		return err
	}
	for i, b := range d.Buttons {
		if b.Label == "" {
			return fmt.Errorf("button %d: missing label", i)
		}
		switch b.Action {
		case "", ActionClose, ActionNone:
		default:
			return fmt.Errorf("button %q: unknown action %q", b.Label, b.Action)
		}
	}
	for key, expr := range d.Bind {
		if expr == "" {
			return fmt.Errorf("bind %q: empty expression", key)
		}
	}
	return nil
}

// Build creates the dialog in doc, fills its content and footer, registers
// its entities and pushes them to the form.
func (d *Definition) Build(doc *dom.Document, logger *slog.Logger) (*modal.Modal, error) {
	opts, err := modal.DecodeOptions(d.Options)
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	if d.Footer != "" || len(d.Buttons) > 0 {
		opts.Footer = true
	}

	m, err := modal.New(doc, opts)
	if err != nil {
		return nil, err
	}
	if err := m.SetContent(d.Content); err != nil {
		m.Destroy()
		return nil, fmt.Errorf("set content: %w", err)
	}
	if d.Footer != "" {
		if err := m.SetFooterContent(d.Footer); err != nil {
			m.Destroy()
			return nil, fmt.Errorf("set footer: %w", err)
		}
	}
	for _, b := range d.Buttons {
		var fn func()
		if b.Action == ActionClose {
			fn = func() { m.Close(false) }
		}
		m.AddFooterButton(b.Label, b.CSSClass, fn)
	}

	keys := make([]string, 0, len(d.Entities))
	for key := range d.Entities {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := m.CreateEntity(key, d.Entities[key], true); err != nil {
			m.Destroy()
			return nil, fmt.Errorf("entity %q: %w", key, err)
		}
		if _, err := m.UpdateFormFromEntity(key); err != nil {
			m.Destroy()
			return nil, fmt.Errorf("entity %q: %w", key, err)
		}
	}

	if d.Open {
		m.Open()
	}
	return m, nil
}
