package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/tingle/config"
	"github.com/chrisuehlinger/tingle/dom"
	"github.com/chrisuehlinger/tingle/js"
	"github.com/chrisuehlinger/tingle/modal"
	"github.com/chrisuehlinger/tingle/network"
)

// sessionFlags are the inputs shared by every command that builds a dialog.
type sessionFlags struct {
	dialog string
	page   string
	data   string
	script string
	open   bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dialog, "dialog", "d", "", "dialog definition (.yaml, .yml, .toml or .json), as a path or URL")
	cmd.Flags().StringVar(&f.page, "page", "", "HTML page hosting the dialog")
	cmd.Flags().StringVar(&f.data, "data", "", "JSON data bound into the dialog entities")
	cmd.Flags().StringVar(&f.script, "script", "", "script run after the dialog is built")
	cmd.Flags().BoolVar(&f.open, "open", false, "open the dialog")
	_ = cmd.MarkFlagRequired("dialog")
}

// session is a dialog built from a definition inside its host document.
type session struct {
	def     *config.Definition
	doc     *dom.Document
	modal   *modal.Modal
	runtime *js.Runtime
	loader  *network.Loader
}

// newSession loads the definition, builds the dialog, binds the data and
// runs the scripts, in that order. Every input may be a path or a file,
// data or HTTP URL.
func newSession(ctx context.Context, f *sessionFlags, logger *slog.Logger) (*session, error) {
	loader := network.NewLoader(nil)

	res, err := loader.Load(ctx, f.dialog)
	if err != nil {
		return nil, fmt.Errorf("load definition: %w", err)
	}
	def, err := config.Parse(res.Content, res.Extension())
	if err != nil {
		return nil, err
	}

	doc := dom.NewDocument()
	if f.page != "" {
		if doc, err = loader.LoadDocument(ctx, f.page); err != nil {
			return nil, fmt.Errorf("load page: %w", err)
		}
	}

	m, err := def.Build(doc, logger)
	if err != nil {
		return nil, err
	}
	s := &session{def: def, doc: doc, modal: m, loader: loader}

	if f.data != "" {
		res, err := loader.Load(ctx, f.data)
		if err != nil {
			return nil, fmt.Errorf("load data: %w", err)
		}
		data, err := config.ParseData(res.Content)
		if err != nil {
			return nil, err
		}
		n, err := def.Apply(m, data)
		if err != nil {
			return nil, err
		}
		logger.Debug("data bound", "elements", n)
	}

	scripts := []struct{ code, src string }{{def.Script, f.dialog}}
	if f.script != "" {
		res, err := loader.Load(ctx, f.script)
		if err != nil {
			return nil, fmt.Errorf("load script: %w", err)
		}
		scripts = append(scripts, struct{ code, src string }{res.AsString(), f.script})
	}
	for _, sc := range scripts {
		if sc.code == "" {
			continue
		}
		if s.runtime == nil {
			s.runtime = js.NewRuntime(logger)
			s.runtime.SetDocument(doc)
			s.runtime.BindModal("modal", m)
		}
		if err := s.runtime.ExecuteScript(sc.code, sc.src); err != nil {
			return nil, err
		}
	}

	if f.open && !m.IsOpen() && !m.Open() {
		logger.Warn("dialog refused to open", "state", m.State())
	}
	return s, nil
}
