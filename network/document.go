package network

import (
	"context"
	"fmt"

	"github.com/chrisuehlinger/tingle/dom"
)

// LoadDocument loads and parses the HTML page that hosts a dialog.
func (l *Loader) LoadDocument(ctx context.Context, ref string) (*dom.Document, error) {
	res, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	doc, err := dom.ParseHTML(res.AsString())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", ref, err)
	}
	if doc.Body() == nil {
		return nil, fmt.Errorf("parse %s: document has no body", ref)
	}
	return doc, nil
}
