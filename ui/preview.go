// Package ui previews dialogs in a native window using Fyne.
package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/chrisuehlinger/tingle/log"
	"github.com/chrisuehlinger/tingle/modal"
)

// Preview shows one dialog in its own window. Closing the dialog closes
// the window.
type Preview struct {
	app    fyne.App
	window fyne.Window
	view   *FormView
	modal  *modal.Modal
	logger *slog.Logger
}

// NewPreview creates a preview window for m in a new Fyne application.
func NewPreview(m *modal.Modal, w Window, logger *slog.Logger) *Preview {
	return NewPreviewWithApp(app.New(), m, w, logger)
}

// NewPreviewWithApp creates a preview window for m in a.
func NewPreviewWithApp(a fyne.App, m *modal.Modal, w Window, logger *slog.Logger) *Preview {
	w = w.withDefaults()
	if logger == nil {
		logger = log.Discard()
	}

	p := &Preview{
		app:    a,
		window: a.NewWindow(w.Title),
		modal:  m,
		logger: logger,
	}
	p.window.Resize(fyne.NewSize(float32(w.Width), float32(w.Height)))

	p.view = NewFormView(m)
	p.view.OnDismiss = p.dismiss
	p.window.SetContent(p.view.Content())
	p.window.SetCloseIntercept(func() {
		if p.modal.Close(true) {
			p.logger.Debug("dialog closed with its window")
		}
		p.window.Close()
	})

	p.setupKeyboardShortcuts()
	return p
}

// setupKeyboardShortcuts wires the dialog keys to the window canvas.
func (p *Preview) setupKeyboardShortcuts() {
	p.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		p.view.HandleKey(ev.Name)
	})

	// Ctrl+R: reload the widgets from the dialog
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		p.view.Refresh()
	})
}

// View returns the form view shown in the window.
func (p *Preview) View() *FormView {
	return p.view
}

// Window returns the preview window.
func (p *Preview) Window() fyne.Window {
	return p.window
}

// Show opens the dialog if needed and shows the window.
func (p *Preview) Show() {
	if !p.modal.IsOpen() && !p.modal.Open() {
		p.logger.Warn("dialog refused to open", "state", p.modal.State())
	}
	p.view.Refresh()
	p.window.Show()
}

// ShowAndRun shows the window and runs the application until it quits.
func (p *Preview) ShowAndRun() {
	p.Show()
	p.app.Run()
}

func (p *Preview) dismiss() {
	p.logger.Debug("dialog dismissed")
	p.window.Close()
}
