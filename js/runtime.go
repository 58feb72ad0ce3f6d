// Package js runs dialog scripts. It uses the goja JavaScript engine (pure
// Go ES5.1+ implementation) and exposes tingle.modal to scripts.
package js

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/tingle/dom"
	"github.com/chrisuehlinger/tingle/log"
	"github.com/chrisuehlinger/tingle/modal"
)

// ErrNoDocument is returned when a script needs a document before one is set.
var ErrNoDocument = errors.New("js: no document")

// Runtime wraps a goja JavaScript runtime with the dialog API.
type Runtime struct {
	vm       *goja.Runtime
	logger   *slog.Logger
	doc      *dom.Document
	elements *elementBinder
	modals   []*modal.Modal
	viewport modal.Viewport
	mu       sync.Mutex
	errors   []error
	onError  func(error)
}

// NewRuntime creates a new JavaScript runtime. Console output and script
// errors go to logger; a nil logger discards them.
func NewRuntime(logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = log.Discard()
	}
	r := &Runtime{
		vm:     goja.New(),
		logger: logger,
		errors: make([]error, 0),
	}
	r.elements = newElementBinder(r)

	r.setupConsole()
	r.setupTingle()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// SetDocument sets the document dialogs are built in and exposes it to
// scripts as document.
func (r *Runtime) SetDocument(doc *dom.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc
	r.elements.reset()
	r.vm.Set("document", r.elements.bindDocument(doc))
}

// Document returns the current document.
func (r *Runtime) Document() *dom.Document {
	return r.doc
}

// SetViewport sets the viewport handed to dialogs created by scripts.
func (r *Runtime) SetViewport(v modal.Viewport) {
	r.viewport = v
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Modals returns the dialogs created by scripts, in creation order.
func (r *Runtime) Modals() []*modal.Modal {
	return append([]*modal.Modal(nil), r.modals...)
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recover from panics in the goja parser/runtime
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs a script named src. Scripts run in
// sloppy mode unless they opt into strict mode themselves.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}

	_, err = r.vm.RunProgram(program)
	if err != nil {
		r.recordError(err)
	}
	return err
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// recordError must be called with mu held or from inside a script call.
func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.logger.Error("script error", "err", err)
	if r.onError != nil {
		r.onError(err)
	}
}

// call invokes a script callback, recording any exception it throws.
func (r *Runtime) call(fn goja.Callable, this goja.Value, args ...goja.Value) (goja.Value, bool) {
	v, err := fn(this, args...)
	if err != nil {
		r.recordError(err)
		return nil, false
	}
	return v, true
}

// setupConsole routes console output to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	levels := map[string]slog.Level{
		"log":   slog.LevelInfo,
		"info":  slog.LevelInfo,
		"debug": slog.LevelDebug,
		"trace": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, level := range levels {
		level := level
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			r.logger.Log(context.Background(), level, formatArgs(call.Arguments), "source", "console")
			return goja.Undefined()
		})
	}

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg = formatArgs(call.Arguments[1:])
			}
			r.logger.Error(msg, "source", "console")
		}
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// formatArgs joins console arguments the way browsers print them.
func formatArgs(args []goja.Value) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, formatValue(arg))
	}
	return strings.Join(parts, " ")
}

func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
