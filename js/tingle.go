package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/tingle/binding"
	"github.com/chrisuehlinger/tingle/modal"
)

var callbackOptions = []string{"beforeOpen", "onOpen", "beforeClose", "onClose"}

// setupTingle installs the global tingle object. Scripts build dialogs with
// new tingle.modal(options).
func (r *Runtime) setupTingle() {
	tingle := r.vm.NewObject()
	tingle.Set("modal", func(call goja.ConstructorCall) *goja.Object {
		m, err := r.newModal(call.Argument(0), call.This)
		if err != nil {
			panic(r.vm.NewTypeError(err.Error()))
		}
		r.bindModal(call.This, m)
		return nil
	})
	r.vm.Set("tingle", tingle)
}

// newModal decodes script options and builds a dialog in the current
// document. Callback options run with the dialog object as this.
func (r *Runtime) newModal(arg goja.Value, this *goja.Object) (*modal.Modal, error) {
	if r.doc == nil {
		return nil, ErrNoDocument
	}

	data := make(map[string]any)
	callbacks := make(map[string]goja.Callable)
	if arg != nil && !goja.IsUndefined(arg) && !goja.IsNull(arg) {
		obj := arg.ToObject(r.vm)
		for _, key := range obj.Keys() {
			v := obj.Get(key)
			if fn, ok := goja.AssertFunction(v); ok {
				callbacks[key] = fn
				continue
			}
			data[key] = v.Export()
		}
	}

	opts, err := modal.DecodeOptions(data)
	if err != nil {
		return nil, err
	}
	opts.Logger = r.logger
	opts.Viewport = r.viewport

	for _, name := range callbackOptions {
		fn, ok := callbacks[name]
		if !ok {
			continue
		}
		switch name {
		case "beforeOpen":
			opts.BeforeOpen = func(*modal.Modal) { r.call(fn, this) }
		case "onOpen":
			opts.OnOpen = func(*modal.Modal) { r.call(fn, this) }
		case "onClose":
			opts.OnClose = func(*modal.Modal) { r.call(fn, this) }
		case "beforeClose":
			opts.BeforeClose = func(*modal.Modal) bool {
				v, ok := r.call(fn, this)
				return ok && v.ToBoolean()
			}
		}
	}

	m, err := modal.New(r.doc, opts)
	if err != nil {
		return nil, err
	}
	r.modals = append(r.modals, m)
	return m, nil
}

// BindModal exposes a dialog built outside the runtime as the global name,
// with the same API as dialogs created by scripts.
func (r *Runtime) BindModal(name string, m *modal.Modal) *goja.Object {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj := r.vm.NewObject()
	r.bindModal(obj, m)
	r.vm.Set(name, obj)
	r.modals = append(r.modals, m)
	return obj
}

// bindModal installs the dialog API on obj. Methods report failure with
// false or null instead of throwing.
func (r *Runtime) bindModal(obj *goja.Object, m *modal.Modal) {
	vm := r.vm
	self := func() goja.Value { return obj }
	null := goja.Null()

	obj.Set("id", m.ID())

	// Lifecycle
	obj.Set("open", func(goja.FunctionCall) goja.Value { return vm.ToValue(m.Open()) })
	obj.Set("close", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(m.Close(optBool(call.Argument(0), false)))
	})
	obj.Set("destroy", func(goja.FunctionCall) goja.Value { return vm.ToValue(m.Destroy()) })
	obj.Set("isOpen", func(goja.FunctionCall) goja.Value { return vm.ToValue(m.IsOpen()) })
	obj.Set("keydown", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(m.HandleKeyDown(call.Argument(0).String()))
	})
	obj.Set("click", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(m.Click(r.elements.goElement(call.Argument(0))))
	})
	obj.Set("resize", func(goja.FunctionCall) goja.Value {
		r.logger.Warn("resize is deprecated, use checkOverflow")
		m.Resize()
		return goja.Undefined()
	})

	// Content and footer
	obj.Set("setContent", func(call goja.FunctionCall) goja.Value {
		arg := call.Argument(0)
		var err error
		if el := r.elements.goElement(arg); el != nil {
			err = m.SetContentNode(el.AsNode())
		} else {
			err = m.SetContent(arg.String())
		}
		if err != nil {
			return null
		}
		return self()
	})
	obj.Set("getContent", func(goja.FunctionCall) goja.Value { return r.elements.value(m.Content()) })
	obj.Set("addFooter", func(goja.FunctionCall) goja.Value {
		if m.AddFooter() == nil {
			return null
		}
		return self()
	})
	obj.Set("setFooterContent", func(call goja.FunctionCall) goja.Value {
		if err := m.SetFooterContent(call.Argument(0).String()); err != nil {
			return null
		}
		return self()
	})
	obj.Set("getFooterContent", func(goja.FunctionCall) goja.Value { return r.elements.value(m.FooterContent()) })
	obj.Set("addFooterBtn", func(call goja.FunctionCall) goja.Value {
		var btnObj goja.Value = null
		var onClick func()
		if fn, ok := goja.AssertFunction(call.Argument(2)); ok {
			onClick = func() { r.call(fn, btnObj) }
		}
		cssClass := ""
		if a := call.Argument(1); !goja.IsUndefined(a) && !goja.IsNull(a) {
			cssClass = a.String()
		}
		btn := m.AddFooterButton(call.Argument(0).String(), cssClass, onClick)
		btnObj = r.elements.value(btn)
		return btnObj
	})
	obj.Set("setStickyFooter", func(call goja.FunctionCall) goja.Value {
		m.SetStickyFooter(call.Argument(0).ToBoolean())
		return self()
	})
	obj.Set("checkOverflow", func(goja.FunctionCall) goja.Value {
		m.CheckOverflow()
		return goja.Undefined()
	})
	obj.Set("isOverflow", func(goja.FunctionCall) goja.Value { return vm.ToValue(m.IsOverflow()) })

	// Entities
	obj.Set("createEntity", func(call goja.FunctionCall) goja.Value {
		err := m.CreateEntity(call.Argument(0).String(), export(call.Argument(1)), optBool(call.Argument(2), true))
		return vm.ToValue(err == nil)
	})
	obj.Set("setEntity", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(m.SetEntity(call.Argument(0).String(), export(call.Argument(1))) == nil)
	})
	obj.Set("setEntities", func(call goja.FunctionCall) goja.Value {
		entities, ok := export(call.Argument(0)).(map[string]any)
		if !ok {
			return vm.ToValue(false)
		}
		return vm.ToValue(m.SetEntities(entities, optBool(call.Argument(1), true)))
	})
	obj.Set("updateEntity", func(call goja.FunctionCall) goja.Value {
		data, ok := export(call.Argument(1)).(map[string]any)
		if !ok {
			return vm.ToValue(false)
		}
		_, err := m.UpdateEntity(call.Argument(0).String(), data, optBool(call.Argument(2), true))
		return vm.ToValue(err == nil)
	})
	obj.Set("updateEntityDefaultProperty", func(call goja.FunctionCall) goja.Value {
		_, err := m.UpdateEntityDefaultProperty(call.Argument(0).String(), export(call.Argument(1)), optBool(call.Argument(2), true))
		return vm.ToValue(err == nil)
	})
	obj.Set("getEntity", func(call goja.FunctionCall) goja.Value {
		e, ok := m.Entity(call.Argument(0).String())
		if !ok {
			return null
		}
		return vm.ToValue(e.ToMap())
	})
	obj.Set("getEntities", func(call goja.FunctionCall) goja.Value {
		out := make(map[string]any)
		for key, e := range m.Entities(optBool(call.Argument(0), true)) {
			out[key] = e.ToMap()
		}
		return vm.ToValue(out)
	})
	obj.Set("getEntityPropertyNames", func(call goja.FunctionCall) goja.Value {
		names, err := m.EntityPropertyNames(call.Argument(0).String())
		if err != nil {
			return null
		}
		items := make([]any, len(names))
		for i, name := range names {
			items[i] = name
		}
		return vm.NewArray(items...)
	})
	obj.Set("isUsesByForm", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(m.IsUsesByForm(call.Argument(0).String()))
	})
	obj.Set("isPropertyMultiple", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(m.IsPropertyMultiple(call.Argument(0).String()))
	})

	// View synchronization
	obj.Set("updateModalFormFromEntity", func(call goja.FunctionCall) goja.Value {
		n, err := m.UpdateFormFromEntity(call.Argument(0).String())
		if err != nil {
			return vm.ToValue(false)
		}
		return vm.ToValue(n)
	})
	obj.Set("updateEntityFromModalForm", func(call goja.FunctionCall) goja.Value {
		found, err := m.UpdateEntityFromForm(call.Argument(0).String())
		return vm.ToValue(err == nil && found)
	})
	obj.Set("setValue", func(call goja.FunctionCall) goja.Value {
		v, ok := binding.ValueOf(export(call.Argument(1)))
		if !ok {
			return vm.ToValue(0)
		}
		n, _ := m.SetValue(call.Argument(0).String(), v)
		return vm.ToValue(n)
	})
	obj.Set("setSomeValues", func(call goja.FunctionCall) goja.Value {
		raw, ok := export(call.Argument(0)).(map[string]any)
		if !ok {
			return vm.ToValue(0)
		}
		values := make(map[string]binding.Value, len(raw))
		for k, data := range raw {
			if v, ok := binding.ValueOf(data); ok {
				values[k] = v
			}
		}
		return vm.ToValue(m.SetSomeValues(values))
	})
	obj.Set("getValue", func(call goja.FunctionCall) goja.Value {
		v, ok := m.GetValue(call.Argument(0).String())
		if !ok {
			return null
		}
		return vm.ToValue(v)
	})
	obj.Set("getSomeValues", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(m.GetSomeValues(stringArgs(call.Arguments)...))
	})
	obj.Set("getAttributes", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return null
		}
		attrs, ok := m.GetAttributes(call.Arguments[0].String(), stringArgs(call.Arguments[1:])...)
		if !ok {
			return null
		}
		return vm.ToValue(attrs)
	})
}

func export(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

func optBool(v goja.Value, def bool) bool {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return def
	}
	return v.ToBoolean()
}

// stringArgs flattens string arguments and arrays of strings.
func stringArgs(args []goja.Value) []string {
	var out []string
	for _, a := range args {
		switch v := export(a).(type) {
		case string:
			out = append(out, v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
