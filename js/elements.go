package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/tingle/dom"
)

// elementBinder wraps dom elements in script objects. The same element
// always maps to the same object.
type elementBinder struct {
	runtime *Runtime
	nodeMap map[*dom.Node]*goja.Object
}

func newElementBinder(r *Runtime) *elementBinder {
	return &elementBinder{
		runtime: r,
		nodeMap: make(map[*dom.Node]*goja.Object),
	}
}

func (b *elementBinder) reset() {
	b.nodeMap = make(map[*dom.Node]*goja.Object)
}

// bindDocument exposes the lookup subset of Document scripts need to
// prepare dialog content.
func (b *elementBinder) bindDocument(doc *dom.Document) *goja.Object {
	vm := b.runtime.vm
	jsDoc := vm.NewObject()
	if doc == nil {
		return jsDoc
	}
	jsDoc.Set("_goDoc", doc)

	jsDoc.DefineAccessorProperty("body", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.value(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.value(doc.GetElementById(call.Argument(0).String()))
	})
	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		return b.value(doc.CreateElement(call.Argument(0).String()))
	})
	jsDoc.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		el, err := doc.QuerySelector(call.Argument(0).String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return b.value(el)
	})
	jsDoc.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		els, err := doc.QuerySelectorAll(call.Argument(0).String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return b.list(els)
	})
	return jsDoc
}

// value returns the script object of el, or null.
func (b *elementBinder) value(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return b.bindElement(el)
}

func (b *elementBinder) list(els []*dom.Element) goja.Value {
	out := make([]interface{}, len(els))
	for i, el := range els {
		out[i] = b.bindElement(el)
	}
	return b.runtime.vm.NewArray(out...)
}

func (b *elementBinder) bindElement(el *dom.Element) *goja.Object {
	node := el.AsNode()
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}

	vm := b.runtime.vm
	jsEl := vm.NewObject()
	jsEl.Set("_goElement", el)
	b.nodeMap[node] = jsEl

	accessor := func(name string, get func() goja.Value, set func(v goja.Value)) {
		var setter goja.Value
		if set != nil {
			setter = vm.ToValue(func(call goja.FunctionCall) goja.Value {
				set(call.Argument(0))
				return goja.Undefined()
			})
		}
		jsEl.DefineAccessorProperty(name, vm.ToValue(func(goja.FunctionCall) goja.Value {
			return get()
		}), setter, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}

	accessor("tagName", func() goja.Value { return vm.ToValue(el.TagName()) }, nil)
	accessor("id", func() goja.Value { return vm.ToValue(el.Id()) }, func(v goja.Value) { el.SetId(v.String()) })
	accessor("className", func() goja.Value { return vm.ToValue(el.ClassName()) }, func(v goja.Value) { el.SetClassName(v.String()) })
	accessor("innerHTML", func() goja.Value { return vm.ToValue(el.InnerHTML()) }, func(v goja.Value) {
		if err := el.SetInnerHTML(v.String()); err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
	})
	accessor("outerHTML", func() goja.Value { return vm.ToValue(el.OuterHTML()) }, nil)
	accessor("textContent", func() goja.Value { return vm.ToValue(el.TextContent()) }, func(v goja.Value) { el.SetTextContent(v.String()) })
	accessor("parentElement", func() goja.Value { return b.value(el.AsNode().ParentElement()) }, nil)
	accessor("children", func() goja.Value { return b.list(el.Children()) }, nil)

	// Native form properties keep their live state on the element.
	for _, name := range []string{"value", "checked", "selected", "selectedIndex", "disabled", "name", "type"} {
		name := name
		if !el.HasProperty(name) {
			continue
		}
		accessor(name, func() goja.Value {
			v, _ := el.Property(name)
			return vm.ToValue(v)
		}, func(v goja.Value) {
			el.SetProperty(name, v.Export())
		})
	}

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})
	jsEl.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if err := el.SetAttribute(call.Argument(0).String(), call.Argument(1).String()); err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return goja.Undefined()
	})
	jsEl.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})
	jsEl.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})
	jsEl.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		found, err := el.QuerySelector(call.Argument(0).String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return b.value(found)
	})
	jsEl.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		found, err := el.QuerySelectorAll(call.Argument(0).String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return b.list(found)
	})
	jsEl.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		child := b.goElement(call.Argument(0))
		if child == nil {
			panic(vm.NewTypeError("appendChild: argument is not an element"))
		}
		if _, err := el.AsNode().AppendChildWithError(child.AsNode()); err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return call.Argument(0)
	})
	jsEl.Set("remove", func(call goja.FunctionCall) goja.Value {
		el.Remove()
		return goja.Undefined()
	})

	classList := vm.NewObject()
	classList.Set("add", func(call goja.FunctionCall) goja.Value {
		for _, a := range call.Arguments {
			if err := el.ClassList().Add(a.String()); err != nil {
				panic(vm.NewTypeError(err.Error()))
			}
		}
		return goja.Undefined()
	})
	classList.Set("remove", func(call goja.FunctionCall) goja.Value {
		for _, a := range call.Arguments {
			el.ClassList().Remove(a.String())
		}
		return goja.Undefined()
	})
	classList.Set("contains", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.ClassList().Contains(call.Argument(0).String()))
	})
	classList.Set("toggle", func(call goja.FunctionCall) goja.Value {
		on, err := el.ClassList().Toggle(call.Argument(0).String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return vm.ToValue(on)
	})
	jsEl.Set("classList", classList)

	return jsEl
}

// goElement extracts the dom element behind a script value.
func (b *elementBinder) goElement(v goja.Value) *dom.Element {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj := v.ToObject(b.runtime.vm)
	ev := obj.Get("_goElement")
	if ev == nil {
		return nil
	}
	el, _ := ev.Export().(*dom.Element)
	return el
}
