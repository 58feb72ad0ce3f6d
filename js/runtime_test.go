package js

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chrisuehlinger/tingle/dom"
	"github.com/chrisuehlinger/tingle/log"
)

func TestRuntimeBasic(t *testing.T) {
	r := NewRuntime(nil)

	result, err := r.Execute("1 + 2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 3 {
		t.Errorf("Expected 3, got %v", result.ToInteger())
	}
}

func TestRuntimeErrors(t *testing.T) {
	r := NewRuntime(nil)
	var reported []error
	r.SetOnError(func(err error) { reported = append(reported, err) })

	if _, err := r.Execute("throw new Error('boom')"); err == nil {
		t.Fatal("Expected an error")
	}
	if err := r.ExecuteScript("var x = ;", "broken.js"); err == nil {
		t.Fatal("Expected a syntax error")
	}
	if len(r.Errors()) != 2 || len(reported) != 2 {
		t.Fatalf("Expected 2 recorded errors, got %d / %d", len(r.Errors()), len(reported))
	}
	r.ClearErrors()
	if len(r.Errors()) != 0 {
		t.Error("Expected errors to be cleared")
	}
}

func TestRuntimeConsole(t *testing.T) {
	var buf bytes.Buffer
	r := NewRuntime(log.New(&buf, "js"))

	_, err := r.Execute(`
		console.log("hello", 42, null);
		console.warn("careful");
		console.assert(false, "broken");
	`)
	if err != nil {
		t.Fatalf("console failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`msg="hello 42 null"`, "msg=careful", "msg=broken", "id=js"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in log output:\n%s", want, out)
		}
	}
}

func TestRuntimeDocument(t *testing.T) {
	r := NewRuntime(nil)
	doc, err := dom.ParseHTML(`<body><div id="box" class="a"><input name="n" value="v"></div></body>`)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	r.SetDocument(doc)

	result, err := r.Execute(`
		var box = document.getElementById("box");
		var input = box.querySelector("input");
		input.value = "typed";
		box.classList.add("b");
		var p = document.createElement("p");
		p.textContent = "hi";
		box.appendChild(p);
		[box.className, input.value, input.getAttribute("value"), box.children.length, document.getElementById("box") === box].join("|");
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := result.String(); got != "a b|typed|v|2|true" {
		t.Errorf("Unexpected result %q", got)
	}
	children := doc.GetElementById("box").Children()
	if children[len(children)-1].TextContent() != "hi" {
		t.Error("Expected the appended paragraph in the document")
	}
}
