package binding

import (
	"github.com/chrisuehlinger/tingle/dom"
)

// FindAll returns the elements under scope located by method and value, in
// document order. A nil or detached scope, an empty value or a malformed
// selector yields no elements.
func FindAll(method Method, value string, scope *dom.Element) []*dom.Element {
	if !attached(scope) || value == "" {
		return nil
	}

	switch method {
	case ByID:
		var out []*dom.Element
		for _, el := range scope.GetElementsByTagName("*") {
			if el.Id() == value {
				out = append(out, el)
			}
		}
		return out
	case ByName:
		controls, _ := scope.QuerySelectorAll("input, select, textarea")
		var out []*dom.Element
		for _, el := range controls {
			if el.GetAttribute("name") == value {
				out = append(out, el)
			}
		}
		return out
	case ByClassName:
		return scope.GetElementsByClassName(value)
	case ByTagName:
		return scope.GetElementsByTagName(value)
	case BySelector:
		els, err := scope.QuerySelectorAll(value)
		if err != nil {
			return nil
		}
		return els
	}
	return nil
}

// FindOne returns the first element FindAll would return, or nil.
func FindOne(method Method, value string, scope *dom.Element) *dom.Element {
	if method == BySelector {
		if !attached(scope) || value == "" {
			return nil
		}
		el, err := scope.QuerySelector(value)
		if err != nil {
			return nil
		}
		return el
	}
	if all := FindAll(method, value, scope); len(all) > 0 {
		return all[0]
	}
	return nil
}

func attached(scope *dom.Element) bool {
	return scope != nil && scope.IsConnected()
}
