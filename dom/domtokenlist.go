package dom

import (
	"fmt"
	"strings"
)

// TokenValidationError represents an error during token validation.
type TokenValidationError struct {
	Type    string // "SyntaxError" or "InvalidCharacterError"
	Message string
}

func (e *TokenValidationError) Error() string {
	return e.Message
}

// validateToken returns nil if the token is non-empty and has no whitespace.
func validateToken(token string) *TokenValidationError {
	if token == "" {
		return &TokenValidationError{
			Type:    "SyntaxError",
			Message: "The token provided must not be empty.",
		}
	}
	if strings.ContainsAny(token, " \t\n\r\f") {
		return &TokenValidationError{
			Type:    "InvalidCharacterError",
			Message: fmt.Sprintf("The token provided ('%s') contains HTML space characters, which are not valid in tokens.", token),
		}
	}
	return nil
}

// DOMTokenList represents a set of space-separated tokens stored in an
// attribute. It is used for Element.ClassList.
type DOMTokenList struct {
	element  *Element
	attrName string
}

func newDOMTokenList(element *Element, attrName string) *DOMTokenList {
	return &DOMTokenList{
		element:  element,
		attrName: attrName,
	}
}

// tokens returns the current tokens, deduplicated, in order.
func (dtl *DOMTokenList) tokens() []string {
	value := dtl.element.GetAttribute(dtl.attrName)
	if value == "" {
		return nil
	}
	all := strings.Fields(value)
	seen := make(map[string]bool, len(all))
	result := make([]string, 0, len(all))
	for _, token := range all {
		if !seen[token] {
			seen[token] = true
			result = append(result, token)
		}
	}
	return result
}

// setTokens writes the tokens back. The attribute is left absent when it
// did not exist and there is nothing to write.
func (dtl *DOMTokenList) setTokens(tokens []string) {
	if len(tokens) > 0 {
		_ = dtl.element.SetAttribute(dtl.attrName, strings.Join(tokens, " "))
		return
	}
	if dtl.element.HasAttribute(dtl.attrName) {
		_ = dtl.element.SetAttribute(dtl.attrName, "")
	}
}

// Length returns the number of tokens.
func (dtl *DOMTokenList) Length() int {
	return len(dtl.tokens())
}

// Item returns the token at the given index, or empty string if out of bounds.
func (dtl *DOMTokenList) Item(index int) string {
	tokens := dtl.tokens()
	if index < 0 || index >= len(tokens) {
		return ""
	}
	return tokens[index]
}

// Contains returns true if the given token is in the list.
func (dtl *DOMTokenList) Contains(token string) bool {
	if err := validateToken(token); err != nil {
		return false
	}
	for _, t := range dtl.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add adds one or more tokens to the list.
// Nothing is written if any token is invalid.
func (dtl *DOMTokenList) Add(tokens ...string) *TokenValidationError {
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
	}
	current := dtl.tokens()
	for _, token := range tokens {
		found := false
		for _, t := range current {
			if t == token {
				found = true
				break
			}
		}
		if !found {
			current = append(current, token)
		}
	}
	dtl.setTokens(current)
	return nil
}

// Remove removes one or more tokens from the list.
func (dtl *DOMTokenList) Remove(tokens ...string) *TokenValidationError {
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
	}
	remove := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		remove[token] = true
	}
	current := dtl.tokens()
	kept := current[:0]
	for _, t := range current {
		if !remove[t] {
			kept = append(kept, t)
		}
	}
	dtl.setTokens(kept)
	return nil
}

// Toggle removes the token if present and adds it otherwise. When force is
// given, the token is only added (true) or only removed (false).
// Returns whether the token is present afterwards.
func (dtl *DOMTokenList) Toggle(token string, force ...bool) (bool, *TokenValidationError) {
	if err := validateToken(token); err != nil {
		return false, err
	}
	if dtl.Contains(token) {
		if len(force) > 0 && force[0] {
			return true, nil
		}
		dtl.Remove(token)
		return false, nil
	}
	if len(force) > 0 && !force[0] {
		return false, nil
	}
	dtl.Add(token)
	return true, nil
}

// Value returns the underlying string value.
func (dtl *DOMTokenList) Value() string {
	return dtl.element.GetAttribute(dtl.attrName)
}

// SetValue sets the underlying string value.
func (dtl *DOMTokenList) SetValue(value string) {
	_ = dtl.element.SetAttribute(dtl.attrName, value)
}

// String returns the string representation (same as Value).
func (dtl *DOMTokenList) String() string {
	return dtl.Value()
}

// Values returns the tokens.
func (dtl *DOMTokenList) Values() []string {
	return dtl.tokens()
}
