package binding

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chrisuehlinger/tingle/dom"
)

var (
	ErrUnknownKey    = errors.New("unknown entity key")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidMethod = errors.New("unrecognized identification method")
	ErrExists        = errors.New("entity already exists")
)

// ScopeFunc returns the element that bounds every lookup. It may return nil
// while the view is not built yet.
type ScopeFunc func() *dom.Element

// Binder owns a keyed set of entities and synchronizes them with the
// elements under its scope. A Binder is not safe for concurrent use.
type Binder struct {
	scope    ScopeFunc
	defaults Entity
	entities map[string]*Entity
}

// Option configures a Binder.
type Option func(*Binder)

// WithDefaults sets the template used to fill absent entity fields.
func WithDefaults(defaults Entity) Option {
	return func(b *Binder) {
		b.defaults = defaults.Clone()
	}
}

// NewBinder creates an empty binder bound to the element returned by scope.
func NewBinder(scope ScopeFunc, opts ...Option) *Binder {
	b := &Binder{
		scope:    scope,
		defaults: DefaultEntity(),
		entities: make(map[string]*Entity),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Defaults returns a copy of the template used to fill absent entity fields.
func (b *Binder) Defaults() Entity {
	return b.defaults.Clone()
}

func (b *Binder) container() *dom.Element {
	if b.scope == nil {
		return nil
	}
	return b.scope()
}

// CreateEntity normalizes data and stores it under key. With replace false
// an existing entity is left untouched and ErrExists is returned. The view
// is not modified.
func (b *Binder) CreateEntity(key string, data any, replace bool) error {
	if _, ok := b.entities[key]; ok && !replace {
		return fmt.Errorf("%w: %q", ErrExists, key)
	}
	e, err := MakeEntity(key, data, b.defaults)
	if err != nil {
		return err
	}
	b.entities[key] = &e
	return nil
}

// SetEntity creates or replaces the entity stored under key.
func (b *Binder) SetEntity(key string, data any) error {
	return b.CreateEntity(key, data, true)
}

// SetEntities creates or replaces every entity in the map, pushing each to
// the view when updateForm is set. Entities whose data is invalid are
// skipped. It returns the number of elements changed.
func (b *Binder) SetEntities(entities map[string]any, updateForm bool) int {
	changed := 0
	for _, key := range sortedKeys(entities) {
		if err := b.CreateEntity(key, entities[key], true); err != nil {
			continue
		}
		if updateForm {
			n, _ := b.UpdateFormFromEntity(key)
			changed += n
		}
	}
	return changed
}

// UpdateEntity merges data over the stored entity and renormalizes it.
// Keys present in data win. When updateForm is set the entity is pushed to
// the view and the number of changed elements is returned.
func (b *Binder) UpdateEntity(key string, data map[string]any, updateForm bool) (int, error) {
	e, ok := b.entities[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	merged := e.ToMap()
	for k, v := range data {
		merged[k] = v
	}
	updated, err := MakeEntity(key, merged, b.defaults)
	if err != nil {
		return 0, err
	}
	b.entities[key] = &updated
	if !updateForm {
		return 0, nil
	}
	return b.UpdateFormFromEntity(key)
}

// UpdateEntityDefaultProperty stores value in the field named by the
// entity's default attribute.
func (b *Binder) UpdateEntityDefaultProperty(key string, value any, updateForm bool) (int, error) {
	e, ok := b.entities[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[e.DefaultAttribute] = value
	if !updateForm {
		return 0, nil
	}
	return b.UpdateFormFromEntity(key)
}

// Has reports whether an entity is stored under key.
func (b *Binder) Has(key string) bool {
	_, ok := b.entities[key]
	return ok
}

// Len returns the number of stored entities.
func (b *Binder) Len() int {
	return len(b.entities)
}

// Keys returns the stored entity keys in sorted order.
func (b *Binder) Keys() []string {
	keys := make([]string, 0, len(b.entities))
	for k := range b.entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entity returns a copy of the entity stored under key.
func (b *Binder) Entity(key string) (Entity, bool) {
	e, ok := b.entities[key]
	if !ok {
		return Entity{}, false
	}
	return e.Clone(), true
}

// Entities returns a snapshot of every entity. With update set, each
// form-bound entity is first refreshed from the view.
func (b *Binder) Entities(update bool) map[string]Entity {
	out := make(map[string]Entity, len(b.entities))
	for key, e := range b.entities {
		if update {
			b.pull(e, nil)
		}
		out[key] = e.Clone()
	}
	return out
}

// EntityPropertyNames returns the sorted free-form field names of an entity.
func (b *Binder) EntityPropertyNames(key string) ([]string, error) {
	e, ok := b.entities[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return e.PropertyNames(), nil
}

// IsUsesByForm reports whether the entity takes part in view sync.
func (b *Binder) IsUsesByForm(key string) bool {
	e, ok := b.entities[key]
	return ok && e.UsesByForm
}

// IsPropertyMultiple reports whether pushes reach every matching element.
func (b *Binder) IsPropertyMultiple(key string) bool {
	e, ok := b.entities[key]
	return ok && e.Multiple
}

// Remove deletes the entity stored under key.
func (b *Binder) Remove(key string) bool {
	if _, ok := b.entities[key]; !ok {
		return false
	}
	delete(b.entities, key)
	return true
}

// Clear deletes every entity.
func (b *Binder) Clear() {
	b.entities = make(map[string]*Entity)
}

// UpdateFormFromEntity pushes the entity's fields to its elements and
// returns the number of elements changed.
func (b *Binder) UpdateFormFromEntity(key string) (int, error) {
	e, ok := b.entities[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return b.push(e, e.Value(), nil), nil
}

// UpdateEntityFromForm reads the default attribute of the entity's first
// element into the entity. It reports whether an element was found.
func (b *Binder) UpdateEntityFromForm(key string) (bool, error) {
	e, ok := b.entities[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return b.pull(e, nil), nil
}

// SetValue writes v to the entity's elements without touching the stored
// entity. A Scalar goes to the default attribute; a Structured value
// writes each of its fields.
func (b *Binder) SetValue(key string, v Value) (int, error) {
	e, ok := b.entities[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return b.push(e, v, nil), nil
}

// SetSomeValues writes each value to its entity's elements. Unknown keys
// are skipped. It returns the number of elements changed.
func (b *Binder) SetSomeValues(values map[string]Value) int {
	cache := make(lookupCache)
	changed := 0
	for _, key := range sortedKeys(values) {
		e, ok := b.entities[key]
		if !ok {
			continue
		}
		changed += b.push(e, values[key], cache)
	}
	return changed
}

// GetValue reads the default attribute of the entity's first element. The
// stored entity is not modified.
func (b *Binder) GetValue(key string) (any, bool) {
	e, ok := b.entities[key]
	if !ok || !e.UsesByForm {
		return nil, false
	}
	el := b.resolveOne(e, nil)
	if el == nil {
		return nil, false
	}
	return GetAttribute(el, e.DefaultAttribute), true
}

// GetSomeValues reads the default attribute of each named entity, or of
// every form-bound entity when keys is empty. Entities without an element
// are left out.
func (b *Binder) GetSomeValues(keys ...string) map[string]any {
	if len(keys) == 0 {
		keys = b.Keys()
	}
	cache := make(lookupCache)
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		e, ok := b.entities[key]
		if !ok || !e.UsesByForm {
			continue
		}
		if el := b.resolveOne(e, cache); el != nil {
			out[key] = GetAttribute(el, e.DefaultAttribute)
		}
	}
	return out
}

// GetAttributes reads several attributes from the entity's first element,
// resolving it once. With no names, the entity's own field names are read.
func (b *Binder) GetAttributes(key string, names ...string) (map[string]any, bool) {
	e, ok := b.entities[key]
	if !ok || !e.UsesByForm {
		return nil, false
	}
	el := b.resolveOne(e, nil)
	if el == nil {
		return nil, false
	}
	if len(names) == 0 {
		names = e.PropertyNames()
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		out[name] = GetAttribute(el, name)
	}
	return out, true
}

func (b *Binder) push(e *Entity, v Value, cache lookupCache) int {
	if !e.UsesByForm || v == nil {
		return 0
	}
	changed := 0
	for _, el := range b.resolve(e, cache) {
		applied := false
		switch t := v.(type) {
		case Scalar:
			applied = SetAttribute(el, e.DefaultAttribute, string(t))
		case Structured:
			for _, name := range sortedKeys(t) {
				if IsReserved(name) {
					continue
				}
				if SetAttribute(el, name, t[name]) {
					applied = true
				}
			}
		}
		if applied {
			changed++
		}
	}
	return changed
}

func (b *Binder) pull(e *Entity, cache lookupCache) bool {
	if !e.UsesByForm {
		return false
	}
	el := b.resolveOne(e, cache)
	if el == nil {
		return false
	}
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[e.DefaultAttribute] = GetAttribute(el, e.DefaultAttribute)
	return true
}

// lookupCache memoizes element resolution within a single call.
type lookupCache map[lookupKey][]*dom.Element

type lookupKey struct {
	method     Method
	identifier string
	multiple   bool
}

func (b *Binder) resolve(e *Entity, cache lookupCache) []*dom.Element {
	k := lookupKey{e.Method, e.Identifier, e.Multiple}
	if cache != nil {
		if els, ok := cache[k]; ok {
			return els
		}
	}
	var els []*dom.Element
	if e.Multiple {
		els = FindAll(e.Method, e.Identifier, b.container())
	} else if el := FindOne(e.Method, e.Identifier, b.container()); el != nil {
		els = []*dom.Element{el}
	}
	if cache != nil {
		cache[k] = els
	}
	return els
}

func (b *Binder) resolveOne(e *Entity, cache lookupCache) *dom.Element {
	k := lookupKey{e.Method, e.Identifier, false}
	if cache != nil {
		if els, ok := cache[k]; ok {
			if len(els) == 0 {
				return nil
			}
			return els[0]
		}
	}
	el := FindOne(e.Method, e.Identifier, b.container())
	if cache != nil {
		if el != nil {
			cache[k] = []*dom.Element{el}
		} else {
			cache[k] = nil
		}
	}
	return el
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
