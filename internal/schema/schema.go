// Package schema computes and caches dispatch plans: the ordered list of
// struct fields the traversal engine may touch for a given type.
//
// Eligibility is declared on the model via the `markdown` struct tag:
//
//	Summary string `markdown:"content"` // transformable content
//	UID     string `markdown:"-"`       // never touched
//
// Untagged exported fields remain eligible for recursion (nested structs,
// slices, maps) but their string values are not treated as content.
package schema

import (
	"reflect"
	"sync"
)

// TagName is the struct tag consulted during plan derivation.
const TagName = "markdown"

// TagContent marks a field as transformable content; TagExclude removes a
// field from the plan entirely.
const (
	TagContent = "content"
	TagExclude = "-"
)

// Field describes one eligible field of a plan's type.
type Field struct {
	// Name is the field's declared name, kept for diagnostics.
	Name string
	// Index is the reflect field index path (embedded fields flattened).
	Index []int
	// Content reports whether the field is tagged as transformable content.
	Content bool
	// Type is the field's declared type.
	Type reflect.Type
}

// Plan is the immutable, per-type list of eligible fields in declaration
// order (embedded/base fields where they are declared). A plan is a pure
// function of the type's declaration; it never depends on instance values.
type Plan struct {
	Type   reflect.Type
	Fields []Field
}

// Derive computes the plan for t. Pointer types are dereferenced; non-struct
// types yield an empty plan. Derive is deterministic for a given type.
func Derive(t reflect.Type) *Plan {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	plan := &Plan{Type: t}
	if t.Kind() != reflect.Struct {
		return plan
	}
	plan.Fields = deriveFields(t, nil)
	return plan
}

func deriveFields(t reflect.Type, prefix []int) []Field {
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get(TagName)
		if tag == TagExclude {
			continue
		}

		index := append(append([]int(nil), prefix...), i)

		// Embedded struct fields are flattened in place, matching the
		// base-to-derived ordering of the declaration. Unexported embedded
		// structs are recursed too: their promoted exported fields stay
		// readable and settable through reflect, the way encoding/json
		// derives them. Embedded pointers are kept as regular fields so
		// index paths never cross a nil pointer.
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && tag == "" {
			fields = append(fields, deriveFields(sf.Type, index)...)
			continue
		}

		if !sf.IsExported() {
			continue
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Index:   index,
			Content: tag == TagContent,
			Type:    sf.Type,
		})
	}
	return fields
}

// Registry is an owned type→plan cache. Plans are registered explicitly at
// startup or derived lazily on first touch; either way a plan is write-once
// per key and read-many afterward.
//
// The registry is safe for concurrent use. Racing derivations of the same
// type may both run, but they produce identical plans and neither update is
// lost.
type Registry struct {
	plans sync.Map // reflect.Type -> *Plan
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register installs a pre-built plan, typically at process startup.
func (r *Registry) Register(p *Plan) {
	r.plans.Store(p.Type, p)
}

// PlanFor returns the plan for t, deriving and caching it on first touch.
// The second return reports whether the plan was already cached.
func (r *Registry) PlanFor(t reflect.Type) (*Plan, bool) {
	if cached, ok := r.plans.Load(t); ok {
		return cached.(*Plan), true
	}
	plan := Derive(t)
	actual, loaded := r.plans.LoadOrStore(t, plan)
	return actual.(*Plan), loaded
}
