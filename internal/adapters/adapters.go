// Package adapters applies an element-wise transform to collections in
// place. The reflect-based adapters serve the walker, which discovers
// collection shapes at runtime; the generic helpers serve typed call sites.
package adapters

import "reflect"

// TransformFunc rewrites one element. Returning a new value (rather than
// mutating the old one) is the expected mode of operation.
type TransformFunc func(any) (any, error)

// ListAdapter replaces every element of a slice with the transform's result,
// index by index, preserving order.
type ListAdapter struct {
	list reflect.Value
}

// NewListAdapter wraps a reflect.Value of slice kind.
func NewListAdapter(list reflect.Value) *ListAdapter {
	return &ListAdapter{list: list}
}

// Apply runs fn over elements 0..len-1, writing each result back.
func (a *ListAdapter) Apply(fn TransformFunc) error {
	for i := 0; i < a.list.Len(); i++ {
		elem := a.list.Index(i)
		out, err := fn(elem.Interface())
		if err != nil {
			return err
		}
		setValue(elem, out)
	}
	return nil
}

// MapAdapter replaces every value of a map with the transform's result.
// Keys are never changed or removed.
type MapAdapter struct {
	m reflect.Value
}

// NewMapAdapter wraps a reflect.Value of map kind.
func NewMapAdapter(m reflect.Value) *MapAdapter {
	return &MapAdapter{m: m}
}

// Apply snapshots the key set before iterating, so writing values back never
// skips or duplicates an entry.
func (a *MapAdapter) Apply(fn TransformFunc) error {
	keys := a.m.MapKeys()
	for _, key := range keys {
		out, err := fn(a.m.MapIndex(key).Interface())
		if err != nil {
			return err
		}
		if out == nil {
			a.m.SetMapIndex(key, reflect.Zero(a.m.Type().Elem()))
			continue
		}
		a.m.SetMapIndex(key, reflect.ValueOf(out))
	}
	return nil
}

func setValue(dst reflect.Value, out any) {
	if out == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return
	}
	dst.Set(reflect.ValueOf(out))
}

// ApplyList is the typed counterpart of ListAdapter for call sites that know
// their element type at compile time.
func ApplyList[T any](list []T, fn func(T) (T, error)) error {
	for i := range list {
		out, err := fn(list[i])
		if err != nil {
			return err
		}
		list[i] = out
	}
	return nil
}

// ApplyMap is the typed counterpart of MapAdapter.
func ApplyMap[K comparable, V any](m map[K]V, fn func(V) (V, error)) error {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for _, k := range keys {
		out, err := fn(m[k])
		if err != nil {
			return err
		}
		m[k] = out
	}
	return nil
}
