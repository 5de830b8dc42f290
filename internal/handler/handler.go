// Package handler implements the graph walker: it traverses an arbitrary
// document-model value, locates markdown content fields, renders them through
// the context's markup engine, and writes the results back in place.
//
// The traversal contract is recursively self-similar: Handle accepts the
// document root or any nested value, including bare strings and collections.
// Mutation happens in place on the traversed graph; only value roots that
// cannot be mutated through a containing field (strings, value structs) are
// returned as transformed copies for the caller to swap in.
package handler

import (
	"reflect"

	"github.com/inful/mdgraph/internal/adapters"
	"github.com/inful/mdgraph/internal/errors"
	"github.com/inful/mdgraph/internal/metrics"
	"github.com/inful/mdgraph/internal/schema"
	"github.com/inful/mdgraph/internal/transform"
)

// Option configures a Walker.
type Option func(*Walker)

// WithRegistry installs a shared dispatch-plan registry. Useful when several
// walkers (or startup registration) should share one type→plan cache.
func WithRegistry(r *schema.Registry) Option {
	return func(w *Walker) { w.registry = r }
}

// WithRecorder installs a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(w *Walker) { w.metrics = rec }
}

// Walker owns the dispatch-plan cache and orchestrates traversals. A single
// Walker supports concurrent traversals over independent graphs; the plan
// cache is the only shared state and is write-once per type.
type Walker struct {
	registry *schema.Registry
	metrics  metrics.Recorder
}

// New returns a Walker with its own registry unless one is provided.
func New(opts ...Option) *Walker {
	w := &Walker{
		registry: schema.NewRegistry(),
		metrics:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Handle transforms every markdown content field reachable from value and
// returns the (possibly mutated) value.
//
// A nil value is a no-op. A nil context or a context without an engine is a
// caller error. When the context's Disabled flag is set, Handle is the
// identity function and the engine is never invoked.
func (w *Walker) Handle(value any, tctx *transform.Context) (any, error) {
	if value == nil {
		return nil, nil
	}
	if tctx == nil {
		return nil, errors.InvalidArgument("transformation context is required")
	}
	if tctx.Engine == nil {
		return nil, errors.InvalidArgument("markup engine is required in the transformation context")
	}
	if tctx.Disabled {
		return value, nil
	}
	return w.dispatch(value, tctx)
}

// dispatch decides per-value whether to treat it as terminal content, walk it
// as a collection, or recurse into it as a nested object. Entry checks have
// already been performed.
func (w *Walker) dispatch(value any, tctx *transform.Context) (any, error) {
	// Bare strings reached directly (roots, collection elements) are content.
	if s, ok := value.(string); ok {
		return transform.MarkupString(s, tctx)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return value, nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			if err := w.walkStruct(rv.Elem(), tctx); err != nil {
				return nil, err
			}
		}
		return value, nil

	case reflect.Struct:
		// Value structs arriving through an interface are not addressable:
		// walk an addressable copy and return it for the caller to store.
		elem := reflect.New(rv.Type()).Elem()
		elem.Set(rv)
		if err := w.walkStruct(elem, tctx); err != nil {
			return nil, err
		}
		return elem.Interface(), nil

	case reflect.Map:
		if rv.IsNil() {
			return value, nil
		}
		if err := adapters.NewMapAdapter(rv).Apply(w.element(tctx)); err != nil {
			return nil, err
		}
		return value, nil

	case reflect.Slice:
		if rv.IsNil() {
			return value, nil
		}
		if err := adapters.NewListAdapter(rv).Apply(w.element(tctx)); err != nil {
			return nil, err
		}
		return value, nil

	default:
		// Scalars and anything without eligible fields pass through.
		return value, nil
	}
}

// element adapts dispatch for use as a per-element collection transform.
func (w *Walker) element(tctx *transform.Context) adapters.TransformFunc {
	return func(v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return w.dispatch(v, tctx)
	}
}

// walkStruct visits every eligible field of an addressable struct value in
// plan order.
func (w *Walker) walkStruct(sv reflect.Value, tctx *transform.Context) error {
	plan, hit := w.registry.PlanFor(sv.Type())
	if hit {
		w.metrics.IncPlanCacheHit()
	} else {
		w.metrics.IncPlanCacheMiss()
	}

	for _, f := range plan.Fields {
		fv := sv.FieldByIndex(f.Index)

		if f.Content {
			out, err := transform.Markup(fv.Interface(), tctx)
			if err != nil {
				return err
			}
			if out != nil {
				fv.Set(reflect.ValueOf(out))
			}
			continue
		}

		switch fv.Kind() {
		case reflect.String:
			// Untagged strings are only touched by sentinel substitution.
			if transform.IsPlaceholder(fv.String(), tctx) {
				out, err := transform.MarkupString(fv.String(), tctx)
				if err != nil {
					return err
				}
				fv.SetString(out)
			}

		case reflect.Map:
			if fv.IsNil() {
				continue
			}
			if err := adapters.NewMapAdapter(fv).Apply(w.element(tctx)); err != nil {
				return err
			}

		case reflect.Slice:
			if fv.IsNil() {
				continue
			}
			if err := adapters.NewListAdapter(fv).Apply(w.element(tctx)); err != nil {
				return err
			}

		case reflect.Pointer:
			if fv.IsNil() || fv.Elem().Kind() != reflect.Struct {
				continue
			}
			if err := w.walkStruct(fv.Elem(), tctx); err != nil {
				return err
			}

		case reflect.Struct:
			if err := w.walkStruct(fv, tctx); err != nil {
				return err
			}

		case reflect.Interface:
			if fv.IsNil() {
				continue
			}
			out, err := w.dispatch(fv.Interface(), tctx)
			if err != nil {
				return err
			}
			if out == nil {
				fv.Set(reflect.Zero(fv.Type()))
			} else {
				fv.Set(reflect.ValueOf(out))
			}
		}
	}
	return nil
}
