// Package transform holds the per-document transformation context and the
// content-level markup policy applied to individual string values.
package transform

import (
	"github.com/inful/mdgraph/internal/engine"
	"github.com/inful/mdgraph/internal/metrics"
	"github.com/inful/mdgraph/internal/sets"
)

// Context is the mutable, per-document state threaded through one full
// traversal. It is created by the caller, passed by reference through the
// recursive walk, mutated only by Markup, and read afterward to collect
// accumulated link metadata.
//
// A Context must not be shared between concurrent traversals.
type Context struct {
	// Disabled short-circuits the whole traversal (identity transform).
	Disabled bool

	// EnablePlaceholder turns on sentinel substitution; PlaceholderContent is
	// the replacement written in place of the sentinel.
	EnablePlaceholder  bool
	PlaceholderContent string

	// ContainsPlaceholder is set when at least one field was substituted.
	ContainsPlaceholder bool

	// Accumulated link metadata, monotonically non-decreasing within a
	// traversal.
	LinkToUIDs      sets.Set[string]
	LinkToFiles     sets.Set[string]
	UIDLinkSources  map[string][]engine.SourceLocation
	FileLinkSources map[string][]engine.SourceLocation

	// Engine renders content; File identifies the document being traversed.
	Engine engine.Engine
	File   engine.FileContext

	// Metrics receives render/placeholder counters. Defaults to a no-op.
	Metrics metrics.Recorder
}

// NewContext returns a Context ready for one traversal of the given file.
func NewContext(eng engine.Engine, file engine.FileContext) *Context {
	return &Context{
		LinkToUIDs:      sets.New[string](),
		LinkToFiles:     sets.New[string](),
		UIDLinkSources:  make(map[string][]engine.SourceLocation),
		FileLinkSources: make(map[string][]engine.SourceLocation),
		Engine:          eng,
		File:            file,
		Metrics:         metrics.NoopRecorder{},
	}
}

// recorder returns the configured metrics recorder, or a no-op for contexts
// built as struct literals.
func (c *Context) recorder() metrics.Recorder {
	if c.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return c.Metrics
}

// merge folds one render result into the accumulated link metadata.
// Sets are unioned; source multimaps are appended per target, never replaced.
// Collections left nil by a struct-literal Context are initialized here.
func (c *Context) merge(res *engine.Result) {
	if c.LinkToUIDs == nil {
		c.LinkToUIDs = sets.New[string]()
	}
	if c.LinkToFiles == nil {
		c.LinkToFiles = sets.New[string]()
	}
	if c.UIDLinkSources == nil {
		c.UIDLinkSources = make(map[string][]engine.SourceLocation)
	}
	if c.FileLinkSources == nil {
		c.FileLinkSources = make(map[string][]engine.SourceLocation)
	}

	c.LinkToUIDs.Union(res.LinkToUIDs)
	c.LinkToFiles.Union(res.LinkToFiles)
	for target, locs := range res.UIDLinkSources {
		c.UIDLinkSources[target] = append(c.UIDLinkSources[target], locs...)
	}
	for target, locs := range res.FileLinkSources {
		c.FileLinkSources[target] = append(c.FileLinkSources[target], locs...)
	}
}
