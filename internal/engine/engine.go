// Package engine declares the markup-engine boundary consumed by the
// traversal core. Implementations convert raw markdown text into rendered
// HTML and report the link targets the text references as a side channel.
package engine

import "github.com/inful/mdgraph/internal/sets"

// FileContext identifies the document a piece of content belongs to. It is
// passed through to the engine so extracted link sources can be attributed.
type FileContext struct {
	// Path is the repository-relative path of the source document.
	Path string
}

// SourceLocation records where in a source document a link was found.
type SourceLocation struct {
	File string
	Line int
}

// Result is the bundle an engine returns for one piece of content.
//
// The two source multimaps are keyed by link target; a target referenced from
// several places accumulates one SourceLocation per reference, in document
// order.
type Result struct {
	HTML            string
	LinkToUIDs      sets.Set[string]
	LinkToFiles     sets.Set[string]
	UIDLinkSources  map[string][]SourceLocation
	FileLinkSources map[string][]SourceLocation
}

// NewResult returns a Result with all collections initialized.
func NewResult(html string) *Result {
	return &Result{
		HTML:            html,
		LinkToUIDs:      sets.New[string](),
		LinkToFiles:     sets.New[string](),
		UIDLinkSources:  make(map[string][]SourceLocation),
		FileLinkSources: make(map[string][]SourceLocation),
	}
}

// Engine renders markdown content in the context of a source file.
//
// Render must be pure with respect to shared state: all extracted metadata is
// returned in the Result, never written anywhere else.
type Engine interface {
	Render(content string, file FileContext) (*Result, error)
}
