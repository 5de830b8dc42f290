package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inful/mdgraph/internal/engine"
	"github.com/inful/mdgraph/internal/errors"
	"github.com/inful/mdgraph/internal/sets"
)

// fakeEngine wraps input in <p> tags and reports canned link metadata.
type fakeEngine struct {
	calls   int
	uids    []string
	files   []string
	lastCtx engine.FileContext
}

func (f *fakeEngine) Render(content string, file engine.FileContext) (*engine.Result, error) {
	f.calls++
	f.lastCtx = file
	res := engine.NewResult("<p>" + content + "</p>")
	for _, uid := range f.uids {
		res.LinkToUIDs.Add(uid)
		res.UIDLinkSources[uid] = append(res.UIDLinkSources[uid], engine.SourceLocation{File: file.Path, Line: 1})
	}
	for _, p := range f.files {
		res.LinkToFiles.Add(p)
		res.FileLinkSources[p] = append(res.FileLinkSources[p], engine.SourceLocation{File: file.Path, Line: 2})
	}
	return res, nil
}

func TestMarkupStringEmptyIsNoop(t *testing.T) {
	eng := &fakeEngine{}
	tctx := NewContext(eng, engine.FileContext{Path: "a.md"})

	out, err := MarkupString("", tctx)
	require.NoError(t, err)
	require.Equal(t, "", out)
	require.Zero(t, eng.calls)
}

func TestMarkupStringRendersAndMerges(t *testing.T) {
	eng := &fakeEngine{uids: []string{"System.String"}, files: []string{"other.md"}}
	tctx := NewContext(eng, engine.FileContext{Path: "a.md"})

	out, err := MarkupString("**bold**", tctx)
	require.NoError(t, err)
	require.Equal(t, "<p>**bold**</p>", out)
	require.Equal(t, 1, eng.calls)
	require.Equal(t, "a.md", eng.lastCtx.Path)

	require.True(t, tctx.LinkToUIDs.Has("System.String"))
	require.True(t, tctx.LinkToFiles.Has("other.md"))
	require.Len(t, tctx.UIDLinkSources["System.String"], 1)
}

func TestMarkupStringMergeAppendsAcrossCalls(t *testing.T) {
	eng := &fakeEngine{uids: []string{"System.String"}}
	tctx := NewContext(eng, engine.FileContext{Path: "a.md"})

	_, err := MarkupString("first", tctx)
	require.NoError(t, err)
	_, err = MarkupString("second", tctx)
	require.NoError(t, err)

	// One union entry, two accumulated source locations.
	require.Equal(t, []string{"System.String"}, sets.Sorted(tctx.LinkToUIDs))
	require.Len(t, tctx.UIDLinkSources["System.String"], 2)
}

func TestMarkupStringPlaceholderSkipsEngine(t *testing.T) {
	eng := &fakeEngine{}
	tctx := NewContext(eng, engine.FileContext{Path: "a.md"})
	tctx.EnablePlaceholder = true
	tctx.PlaceholderContent = "<p>injected</p>"

	out, err := MarkupString("  *content  ", tctx)
	require.NoError(t, err)
	require.Equal(t, "<p>injected</p>", out)
	require.True(t, tctx.ContainsPlaceholder)
	require.Zero(t, eng.calls)
}

func TestMarkupStringPlaceholderDisabledRenders(t *testing.T) {
	eng := &fakeEngine{}
	tctx := NewContext(eng, engine.FileContext{Path: "a.md"})

	out, err := MarkupString("*content", tctx)
	require.NoError(t, err)
	require.Equal(t, "<p>*content</p>", out)
	require.False(t, tctx.ContainsPlaceholder)
	require.Equal(t, 1, eng.calls)
}

func TestMarkupStringZeroValueContext(t *testing.T) {
	// A Context built as a struct literal (not via NewContext) must still
	// accumulate link metadata instead of panicking on nil collections.
	eng := &fakeEngine{uids: []string{"System.String"}}
	tctx := &Context{Engine: eng, File: engine.FileContext{Path: "a.md"}}

	out, err := MarkupString("text", tctx)
	require.NoError(t, err)
	require.Equal(t, "<p>text</p>", out)
	require.True(t, tctx.LinkToUIDs.Has("System.String"))
	require.Len(t, tctx.UIDLinkSources["System.String"], 1)
}

func TestMarkupStringZeroValueContextPlaceholder(t *testing.T) {
	tctx := &Context{
		Engine:             &fakeEngine{},
		EnablePlaceholder:  true,
		PlaceholderContent: "X",
	}
	out, err := MarkupString("*content", tctx)
	require.NoError(t, err)
	require.Equal(t, "X", out)
	require.True(t, tctx.ContainsPlaceholder)
}

func TestIsPlaceholder(t *testing.T) {
	on := &Context{EnablePlaceholder: true}
	off := &Context{}
	require.True(t, IsPlaceholder("*content", on))
	require.True(t, IsPlaceholder("  *content\n", on))
	require.False(t, IsPlaceholder("*content extra", on))
	require.False(t, IsPlaceholder("*content", off))
}

func TestMarkupNilPassesThrough(t *testing.T) {
	tctx := NewContext(&fakeEngine{}, engine.FileContext{})
	out, err := Markup(nil, tctx)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestMarkupRejectsNonString(t *testing.T) {
	tctx := NewContext(&fakeEngine{}, engine.FileContext{})
	_, err := Markup(42, tctx)
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryUnsupported))
	var te *errors.TransformError
	require.ErrorAs(t, err, &te)
	require.Equal(t, "int", te.Context["type"])
}
