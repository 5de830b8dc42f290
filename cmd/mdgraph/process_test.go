package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inful/mdgraph/internal/config"
	"github.com/inful/mdgraph/internal/engine/markdown"
	"github.com/inful/mdgraph/internal/handler"
	"github.com/inful/mdgraph/internal/linkstore"
	"github.com/inful/mdgraph/internal/metrics"
	"github.com/inful/mdgraph/internal/model"
)

func writeModel(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestProcessor(t *testing.T, cfg *config.Config) *processor {
	t.Helper()
	store, err := linkstore.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return &processor{
		cfg:      cfg,
		walker:   handler.New(),
		eng:      markdown.New(),
		recorder: metrics.NoopRecorder{},
		store:    store,
	}
}

func TestCollectModelFilesFiltersAndSorts(t *testing.T) {
	in := t.TempDir()
	writeModel(t, in, "b.yml", "uid: B\ntitle: B\n")
	writeModel(t, in, "a.yaml", "uid: A\ntitle: A\n")
	writeModel(t, in, "notes.txt", "ignored")
	writeModel(t, in, "sub/c.yml", "uid: C\ntitle: C\n")

	files, err := collectModelFiles(in)
	require.NoError(t, err)
	require.Equal(t, []string{"a.yaml", "b.yml", filepath.Join("sub", "c.yml")}, files)
}

func TestRunOnceTransformsAndRecordsLinks(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeModel(t, in, "page.yml", "uid: Example\ntitle: Example\nsummary: '**bold** and [api](api.md)'\n")
	writeModel(t, in, "sub/other.yml", "uid: Other\ntitle: Other\nsummary: 'see [x](xref:System.String)'\n")

	cfg := &config.Config{Input: in, Output: out}
	p := newTestProcessor(t, cfg)

	require.NoError(t, p.runOnce(context.Background()))

	page, err := model.Load(filepath.Join(out, "page.yml"))
	require.NoError(t, err)
	require.Contains(t, page.Summary, "<strong>bold</strong>")
	require.Contains(t, page.Summary, `href="api.html"`)

	ctx := context.Background()
	files, err := p.store.Targets(ctx, linkstore.KindFile)
	require.NoError(t, err)
	require.Equal(t, []string{"api.md"}, files)

	uids, err := p.store.Targets(ctx, linkstore.KindUID)
	require.NoError(t, err)
	require.Equal(t, []string{"System.String"}, uids)

	locs, err := p.store.SourcesFor(ctx, linkstore.KindFile, "api.md")
	require.NoError(t, err)
	require.Len(t, locs, 1)
	require.Equal(t, "page.yml", locs[0].File)
}

func TestRunOnceFailsOnInvalidModel(t *testing.T) {
	in := t.TempDir()
	writeModel(t, in, "bad.yml", "uid: [unclosed")

	cfg := &config.Config{Input: in, Output: t.TempDir()}
	p := newTestProcessor(t, cfg)
	require.Error(t, p.runOnce(context.Background()))
}
