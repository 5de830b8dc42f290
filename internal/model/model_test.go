package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	mderrors "github.com/inful/mdgraph/internal/errors"
)

const samplePage = `uid: Example.Page
title: Example
summary: "**bold** summary"
items:
  - uid: Example.Page.Method
    name: Method
    summary: "member summary"
sections:
  usage:
    heading: Usage
    body: "See [api](api.md)."
metadata:
  source: generated
`

func TestLoadParsesPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yml")
	require.NoError(t, os.WriteFile(path, []byte(samplePage), 0o644))

	page, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Example.Page", page.UID)
	require.Equal(t, "**bold** summary", page.Summary)
	require.Len(t, page.Items, 1)
	require.Equal(t, "member summary", page.Items[0].Summary)
	require.Equal(t, "Usage", page.Sections["usage"].Heading)
	require.Equal(t, "generated", page.Metadata["source"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	require.True(t, mderrors.IsCategory(err, mderrors.CategoryFileSystem))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("uid: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, mderrors.IsCategory(err, mderrors.CategoryValidation))

	var te *mderrors.TransformError
	require.ErrorAs(t, err, &te)
	require.Equal(t, mderrors.SeverityFatal, te.Severity)
	require.Equal(t, path, te.Context["path"])
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	page := &Page{
		UID:     "X",
		Title:   "T",
		Summary: "<p>done</p>",
		Items:   []*Item{{UID: "X.M", Name: "M", Summary: "<p>m</p>"}},
	}

	path := filepath.Join(dir, "out", "page.yml")
	require.NoError(t, Save(path, page))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, page.UID, loaded.UID)
	require.Equal(t, page.Summary, loaded.Summary)
	require.Equal(t, "<p>m</p>", loaded.Items[0].Summary)
}
