// Package model defines the YAML page model the CLI feeds through the
// traversal engine. Content eligibility is declared with `markdown` tags;
// identity fields are excluded so UIDs and titles are never rewritten.
package model

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	mderrors "github.com/inful/mdgraph/internal/errors"
)

// Page is a reference-style documentation page: top-level content fields plus
// nested members and named sections.
type Page struct {
	UID      string             `yaml:"uid" markdown:"-"`
	Title    string             `yaml:"title" markdown:"-"`
	Summary  string             `yaml:"summary,omitempty" markdown:"content"`
	Remarks  string             `yaml:"remarks,omitempty" markdown:"content"`
	Example  string             `yaml:"example,omitempty" markdown:"content"`
	Items    []*Item            `yaml:"items,omitempty"`
	Sections map[string]Section `yaml:"sections,omitempty"`
	Metadata map[string]any     `yaml:"metadata,omitempty" markdown:"-"`
}

// Item is one member of a page (a method, field, sub-entry).
type Item struct {
	UID     string `yaml:"uid" markdown:"-"`
	Name    string `yaml:"name" markdown:"-"`
	Summary string `yaml:"summary,omitempty" markdown:"content"`
	Example string `yaml:"example,omitempty" markdown:"content"`
}

// Section is a named free-form block of a page.
type Section struct {
	Heading string `yaml:"heading" markdown:"-"`
	Body    string `yaml:"body,omitempty" markdown:"content"`
}

// Load reads and parses a page model from a YAML file.
func Load(path string) (*Page, error) {
	// #nosec G304 -- path comes from the CLI's configured input directory.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, mderrors.FileError("read", path, err)
	}

	var page Page
	if err := yaml.Unmarshal(content, &page); err != nil {
		return nil, mderrors.Wrap(err, mderrors.CategoryValidation, mderrors.SeverityFatal, "failed to parse page model").
			WithContext("path", path)
	}
	return &page, nil
}

// Save writes a page model as YAML, creating parent directories as needed.
func Save(path string, page *Page) error {
	out, err := yaml.Marshal(page)
	if err != nil {
		return mderrors.Wrap(err, mderrors.CategoryInternal, mderrors.SeverityFatal, "failed to serialize page model").
			WithContext("path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return mderrors.FileError("mkdir", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return mderrors.FileError("write", path, err)
	}
	return nil
}
