// Package markdown provides the goldmark-backed markup engine. It renders
// content to HTML, extracts cross-document link targets from the goldmark
// AST, and rewrites relative markdown links in the rendered output to their
// published .html form.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/inful/mdgraph/internal/engine"
	mderrors "github.com/inful/mdgraph/internal/errors"
)

// XrefScheme marks a link destination as a UID reference rather than a file
// path, e.g. [String](xref:System.String).
const XrefScheme = "xref:"

// Engine implements engine.Engine using goldmark.
type Engine struct {
	md goldmark.Markdown
}

// New returns an Engine with default goldmark settings.
func New() *Engine {
	return &Engine{md: goldmark.New()}
}

// Render converts content to HTML and reports every UID and file reference
// found in it, attributed to a line of the source document.
func (e *Engine) Render(content string, file engine.FileContext) (*engine.Result, error) {
	src := []byte(content)
	doc := e.md.Parser().Parse(gmtext.NewReader(src))

	var buf bytes.Buffer
	if err := e.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, mderrors.InternalError("markdown rendering failed", err)
	}

	rendered, err := rewriteRelativeLinks(buf.String())
	if err != nil {
		return nil, mderrors.InternalError("rendered link rewriting failed", err)
	}

	res := engine.NewResult(rendered)
	collectLinks(doc, content, file, res)
	return res, nil
}

// collectLinks walks the AST in document order and folds each link-like
// destination into the result's link sets and source multimaps.
func collectLinks(doc gmast.Node, content string, file engine.FileContext, res *engine.Result) {
	locate := newLineLocator(content)

	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		var dest string
		switch node := n.(type) {
		case *gmast.AutoLink:
			dest = string(node.URL([]byte(content)))
		case *gmast.Image:
			dest = string(node.Destination)
		case *gmast.Link:
			dest = string(node.Destination)
		default:
			return gmast.WalkContinue, nil
		}

		loc := engine.SourceLocation{File: file.Path, Line: locate(dest)}
		switch kind, target := classifyDestination(dest); kind {
		case destUID:
			res.LinkToUIDs.Add(target)
			res.UIDLinkSources[target] = append(res.UIDLinkSources[target], loc)
		case destFile:
			res.LinkToFiles.Add(target)
			res.FileLinkSources[target] = append(res.FileLinkSources[target], loc)
		}
		return gmast.WalkContinue, nil
	})
}

type destKind int

const (
	destSkip destKind = iota
	destUID
	destFile
)

// classifyDestination decides whether a destination references a UID, a
// sibling document, or nothing this engine tracks (external URLs, anchors).
// UID targets are NFC-normalized so composed and decomposed spellings of the
// same identifier land in one set entry.
func classifyDestination(dest string) (destKind, string) {
	switch {
	case dest == "":
		return destSkip, ""
	case strings.HasPrefix(dest, XrefScheme):
		uid := strings.TrimPrefix(dest, XrefScheme)
		if uid == "" {
			return destSkip, ""
		}
		return destUID, norm.NFC.String(uid)
	case strings.HasPrefix(dest, "#"):
		return destSkip, ""
	case strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:"):
		return destSkip, ""
	default:
		path, _, _ := strings.Cut(dest, "#")
		if path == "" {
			return destSkip, ""
		}
		return destFile, path
	}
}

// newLineLocator returns a lookup that finds the 1-based line containing a
// destination. Each needle keeps its own search cursor so repeated links to
// the same target attribute to successive occurrences.
func newLineLocator(content string) func(needle string) int {
	lines := strings.Split(content, "\n")
	cursors := make(map[string]int)
	return func(needle string) int {
		start := cursors[needle]
		for i := start; i < len(lines); i++ {
			if strings.Contains(lines[i], needle) {
				cursors[needle] = i + 1
				return i + 1
			}
		}
		return 1
	}
}

// rewriteRelativeLinks parses the rendered HTML fragment and rewrites
// relative *.md hrefs (and image srcs) to *.html, preserving fragments.
// External URLs, anchors, and xref destinations pass through untouched.
func rewriteRelativeLinks(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		rewriteNode(n)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node) {
	if n.Type == html.ElementNode {
		for i, attr := range n.Attr {
			isLink := n.DataAtom == atom.A && attr.Key == "href"
			isImage := n.DataAtom == atom.Img && attr.Key == "src"
			if isLink || isImage {
				n.Attr[i].Val = rewriteDestination(attr.Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c)
	}
}

func rewriteDestination(dest string) string {
	if kind, _ := classifyDestination(dest); kind != destFile {
		return dest
	}
	path, frag, hasFrag := strings.Cut(dest, "#")
	if strings.HasSuffix(path, ".md") {
		path = strings.TrimSuffix(path, ".md") + ".html"
	}
	if hasFrag {
		return path + "#" + frag
	}
	return path
}
