package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/inful/mdgraph/internal/errors"
)

// Placeholder is the reserved sentinel. A content value consisting of the
// sentinel (after trimming) is replaced by the context's configured
// placeholder content instead of being rendered.
const Placeholder = "*content"

// IsPlaceholder reports whether text is the sentinel token under the
// context's placeholder settings. All sentinel detection goes through here
// so the trim-and-compare rule lives in one place.
func IsPlaceholder(text string, tctx *Context) bool {
	return tctx.EnablePlaceholder && strings.TrimSpace(text) == Placeholder
}

// Markup applies the content policy to a single field value.
//
// Nil passes through unchanged. Any non-string value is a contract violation
// by an upstream field classification and fails with an unsupported error
// naming the offending type.
func Markup(value any, tctx *Context) (any, error) {
	if value == nil {
		return nil, nil
	}
	text, ok := value.(string)
	if !ok {
		return nil, errors.UnsupportedContentType(fmt.Sprintf("%T", value))
	}
	return MarkupString(text, tctx)
}

// MarkupString transforms one string: sentinel substitution when placeholder
// mode is enabled, otherwise a render through the context's engine with the
// result's link metadata merged into the context.
func MarkupString(text string, tctx *Context) (string, error) {
	if text == "" {
		return text, nil
	}

	if IsPlaceholder(text, tctx) {
		tctx.ContainsPlaceholder = true
		tctx.recorder().IncPlaceholderSubstitutions()
		return tctx.PlaceholderContent, nil
	}

	start := time.Now()
	res, err := tctx.Engine.Render(text, tctx.File)
	if err != nil {
		return "", errors.RenderError(tctx.File.Path, err)
	}
	tctx.recorder().IncRenders()
	tctx.recorder().ObserveRenderDuration(time.Since(start))

	tctx.merge(res)
	return res.HTML, nil
}
