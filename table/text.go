package table

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/kbukum/tablekit/render"
)

type textKind int

const (
	kindPlain textKind = iota
	kindHTML
	kindMarkdown
	kindWidget
)

// Text is table content that is either escaped plain text, trusted HTML,
// Markdown or a live renderable such as a control widget.
type Text struct {
	kind textKind
	s    string
	r    any
}

// Plain is text that is HTML-escaped on output.
func Plain(s string) Text { return Text{kind: kindPlain, s: s} }

// HTML is trusted markup inserted verbatim.
func HTML(s string) Text { return Text{kind: kindHTML, s: s} }

// Markdown is inline Markdown converted with goldmark.
func Markdown(s string) Text { return Text{kind: kindMarkdown, s: s} }

// Widget embeds any renderable value. It is rendered every time the table
// is, so it reflects the value's state at render time.
func Widget(r any) Text { return Text{kind: kindWidget, r: r} }

// IsZero reports whether t carries no content.
func (t Text) IsZero() bool { return t.s == "" && t.r == nil }

// HTML returns the markup for t.
func (t Text) HTML() (string, error) {
	switch t.kind {
	case kindHTML:
		return t.s, nil
	case kindMarkdown:
		return inlineMarkdown(t.s)
	case kindWidget:
		return render.HTML(t.r)
	}
	return html.EscapeString(t.s), nil
}

// String returns t as plain text, with markup removed.
func (t Text) String() string {
	switch t.kind {
	case kindPlain:
		return t.s
	case kindWidget:
		return render.ValueString(t.r)
	}
	s, err := t.HTML()
	if err != nil {
		return ""
	}
	return stripTags(s)
}

// asText converts a builder argument to Text. Strings become Plain text.
func asText(v any) (Text, bool) {
	switch x := v.(type) {
	case Text:
		return x, true
	case string:
		return Plain(x), true
	case nil:
		return Text{}, true
	}
	if render.IsRenderable(v) {
		return Widget(v), true
	}
	return Text{}, false
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	breakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)
)

func stripTags(s string) string {
	s = breakPattern.ReplaceAllString(s, " ")
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

func inlineMarkdown(s string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	out := strings.TrimSpace(buf.String())
	// a single paragraph renders inline inside a cell
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}
