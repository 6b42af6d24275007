// Package render resolves the displayable form of a value.
//
// A value is renderable when it implements one of three capabilities. They
// are probed in a fixed preference order:
//
//  1. Displayer    full output with an explicit MIME type
//  2. HTMLRenderer an HTML fragment
//  3. MIMERenderer a single MIME bundle
//
// Values implementing none of them fail with an errors.ErrCodeNoRenderable
// AppError.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/kbukum/tablekit/errors"
)

// Common MIME types produced by renderables.
const (
	MIMEHTML     = "text/html"
	MIMEPlain    = "text/plain"
	MIMEMarkdown = "text/markdown"
	MIMESVG      = "image/svg+xml"
	MIMEPNG      = "image/png"
)

// Output is the rendered form of a value.
type Output struct {
	MIMEType string
	Data     string
}

// Displayer produces its own Output.
type Displayer interface {
	Display() (Output, error)
}

// HTMLRenderer produces an HTML fragment.
type HTMLRenderer interface {
	RenderHTML() (string, error)
}

// MIMERenderer produces a single MIME bundle.
type MIMERenderer interface {
	MIME() (mimeType, data string, err error)
}

// Render probes v for a render capability and returns its output.
func Render(v any) (Output, error) {
	switch r := v.(type) {
	case Displayer:
		return r.Display()
	case HTMLRenderer:
		s, err := r.RenderHTML()
		if err != nil {
			return Output{}, err
		}
		return Output{MIMEType: MIMEHTML, Data: s}, nil
	case MIMERenderer:
		mt, data, err := r.MIME()
		if err != nil {
			return Output{}, err
		}
		return Output{MIMEType: mt, Data: data}, nil
	}
	return Output{}, errors.NoRenderable(kindOf(v))
}

// RenderAll renders every value, stopping at the first failure.
func RenderAll(vs ...any) ([]Output, error) {
	out := make([]Output, 0, len(vs))
	for i, v := range vs {
		o, err := Render(v)
		if err != nil {
			return nil, fmt.Errorf("render value %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

// IsRenderable reports whether v implements any render capability.
func IsRenderable(v any) bool {
	switch v.(type) {
	case Displayer, HTMLRenderer, MIMERenderer:
		return true
	}
	return false
}

// HTML renders v and converts the output to an HTML fragment.
func HTML(v any) (string, error) {
	o, err := Render(v)
	if err != nil {
		return "", err
	}
	return o.HTML()
}

// HTML converts the output to an HTML fragment according to its MIME type.
func (o Output) HTML() (string, error) {
	mt, _, _ := strings.Cut(o.MIMEType, ";")
	switch strings.TrimSpace(mt) {
	case MIMEHTML, MIMESVG, "":
		return o.Data, nil
	case MIMEPlain:
		return "<pre>" + html.EscapeString(o.Data) + "</pre>", nil
	case MIMEMarkdown:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(o.Data), &buf); err != nil {
			return "", errors.Internal(err)
		}
		return buf.String(), nil
	}
	if strings.HasPrefix(o.MIMEType, "image/") {
		return fmt.Sprintf(`<img src="data:%s;base64,%s">`, mt, o.Data), nil
	}
	return "", errors.InvalidInput("mime_type", fmt.Sprintf("cannot embed %q as HTML", o.MIMEType))
}

// Valuer exposes the current value of an interactive element.
type Valuer interface {
	Value() any
}

// ValueString formats the current value of v for display next to it.
// Values that are not Valuers are formatted directly.
func ValueString(v any) string {
	if vv, ok := v.(Valuer); ok {
		v = vv.Value()
	}
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		return fmt.Sprintf("%q", x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case []string:
		q := make([]string, len(x))
		for i, s := range x {
			q[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(q, ", ") + "]"
	case []int:
		q := make([]string, len(x))
		for i, n := range x {
			q[i] = strconv.Itoa(n)
		}
		return "[" + strings.Join(q, ", ") + "]"
	case time.Time:
		if x.Equal(x.Truncate(24 * time.Hour)) {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func kindOf(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
