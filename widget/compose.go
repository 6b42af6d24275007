package widget

import (
	"bytes"
	"html/template"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/kbukum/tablekit/render"
)

var markdown = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

func markdownHTML(s string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Markdown is static Markdown content. Raw HTML inside it is kept.
type Markdown struct {
	text string
}

// MD returns Markdown content.
func MD(text string) *Markdown { return &Markdown{text: text} }

// Text returns the Markdown source.
func (m *Markdown) Text() string { return m.text }

// RenderHTML converts the Markdown with goldmark.
func (m *Markdown) RenderHTML() (string, error) {
	body, err := markdownHTML(m.text)
	if err != nil {
		return "", err
	}
	return renderTemplate("markdown", template.HTML(body))
}

// Array groups widgets and reports their values as a list.
type Array struct {
	id    string
	label string
	items []Widget
}

// NewArray groups items.
func NewArray(label string, items ...Widget) *Array {
	return &Array{id: "array-" + uuid.NewString()[:8], label: label, items: items}
}

// ID returns the HTML id of the array.
func (a *Array) ID() string { return a.id }

// Label returns the array label.
func (a *Array) Label() string { return a.label }

// Len returns the number of items.
func (a *Array) Len() int { return len(a.items) }

// Items returns the grouped widgets.
func (a *Array) Items() []Widget { return append([]Widget(nil), a.items...) }

// At returns the i-th widget.
func (a *Array) At(i int) Widget { return a.items[i] }

// Values returns the current value of every item.
func (a *Array) Values() []any {
	out := make([]any, len(a.items))
	for i, w := range a.items {
		out[i] = w.Value()
	}
	return out
}

// Value returns Values.
func (a *Array) Value() any { return a.Values() }

// Subscribe registers fn with every observable item.
func (a *Array) Subscribe(fn func()) {
	for _, w := range a.items {
		if o, ok := w.(Observable); ok {
			o.Subscribe(fn)
		}
	}
}

// RenderHTML renders every item in order.
func (a *Array) RenderHTML() (string, error) {
	items := make([]template.HTML, len(a.items))
	for i, w := range a.items {
		h, err := w.RenderHTML()
		if err != nil {
			return "", err
		}
		items[i] = template.HTML(h)
	}
	return renderTemplate("array", struct {
		ID, Label string
		Items     []template.HTML
	}{a.id, a.label, items})
}

// Section is one collapsible part of an Accordion. Strings are rendered
// as Markdown; any other renderable value is rendered as is.
type Section struct {
	Title   string
	Content any
}

// Accordion shows sections that expand on click.
type Accordion struct {
	id       string
	sections []Section
	open     bool
}

// NewAccordion builds an accordion from sections.
func NewAccordion(sections ...Section) *Accordion {
	return &Accordion{id: "accordion-" + uuid.NewString()[:8], sections: sections}
}

// Expanded returns a copy of a whose sections start open.
func (a *Accordion) Expanded() *Accordion {
	c := *a
	c.open = true
	return &c
}

// Sections returns the sections in order.
func (a *Accordion) Sections() []Section { return append([]Section(nil), a.sections...) }

// RenderHTML renders a details element per section.
func (a *Accordion) RenderHTML() (string, error) {
	type section struct{ Title, Content template.HTML }
	out := make([]section, len(a.sections))
	for i, s := range a.sections {
		title, err := inlineHTML(s.Title)
		if err != nil {
			return "", err
		}
		var content string
		if text, ok := s.Content.(string); ok {
			content, err = markdownHTML(text)
		} else {
			content, err = render.HTML(s.Content)
		}
		if err != nil {
			return "", err
		}
		out[i] = section{template.HTML(title), template.HTML(content)}
	}
	return renderTemplate("accordion", struct {
		ID       string
		Open     bool
		Sections []section
	}{a.id, a.open, out})
}

// inlineHTML renders a single line of Markdown without the paragraph.
func inlineHTML(s string) (string, error) {
	h, err := markdownHTML(s)
	if err != nil {
		return "", err
	}
	h = string(bytes.TrimSpace([]byte(h)))
	if len(h) > 7 && h[:3] == "<p>" && h[len(h)-4:] == "</p>" {
		h = h[3 : len(h)-4]
	}
	return h, nil
}
