// Package notebook hosts reactive cells in process.
//
// A cell is a function producing a renderable value. Cells declare the
// widgets they read; when one of those widgets changes, the cell runs
// again and its cached output is replaced. Page renders every output as
// one HTML document.
package notebook

import (
	"bytes"
	"context"
	"html/template"
	"regexp"
	"sync"
	"time"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/logger"
	"github.com/kbukum/tablekit/observability"
	"github.com/kbukum/tablekit/render"
	"github.com/kbukum/tablekit/table"
	"github.com/kbukum/tablekit/widget"
)

// CellFunc computes the value shown by a cell.
type CellFunc func(ctx context.Context) (any, error)

// Output is the cached result of the last run of a cell.
type Output struct {
	Cell    string
	HTML    string
	Err     error
	Runs    int
	Updated time.Time
}

type cell struct {
	name  string
	run   CellFunc
	reads []widget.Observable
	out   Output
}

// Notebook is an ordered list of cells.
type Notebook struct {
	title string
	log   *logger.Logger

	mu    sync.RWMutex
	cells []*cell
	names map[string]bool
}

// New returns an empty notebook.
func New(title string) *Notebook {
	return &Notebook{title: title, log: logger.Get("notebook"), names: map[string]bool{}}
}

// Title returns the notebook title.
func (n *Notebook) Title() string { return n.title }

var cellName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Add appends a cell that reruns whenever one of reads changes. The cell
// runs once immediately.
func (n *Notebook) Add(ctx context.Context, name string, run CellFunc, reads ...widget.Observable) error {
	if !cellName.MatchString(name) {
		return errors.InvalidInput("name", "cell names start with a letter and contain letters, digits, - or _")
	}
	if run == nil {
		return errors.InvalidInput("run", "cell function is required")
	}
	n.mu.Lock()
	if n.names[name] {
		n.mu.Unlock()
		return errors.InvalidInput("name", "duplicate cell "+name)
	}
	c := &cell{name: name, run: run, reads: reads}
	n.cells = append(n.cells, c)
	n.names[name] = true
	n.mu.Unlock()

	for _, w := range reads {
		w.Subscribe(func() { n.evaluate(context.WithoutCancel(ctx), c) })
	}
	n.evaluate(ctx, c)
	return nil
}

// Show appends a cell displaying v. It reruns when reads change, which
// suits values that render their own current state.
func (n *Notebook) Show(ctx context.Context, name string, v any, reads ...widget.Observable) error {
	return n.Add(ctx, name, func(context.Context) (any, error) { return v, nil }, reads...)
}

func (n *Notebook) evaluate(ctx context.Context, c *cell) {
	op := observability.Start(ctx, "notebook", "cell")
	v, err := c.run(op.Context())
	var html string
	if err == nil {
		html, err = render.HTML(v)
	}
	op.End(err)

	n.mu.Lock()
	c.out.Cell = c.name
	c.out.HTML = html
	c.out.Err = err
	c.out.Runs++
	c.out.Updated = time.Now()
	runs := c.out.Runs
	n.mu.Unlock()

	if err != nil {
		n.log.Warn("cell failed", logger.Fields("cell", c.name, "error", err.Error()))
		return
	}
	n.log.Debug("cell evaluated", logger.Fields("cell", c.name, "runs", runs))
}

// Rerun evaluates every cell again in order.
func (n *Notebook) Rerun(ctx context.Context) {
	n.mu.RLock()
	cells := append([]*cell(nil), n.cells...)
	n.mu.RUnlock()
	for _, c := range cells {
		n.evaluate(ctx, c)
	}
}

// Outputs returns the cached outputs in cell order.
func (n *Notebook) Outputs() []Output {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Output, len(n.cells))
	for i, c := range n.cells {
		out[i] = c.out
	}
	return out
}

// Output returns the cached output of the named cell.
func (n *Notebook) Output(name string) (Output, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, c := range n.cells {
		if c.name == name {
			return c.out, true
		}
	}
	return Output{}, false
}

// Err returns the first cell error.
func (n *Notebook) Err() error {
	for _, o := range n.Outputs() {
		if o.Err != nil {
			return errors.New(errors.ErrCodeInternal, "cell "+o.Cell+" failed").WithCause(o.Err)
		}
	}
	return nil
}

var bodyTemplate = template.Must(template.New("body").Parse(`<main class="tk-notebook">
{{- if .Title}}
<h1>{{.Title}}</h1>
{{- end}}
{{- range .Cells}}
<section class="tk-cell" id="cell-{{.Cell}}">
{{- if .Err}}
<pre class="tk-error">{{.Err}}</pre>
{{- else}}
{{.HTML}}
{{- end}}
</section>
{{- end}}
</main>`))

// HTML renders the outputs without a document wrapper.
func (n *Notebook) HTML() (string, error) {
	type view struct {
		Cell string
		HTML template.HTML
		Err  error
	}
	outs := n.Outputs()
	cells := make([]view, len(outs))
	for i, o := range outs {
		cells[i] = view{o.Cell, template.HTML(o.HTML), o.Err}
	}
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct {
		Title string
		Cells []view
	}{n.title, cells})
	return buf.String(), err
}

// RenderHTML makes a notebook embeddable in another notebook or table.
func (n *Notebook) RenderHTML() (string, error) { return n.HTML() }

// Page renders the notebook as a complete HTML document.
func (n *Notebook) Page() (string, error) {
	body, err := n.HTML()
	if err != nil {
		return "", err
	}
	title := n.title
	if title == "" {
		title = "tablekit"
	}
	return table.Document(title, table.DefaultLocale, template.HTML(body))
}
