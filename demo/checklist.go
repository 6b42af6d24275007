package demo

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/notebook"
	"github.com/kbukum/tablekit/table"
	"github.com/kbukum/tablekit/widget"
)

var checklistTasks = []struct{ task, note string }{
	{"Set DEBUG = False", "Never deploy with DEBUG = True ⚠️"},
	{"Configure ALLOWED_HOSTS", "Include your domain(s) or IP address 🌐"},
	{"Set up a secret key", "Use a strong, secure key from an environment variable 🔐"},
	{"Collect static files", "Run `python manage.py collectstatic` 📦"},
	{"Apply database migrations", "Run `python manage.py migrate` 🗃️"},
	{"Set up gunicorn or uWSGI", "Use as a WSGI server in production 🔄"},
	{"Configure reverse proxy (e.g., Nginx)", "Serve static/media files and forward to WSGI server 🧭"},
	{"Secure the database", "Use strong credentials, disable remote root login 🛡️"},
	{"Set up HTTPS (SSL)", "Use Let's Encrypt or your own certificate 🔒"},
	{"Configure logging & monitoring", "Track errors and app performance 📊"},
}

var progressTemplate = template.Must(template.New("bar").Parse(
	`<div style="width: {{.Max}}px; background-color: {{.BG}};">` +
		`<div style="height:{{.Height}}px;width:{{.Width}}px;background-color:{{.FG}};"></div></div>`))

// ProgressBar renders a horizontal bar filled to fraction x of width
// pixels. x is clamped to [0, 1].
func ProgressBar(x float64, width, height int, bg, fg string) (string, error) {
	if width <= 0 || height <= 0 {
		return "", errors.InvalidInput("size", "width and height must be positive")
	}
	if math.IsNaN(x) {
		x = 0
	}
	x = min(max(x, 0), 1)
	var buf bytes.Buffer
	err := progressTemplate.Execute(&buf, struct {
		Max, Height int
		Width       float64
		BG, FG      template.CSS
	}{width, height, math.Round(float64(width)*x*100) / 100, template.CSS(bg), template.CSS(fg)})
	return buf.String(), err
}

// ChecklistDemo is a deployment checklist whose progress follows the
// status switches.
type ChecklistDemo struct {
	*notebook.Notebook
	Status *widget.Array
}

// Done counts the switched on tasks.
func (d *ChecklistDemo) Done() int {
	n := 0
	for _, v := range d.Status.Values() {
		if on, _ := v.(bool); on {
			n++
		}
	}
	return n
}

// Table builds the checklist table for the current switch values.
func (d *ChecklistDemo) Table() (*table.Table, error) {
	total := d.Status.Len()
	status := make([]any, total)
	tasks := make([]any, total)
	notes := make([]any, total)
	for i, item := range d.Status.Items() {
		status[i] = item
		tasks[i] = checklistTasks[i].task
		notes[i] = table.Markdown(checklistTasks[i].note)
	}
	f, err := table.NewFrame(
		table.Col("Status", status...),
		table.Col("Task", tasks...),
		table.Col("Notes", notes...),
	)
	if err != nil {
		return nil, err
	}
	done := d.Done()
	bar, err := ProgressBar(float64(done)/float64(total), 750, 20, "lightgray", "#66CDAA")
	if err != nil {
		return nil, err
	}
	t := table.New(f, table.ID("checklist")).
		TabSourceNote(fmt.Sprintf("%d / %d", done, total)).
		TabSourceNote(table.HTML(bar)).
		TabHeader("✅ Django Deployment Checklist").
		OptStylize(4, "cyan", false)
	return t, t.Err()
}

// Checklist builds the checklist with the first len(done) tasks set.
func Checklist(ctx context.Context, done []bool) (*ChecklistDemo, error) {
	if len(done) > len(checklistTasks) {
		return nil, errors.InvalidInput("done", fmt.Sprintf("at most %d tasks", len(checklistTasks)))
	}
	items := make([]widget.Widget, len(checklistTasks))
	for i := range items {
		on := i < len(done) && done[i]
		items[i] = widget.NewSwitch(widget.ToggleConfig{Value: on})
	}
	d := &ChecklistDemo{Notebook: notebook.New("Deployment checklist"), Status: widget.NewArray("Status", items...)}
	err := d.Add(ctx, "checklist", func(context.Context) (any, error) {
		return d.Table()
	}, d.Status)
	if err != nil {
		return nil, err
	}
	return d, nil
}
