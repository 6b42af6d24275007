package widget

import (
	"context"
	"fmt"
	"html/template"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/logger"
	"github.com/kbukum/tablekit/validation"
)

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Batch fills the {name} placeholders of a Markdown template with widgets
// and reports their values together.
type Batch struct {
	id       string
	template string
	fields   map[string]Widget
}

// NewBatch checks that every placeholder in tmpl has a field and every
// field a placeholder.
func NewBatch(tmpl string, fields map[string]Widget) (*Batch, error) {
	seen := map[string]bool{}
	for _, m := range placeholder.FindAllStringSubmatch(tmpl, -1) {
		seen[m[1]] = true
	}
	v := validation.New()
	for _, name := range slices.Sorted(maps.Keys(seen)) {
		v.Custom(fields[name] != nil, name, "placeholder has no widget")
	}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		v.Custom(seen[name], name, "widget has no placeholder")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return &Batch{id: "batch-" + uuid.NewString()[:8], template: tmpl, fields: maps.Clone(fields)}, nil
}

// ID returns the HTML id of the batch.
func (b *Batch) ID() string { return b.id }

// Label returns an empty label; the template carries the labels.
func (b *Batch) Label() string { return "" }

// Names returns the field names in sorted order.
func (b *Batch) Names() []string { return slices.Sorted(maps.Keys(b.fields)) }

// Field returns the widget bound to name.
func (b *Batch) Field(name string) (Widget, bool) {
	w, ok := b.fields[name]
	return w, ok
}

// Value returns the current value of every field.
func (b *Batch) Value() any {
	out := make(map[string]any, len(b.fields))
	for name, w := range b.fields {
		out[name] = w.Value()
	}
	return out
}

// Values returns every field value as text. Lists are joined with commas.
func (b *Batch) Values() map[string]string {
	out := make(map[string]string, len(b.fields))
	for name, w := range b.fields {
		out[name] = valueText(w.Value())
	}
	return out
}

func valueText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ",")
	}
	return fmt.Sprint(v)
}

// Subscribe registers fn with every observable field.
func (b *Batch) Subscribe(fn func()) {
	for _, w := range b.fields {
		if o, ok := w.(Observable); ok {
			o.Subscribe(fn)
		}
	}
}

func (b *Batch) body() (template.HTML, error) {
	md, err := markdownHTML(b.template)
	if err != nil {
		return "", err
	}
	var rerr error
	out := placeholder.ReplaceAllStringFunc(md, func(m string) string {
		w := b.fields[m[1:len(m)-1]]
		h, err := w.RenderHTML()
		if err != nil && rerr == nil {
			rerr = err
		}
		return h
	})
	return template.HTML(out), rerr
}

// RenderHTML renders the template with the widgets in place.
func (b *Batch) RenderHTML() (string, error) {
	body, err := b.body()
	if err != nil {
		return "", err
	}
	return renderTemplate("batch", struct {
		ID   string
		Body template.HTML
	}{b.id, body})
}

// FormConfig configures a Form. Required lists fields that must not be
// blank on submit. Validate runs after the required check.
type FormConfig struct {
	SubmitLabel string
	Kind        string `validate:"omitempty,oneof=neutral success warn danger"`
	Clearable   bool
	ClearLabel  string
	Required    []string
	Validate    func(map[string]string) error
	OnSubmit    func(ctx context.Context, values map[string]string) error
}

// Form is a Batch with a submit button. Its value is nil until a submit
// succeeds and then holds the submitted values.
type Form struct {
	*Batch
	cfg FormConfig

	mu       sync.RWMutex
	value    map[string]string
	err      error
	handlers []func(map[string]string)
}

// Form wraps b in a form.
func (b *Batch) Form(cfg FormConfig) (*Form, error) {
	if cfg.SubmitLabel == "" {
		cfg.SubmitLabel = "Submit"
	}
	if cfg.ClearLabel == "" {
		cfg.ClearLabel = "Clear"
	}
	if cfg.Kind == "" {
		cfg.Kind = KindNeutral
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	v := validation.New()
	for _, name := range cfg.Required {
		v.Custom(b.fields[name] != nil, name, "required field has no widget")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return &Form{Batch: b, cfg: cfg}, nil
}

// Submit validates the current field values and passes them to
// OnSubmit. A failure is kept and shown when the form renders.
func (f *Form) Submit(ctx context.Context) error {
	values := f.Values()
	err := f.check(values)
	if err == nil && f.cfg.OnSubmit != nil {
		err = f.cfg.OnSubmit(ctx, values)
	}

	f.mu.Lock()
	f.err = err
	if err == nil {
		f.value = values
	}
	handlers := slices.Clone(f.handlers)
	f.mu.Unlock()

	log := logger.Get("widget")
	if err != nil {
		log.Warn("form submit failed", logger.ErrorFields("submit", err))
		return err
	}
	log.Debug("form submitted", logger.Fields("form", f.id))
	for _, fn := range handlers {
		fn(maps.Clone(values))
	}
	return nil
}

func (f *Form) check(values map[string]string) error {
	v := validation.New()
	for _, name := range f.cfg.Required {
		v.Required(name, values[name])
	}
	if err := v.Err(); err != nil {
		return err
	}
	if f.cfg.Validate != nil {
		if err := f.cfg.Validate(values); err != nil {
			if _, ok := errors.AsAppError(err); ok {
				return err
			}
			return errors.Validation(err.Error()).WithCause(err)
		}
	}
	return nil
}

// Submitted returns the last successfully submitted values.
func (f *Form) Submitted() (map[string]string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return maps.Clone(f.value), f.value != nil
}

// Value returns the submitted values, or nil before the first submit.
func (f *Form) Value() any {
	v, ok := f.Submitted()
	if !ok {
		return nil
	}
	return v
}

// Err returns the error of the last submit.
func (f *Form) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// OnSubmit registers fn to run after every successful Submit.
func (f *Form) OnSubmit(fn func(map[string]string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, fn)
}

// Subscribe registers fn to run after every successful Submit.
func (f *Form) Subscribe(fn func()) {
	f.OnSubmit(func(map[string]string) { fn() })
}

// RenderHTML renders the fields, the last error and the buttons.
func (f *Form) RenderHTML() (string, error) {
	body, err := f.body()
	if err != nil {
		return "", err
	}
	var msg string
	if err := f.Err(); err != nil {
		msg = err.Error()
		if ae, ok := errors.AsAppError(err); ok {
			msg = ae.Message
		}
	}
	return renderTemplate("form", struct {
		ID, Kind, SubmitLabel, ClearLabel, Error string
		Clearable                                bool
		Body                                     template.HTML
	}{f.id, f.cfg.Kind, f.cfg.SubmitLabel, f.cfg.ClearLabel, msg, f.cfg.Clearable, body})
}
