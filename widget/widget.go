package widget

import (
	"bytes"
	"embed"
	"html/template"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/tablekit/logger"
)

// Widget is an interactive input.
type Widget interface {
	ID() string
	Label() string
	RenderHTML() (string, error)
	Value() any
}

// Observable is implemented by widgets that report value changes without
// exposing the value type.
type Observable interface {
	Subscribe(fn func())
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("widgets").Funcs(template.FuncMap{
	"contains": slices.Contains[[]string],
}).ParseFS(templateFS, "templates/*.html.tmpl"))

func renderTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// control holds the state shared by all widgets.
type control[T any] struct {
	id    string
	label string
	check func(T) error

	mu       sync.RWMutex
	value    T
	handlers []func(T)
	notify   []func()
}

func (c *control[T]) init(kind, label string, value T, check func(T) error) {
	c.id = kind + "-" + uuid.NewString()[:8]
	c.label = label
	c.value = value
	c.check = check
}

// ID returns the HTML id of the widget.
func (c *control[T]) ID() string { return c.id }

// Label returns the widget label.
func (c *control[T]) Label() string { return c.label }

// Get returns the current value.
func (c *control[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Value returns the current value.
func (c *control[T]) Value() any { return c.Get() }

// Set validates and stores v, then calls the change handlers with it.
func (c *control[T]) Set(v T) error {
	if c.check != nil {
		if err := c.check(v); err != nil {
			return err
		}
	}
	c.mu.Lock()
	c.value = v
	handlers := slices.Clone(c.handlers)
	notify := slices.Clone(c.notify)
	c.mu.Unlock()

	logger.Get("widget").Debug("value changed", logger.Fields("widget", c.id))
	for _, fn := range handlers {
		fn(v)
	}
	for _, fn := range notify {
		fn()
	}
	return nil
}

// OnChange registers fn to run after every successful Set.
func (c *control[T]) OnChange(fn func(T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
}

// Subscribe registers fn to run after every successful Set.
func (c *control[T]) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = append(c.notify, fn)
}

// Must panics if err is non-nil. It is meant for widgets built from
// constant configuration.
func Must[W any](w W, err error) W {
	if err != nil {
		panic(err)
	}
	return w
}
