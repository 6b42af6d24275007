package widget

import (
	"github.com/kbukum/tablekit/validation"
)

// Button kinds.
const (
	KindNeutral = "neutral"
	KindSuccess = "success"
	KindWarn    = "warn"
	KindDanger  = "danger"
)

// ButtonConfig configures a Button or a RunButton. OnClick maps the
// current value to the next one on every click; Button only.
type ButtonConfig struct {
	Value    any
	OnClick  func(any) any
	Kind     string `validate:"omitempty,oneof=neutral success warn danger"`
	Label    string
	Tooltip  string
	Disabled bool
}

func (c *ButtonConfig) defaults(label string) error {
	if c.Kind == "" {
		c.Kind = KindNeutral
	}
	if c.Label == "" {
		c.Label = label
	}
	return validation.Validate(c)
}

type buttonView struct {
	ID, Kind, Label, Tooltip string
	Disabled                 bool
}

// Button holds a value that each click passes through OnClick.
type Button struct {
	control[any]
	cfg ButtonConfig
}

// NewButton validates cfg and builds a button.
func NewButton(cfg ButtonConfig) (*Button, error) {
	if err := cfg.defaults("click here"); err != nil {
		return nil, err
	}
	b := &Button{cfg: cfg}
	b.init("button", cfg.Label, cfg.Value, nil)
	return b, nil
}

// Click applies OnClick to the value. It is a no-op on a disabled button.
func (b *Button) Click() error {
	if b.cfg.Disabled {
		return nil
	}
	next := b.Get()
	if b.cfg.OnClick != nil {
		next = b.cfg.OnClick(next)
	}
	return b.Set(next)
}

// RenderHTML renders a button element.
func (b *Button) RenderHTML() (string, error) {
	return renderTemplate("button", buttonView{b.id, b.cfg.Kind, b.cfg.Label, b.cfg.Tooltip, b.cfg.Disabled})
}

// RunButton is true from a click until the click is consumed.
type RunButton struct {
	control[bool]
	cfg ButtonConfig
}

// NewRunButton validates cfg and builds a run button.
func NewRunButton(cfg ButtonConfig) (*RunButton, error) {
	if err := cfg.defaults("click to run"); err != nil {
		return nil, err
	}
	r := &RunButton{cfg: cfg}
	r.init("run-button", cfg.Label, false, nil)
	return r, nil
}

// Click marks the button as pressed.
func (r *RunButton) Click() error {
	if r.cfg.Disabled {
		return nil
	}
	return r.Set(true)
}

// Consume reports whether the button was pressed and resets it.
func (r *RunButton) Consume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	pressed := r.value
	r.value = false
	return pressed
}

// RenderHTML renders a button element.
func (r *RunButton) RenderHTML() (string, error) {
	return renderTemplate("button", buttonView{r.id, r.cfg.Kind, r.cfg.Label, r.cfg.Tooltip, r.cfg.Disabled})
}
