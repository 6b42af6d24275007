package widget

import (
	"slices"

	"github.com/kbukum/tablekit/validation"
)

// ChoiceConfig configures a Radio or a Dropdown. An empty Value means
// nothing is selected; AllowNone lets Set clear the selection again.
type ChoiceConfig struct {
	Options   []string `validate:"required,min=1,unique,dive,required"`
	Value     string
	Label     string
	Inline    bool
	AllowNone bool
	Disabled  bool
}

type choice struct {
	control[string]
	cfg ChoiceConfig
}

func (c *choice) setup(kind string, cfg ChoiceConfig) error {
	if err := validation.Validate(cfg); err != nil {
		return err
	}
	c.cfg = cfg
	c.cfg.Options = slices.Clone(cfg.Options)
	if cfg.Value != "" {
		if err := c.validate(cfg.Value); err != nil {
			return err
		}
	}
	c.init(kind, cfg.Label, cfg.Value, c.validate)
	return nil
}

func (c *choice) validate(v string) error {
	if v == "" && c.cfg.AllowNone {
		return nil
	}
	return validation.New().OneOf("value", v, c.cfg.Options).Err()
}

// Options returns the selectable options.
func (c *choice) Options() []string { return slices.Clone(c.cfg.Options) }

// Value returns the selected option, or nil when nothing is selected.
func (c *choice) Value() any {
	if v := c.Get(); v != "" {
		return v
	}
	return nil
}

func (c *choice) view() any {
	return struct {
		ChoiceConfig
		ID    string
		Value string
	}{c.cfg, c.id, c.Get()}
}

// Radio selects one option from a group of radio buttons.
type Radio struct{ choice }

// NewRadio validates cfg and builds a radio group.
func NewRadio(cfg ChoiceConfig) (*Radio, error) {
	r := &Radio{}
	if err := r.setup("radio", cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// RenderHTML renders the radio group.
func (r *Radio) RenderHTML() (string, error) { return renderTemplate("radio", r.view()) }

// Dropdown selects one option from a select element.
type Dropdown struct{ choice }

// NewDropdown validates cfg and builds a dropdown.
func NewDropdown(cfg ChoiceConfig) (*Dropdown, error) {
	d := &Dropdown{}
	if err := d.setup("dropdown", cfg); err != nil {
		return nil, err
	}
	return d, nil
}

// RenderHTML renders the select element.
func (d *Dropdown) RenderHTML() (string, error) { return renderTemplate("dropdown", d.view()) }

// MultiselectConfig configures a Multiselect. A zero MaxSelections is
// unlimited.
type MultiselectConfig struct {
	Options       []string `validate:"required,min=1,unique,dive,required"`
	Value         []string
	MaxSelections int `validate:"gte=0"`
	Label         string
	Disabled      bool
}

// Multiselect selects any number of options.
type Multiselect struct {
	control[[]string]
	cfg MultiselectConfig
}

// NewMultiselect validates cfg and builds a multiselect.
func NewMultiselect(cfg MultiselectConfig) (*Multiselect, error) {
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	m := &Multiselect{cfg: cfg}
	m.cfg.Options = slices.Clone(cfg.Options)
	value := slices.Clone(cfg.Value)
	if value == nil {
		value = []string{}
	}
	if err := m.validate(value); err != nil {
		return nil, err
	}
	m.init("multiselect", cfg.Label, value, m.validate)
	return m, nil
}

func (m *Multiselect) validate(v []string) error {
	vr := validation.New().SubsetOf("value", v, m.cfg.Options)
	if m.cfg.MaxSelections > 0 {
		vr.Custom(len(v) <= m.cfg.MaxSelections, "value", "too many selections")
	}
	return vr.Custom(len(slices.Compact(slices.Sorted(slices.Values(v)))) == len(v), "value", "duplicate selection").Err()
}

// Set stores a copy of v.
func (m *Multiselect) Set(v []string) error {
	if v == nil {
		v = []string{}
	}
	return m.control.Set(slices.Clone(v))
}

// Get returns a copy of the selection.
func (m *Multiselect) Get() []string { return slices.Clone(m.control.Get()) }

// Value returns a copy of the selection.
func (m *Multiselect) Value() any { return m.Get() }

// RenderHTML renders a multiple select element.
func (m *Multiselect) RenderHTML() (string, error) {
	return renderTemplate("multiselect", struct {
		MultiselectConfig
		ID       string
		Selected []string
	}{m.cfg, m.id, m.Get()})
}
