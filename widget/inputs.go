package widget

import (
	"fmt"
	"math"
	"time"

	"github.com/kbukum/tablekit/validation"
)

// SliderConfig configures a Slider. A zero Value selects Start unless 0
// lies inside the range. A zero Step means 1.
type SliderConfig struct {
	Start     int
	Stop      int `validate:"gtfield=Start"`
	Step      int `validate:"gte=0"`
	Value     int
	Label     string
	ShowValue bool
	Disabled  bool
}

// Slider selects an integer from an evenly stepped range. Its value doubles
// as an index, so a Slider can drive a lazytable pipeline.
type Slider struct {
	control[int]
	cfg SliderConfig
}

// NewSlider validates cfg and builds a slider.
func NewSlider(cfg SliderConfig) (*Slider, error) {
	if cfg.Step == 0 {
		cfg.Step = 1
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Value == 0 && (cfg.Start > 0 || cfg.Stop < 0) {
		cfg.Value = cfg.Start
	}
	s := &Slider{cfg: cfg}
	if err := s.validate(cfg.Value); err != nil {
		return nil, err
	}
	s.init("slider", cfg.Label, cfg.Value, s.validate)
	return s, nil
}

func (s *Slider) validate(v int) error {
	return validation.New().
		Range("value", float64(v), float64(s.cfg.Start), float64(s.cfg.Stop)).
		Custom((v-s.cfg.Start)%s.cfg.Step == 0, "value", fmt.Sprintf("must be %d plus a multiple of %d", s.cfg.Start, s.cfg.Step)).
		Err()
}

// Index returns the current value.
func (s *Slider) Index() int { return s.Get() }

// Bounds returns the first and last selectable values.
func (s *Slider) Bounds() (start, stop int) { return s.cfg.Start, s.cfg.Stop }

// RenderHTML renders a range input.
func (s *Slider) RenderHTML() (string, error) {
	return renderTemplate("slider", struct {
		SliderConfig
		ID    string
		Value int
	}{s.cfg, s.id, s.Get()})
}

// RangeSliderConfig configures a RangeSlider. A zero Value selects the
// whole range.
type RangeSliderConfig struct {
	Start     int
	Stop      int `validate:"gtfield=Start"`
	Step      int `validate:"gte=0"`
	Value     [2]int
	Label     string
	ShowValue bool
}

// RangeSlider selects a low and a high integer.
type RangeSlider struct {
	control[[2]int]
	cfg RangeSliderConfig
}

// NewRangeSlider validates cfg and builds a range slider.
func NewRangeSlider(cfg RangeSliderConfig) (*RangeSlider, error) {
	if cfg.Step == 0 {
		cfg.Step = 1
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Value == [2]int{} {
		cfg.Value = [2]int{cfg.Start, cfg.Stop}
	}
	r := &RangeSlider{cfg: cfg}
	if err := r.validate(cfg.Value); err != nil {
		return nil, err
	}
	r.init("range-slider", cfg.Label, cfg.Value, r.validate)
	return r, nil
}

func (r *RangeSlider) validate(v [2]int) error {
	lo, hi := float64(r.cfg.Start), float64(r.cfg.Stop)
	return validation.New().
		Range("low", float64(v[0]), lo, hi).
		Range("high", float64(v[1]), lo, hi).
		Custom(v[0] <= v[1], "value", "low must not exceed high").
		Err()
}

// Value returns the selection as a two element slice.
func (r *RangeSlider) Value() any {
	v := r.Get()
	return []int{v[0], v[1]}
}

// RenderHTML renders two linked range inputs.
func (r *RangeSlider) RenderHTML() (string, error) {
	v := r.Get()
	return renderTemplate("range_slider", struct {
		RangeSliderConfig
		ID        string
		Low, High int
	}{r.cfg, r.id, v[0], v[1]})
}

// NumberConfig configures a Number. Start and Stop bound the value when
// Stop > Start; a zero Step accepts any value.
type NumberConfig struct {
	Start    float64
	Stop     float64
	Step     float64 `validate:"gte=0"`
	Value    float64
	Label    string
	Disabled bool
}

// Number is a numeric input.
type Number struct {
	control[float64]
	cfg NumberConfig
}

// NewNumber validates cfg and builds a number input.
func NewNumber(cfg NumberConfig) (*Number, error) {
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	n := &Number{cfg: cfg}
	if n.bounded() && cfg.Value == 0 && (cfg.Start > 0 || cfg.Stop < 0) {
		n.cfg.Value = cfg.Start
	}
	if err := n.validate(n.cfg.Value); err != nil {
		return nil, err
	}
	n.init("number", cfg.Label, n.cfg.Value, n.validate)
	return n, nil
}

func (n *Number) bounded() bool { return n.cfg.Stop > n.cfg.Start }

func (n *Number) validate(v float64) error {
	vr := validation.New().Custom(!math.IsNaN(v) && !math.IsInf(v, 0), "value", "must be a finite number")
	if n.bounded() {
		vr.Range("value", v, n.cfg.Start, n.cfg.Stop)
	}
	if n.cfg.Step > 0 {
		k := (v - n.cfg.Start) / n.cfg.Step
		vr.Custom(math.Abs(k-math.Round(k)) < 1e-9, "value", fmt.Sprintf("must be a multiple of %g", n.cfg.Step))
	}
	return vr.Err()
}

// RenderHTML renders a number input.
func (n *Number) RenderHTML() (string, error) {
	return renderTemplate("number", struct {
		NumberConfig
		ID        string
		Value     float64
		HasBounds bool
	}{n.cfg, n.id, n.Get(), n.bounded()})
}

// ToggleConfig configures a Switch or a Checkbox.
type ToggleConfig struct {
	Value    bool
	Label    string
	Disabled bool
}

// Switch is an on/off toggle.
type Switch struct {
	control[bool]
	cfg ToggleConfig
}

// NewSwitch builds a switch.
func NewSwitch(cfg ToggleConfig) *Switch {
	s := &Switch{cfg: cfg}
	s.init("switch", cfg.Label, cfg.Value, nil)
	return s
}

// RenderHTML renders a checkbox styled as a switch.
func (s *Switch) RenderHTML() (string, error) {
	return renderTemplate("switch", toggleView{s.cfg, s.id, s.Get()})
}

// Checkbox is a labelled check box.
type Checkbox struct {
	control[bool]
	cfg ToggleConfig
}

// NewCheckbox builds a checkbox.
func NewCheckbox(cfg ToggleConfig) *Checkbox {
	c := &Checkbox{cfg: cfg}
	c.init("checkbox", cfg.Label, cfg.Value, nil)
	return c
}

// RenderHTML renders a checkbox input.
func (c *Checkbox) RenderHTML() (string, error) {
	return renderTemplate("checkbox", toggleView{c.cfg, c.id, c.Get()})
}

type toggleView struct {
	ToggleConfig
	ID    string
	Value bool
}

// Text input kinds.
const (
	KindText     = "text"
	KindPassword = "password"
	KindEmail    = "email"
	KindURL      = "url"
)

// TextConfig configures a Text or a TextArea. Kind applies to Text only
// and defaults to KindText; Rows applies to TextArea only.
type TextConfig struct {
	Value       string
	Placeholder string
	Kind        string `validate:"omitempty,oneof=text password email url"`
	MaxLength   int    `validate:"gte=0"`
	Rows        int    `validate:"gte=0"`
	Label       string
	Disabled    bool
}

// Text is a single line input.
type Text struct {
	control[string]
	cfg TextConfig
}

// NewText validates cfg and builds a text input.
func NewText(cfg TextConfig) (*Text, error) {
	if cfg.Kind == "" {
		cfg.Kind = KindText
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	t := &Text{cfg: cfg}
	if err := t.validate(cfg.Value); err != nil {
		return nil, err
	}
	t.init("text", cfg.Label, cfg.Value, t.validate)
	return t, nil
}

func (t *Text) validate(v string) error {
	vr := validation.New()
	if t.cfg.MaxLength > 0 {
		vr.MaxLength("value", v, t.cfg.MaxLength)
	}
	switch t.cfg.Kind {
	case KindEmail:
		vr.Email("value", v)
	case KindURL:
		vr.URL("value", v)
	}
	return vr.Err()
}

// Kind returns the input kind.
func (t *Text) Kind() string { return t.cfg.Kind }

// RenderHTML renders a text input. Password values are never rendered.
func (t *Text) RenderHTML() (string, error) {
	v := t.Get()
	if t.cfg.Kind == KindPassword {
		v = ""
	}
	return renderTemplate("text", textView{t.cfg, t.id, v})
}

// TextArea is a multi-line input.
type TextArea struct {
	control[string]
	cfg TextConfig
}

// NewTextArea validates cfg and builds a text area.
func NewTextArea(cfg TextConfig) (*TextArea, error) {
	cfg.Kind = ""
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}
	a := &TextArea{cfg: cfg}
	if err := a.validate(cfg.Value); err != nil {
		return nil, err
	}
	a.init("text-area", cfg.Label, cfg.Value, a.validate)
	return a, nil
}

func (a *TextArea) validate(v string) error {
	if a.cfg.MaxLength == 0 {
		return nil
	}
	return validation.New().MaxLength("value", v, a.cfg.MaxLength).Err()
}

// RenderHTML renders a textarea element.
func (a *TextArea) RenderHTML() (string, error) {
	return renderTemplate("text_area", textView{a.cfg, a.id, a.Get()})
}

type textView struct {
	TextConfig
	ID    string
	Value string
}

// DateConfig configures a Date. Zero Start or Stop leaves that side open.
// A zero Value selects Start, or today when Start is zero.
type DateConfig struct {
	Start    time.Time
	Stop     time.Time
	Value    time.Time
	Label    string
	Disabled bool
}

// Date selects a calendar day.
type Date struct {
	control[time.Time]
	cfg DateConfig
}

// NewDate validates cfg and builds a date picker.
func NewDate(cfg DateConfig) (*Date, error) {
	cfg.Start, cfg.Stop = day(cfg.Start), day(cfg.Stop)
	if !cfg.Start.IsZero() && !cfg.Stop.IsZero() && cfg.Stop.Before(cfg.Start) {
		return nil, validation.New().Custom(false, "stop", "must not be before start").Err()
	}
	switch {
	case !cfg.Value.IsZero():
		cfg.Value = day(cfg.Value)
	case !cfg.Start.IsZero():
		cfg.Value = cfg.Start
	default:
		cfg.Value = day(time.Now())
	}
	d := &Date{cfg: cfg}
	if err := d.validate(cfg.Value); err != nil {
		return nil, err
	}
	d.init("date", cfg.Label, cfg.Value, d.validate)
	return d, nil
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (d *Date) validate(v time.Time) error {
	v = day(v)
	return validation.New().
		Custom(!v.IsZero(), "value", "is required").
		Custom(d.cfg.Start.IsZero() || !v.Before(d.cfg.Start), "value", "must not be before "+d.cfg.Start.Format(time.DateOnly)).
		Custom(d.cfg.Stop.IsZero() || !v.After(d.cfg.Stop), "value", "must not be after "+d.cfg.Stop.Format(time.DateOnly)).
		Err()
}

// Set stores the calendar day of v.
func (d *Date) Set(v time.Time) error { return d.control.Set(day(v)) }

// SetString parses an ISO date (2006-01-02) and stores it.
func (d *Date) SetString(s string) error {
	if err := validation.New().Required("value", s).Date("value", s, time.DateOnly).Err(); err != nil {
		return err
	}
	t, _ := time.Parse(time.DateOnly, s)
	return d.Set(t)
}

// RenderHTML renders a date input.
func (d *Date) RenderHTML() (string, error) {
	format := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.DateOnly)
	}
	return renderTemplate("date", struct {
		ID, Label, Value, Start, Stop string
		Disabled                      bool
	}{d.id, d.cfg.Label, format(d.Get()), format(d.cfg.Start), format(d.cfg.Stop), d.cfg.Disabled})
}
