package table

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/kbukum/tablekit/errors"
)

// palette holds the shades of one stylize colour, darkest first.
type palette struct {
	dark, mid, light, lighter string
}

var palettes = map[string]palette{
	"blue":  {"#004D80", "#0076BA", "#89D3FE", "#D5EFFF"},
	"cyan":  {"#01837B", "#00A69D", "#A5FEF2", "#DEF7F5"},
	"pink":  {"#A0044D", "#D5075F", "#FFC6E3", "#FFE8F4"},
	"green": {"#016D1F", "#008E24", "#B1FFB3", "#E2FFE2"},
	"red":   {"#A10000", "#E00000", "#FFB2B2", "#FFE5E5"},
	"gray":  {"#3F3F3F", "#5F5F5F", "#D3D3D3", "#F2F2F2"},
}

// StylizeColors lists the colours accepted by OptStylize.
func StylizeColors() []string {
	return []string{"blue", "cyan", "pink", "green", "red", "gray"}
}

// Number of predefined stylize styles.
const StylizeStyles = 6

// OptStylize applies one of six predefined styles in one of six colours.
// striping adds row striping in a light shade of the colour.
func (t *Table) OptStylize(style int, color string, striping bool) *Table {
	return t.apply(OpOptStylize, func(c *Table) error {
		if style < 1 || style > StylizeStyles {
			return errors.InvalidInput("style", fmt.Sprintf("style %d is not between 1 and %d", style, StylizeStyles))
		}
		p, ok := palettes[color]
		if !ok {
			return errors.InvalidInput("color", fmt.Sprintf("%q is not one of %v", color, StylizeColors()))
		}
		return c.setOpts(stylizeOptions(style, p, striping))
	})
}

func stylizeOptions(style int, p palette, striping bool) map[string]string {
	kv := map[string]string{
		"table_border_top_color":            p.dark,
		"table_border_bottom_color":         p.dark,
		"column_labels_border_top_color":    p.dark,
		"column_labels_border_bottom_color": p.dark,
		"table_body_border_bottom_color":    p.dark,
		"row_striping_include_table_body":   strconv.FormatBool(striping),
		"row_striping_background_color":     p.lighter,
	}
	light := func(bg string) (string, string) { return bg, "#333333" }
	dark := func(bg string) (string, string) { return bg, "#FFFFFF" }
	var heading, headingFG, labels, labelsFG string
	switch style {
	case 1:
		heading, headingFG = "transparent", "inherit"
		labels, labelsFG = dark(p.mid)
	case 2:
		heading, headingFG = dark(p.dark)
		labels, labelsFG = dark(p.mid)
	case 3:
		heading, headingFG = "transparent", "inherit"
		labels, labelsFG = light(p.light)
		kv["table_body_hlines_color"] = p.light
	case 4:
		heading, headingFG = dark(p.mid)
		labels, labelsFG = light(p.light)
		kv["stub_background_color"] = p.lighter
		kv["table_border_left_style"] = "solid"
		kv["table_border_right_style"] = "solid"
		kv["table_border_left_color"] = p.dark
		kv["table_border_right_color"] = p.dark
	case 5:
		heading, headingFG = light(p.lighter)
		labels, labelsFG = dark(p.dark)
		kv["row_striping_background_color"] = p.light
	case 6:
		heading, headingFG = dark(p.dark)
		labels, labelsFG = dark(p.dark)
		kv["row_group_background_color"] = p.light
		kv["row_striping_background_color"] = p.light
		kv["table_body_hlines_color"] = p.mid
	}
	kv["heading_background_color"] = heading
	kv["heading_font_color"] = headingFG
	kv["column_labels_background_color"] = labels
	kv["column_labels_font_color"] = labelsFG
	return kv
}

// IsStylizeColor reports whether c names a stylize colour.
func IsStylizeColor(c string) bool {
	return slices.Contains(StylizeColors(), c)
}
