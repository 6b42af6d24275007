package table

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/kbukum/tablekit/errors"
)

const defaultFonts = `-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, 'Helvetica Neue', 'Fira Sans', 'Droid Sans', Arial, sans-serif`

// defaultOptions are the styling options every table starts from.
// TabOptions accepts exactly these keys.
var defaultOptions = map[string]string{
	"container_width":                   "auto",
	"container_overflow_x":              "auto",
	"table_width":                       "auto",
	"table_layout":                      "auto",
	"table_font_names":                  defaultFonts,
	"table_font_size":                   "16px",
	"table_font_weight":                 "normal",
	"table_font_color":                  "#333333",
	"table_background_color":            "#FFFFFF",
	"table_border_top_style":            "solid",
	"table_border_top_width":            "2px",
	"table_border_top_color":            "#A8A8A8",
	"table_border_bottom_style":         "solid",
	"table_border_bottom_width":         "2px",
	"table_border_bottom_color":         "#A8A8A8",
	"table_border_left_style":           "none",
	"table_border_left_width":           "2px",
	"table_border_left_color":           "#D3D3D3",
	"table_border_right_style":          "none",
	"table_border_right_width":          "2px",
	"table_border_right_color":          "#D3D3D3",
	"heading_align":                     "center",
	"heading_background_color":          "transparent",
	"heading_font_color":                "inherit",
	"heading_title_font_size":           "125%",
	"heading_subtitle_font_size":        "85%",
	"heading_padding":                   "4px",
	"heading_padding_horizontal":        "5px",
	"heading_border_bottom_color":       "#D3D3D3",
	"column_labels_background_color":    "transparent",
	"column_labels_font_color":          "inherit",
	"column_labels_font_size":           "100%",
	"column_labels_font_weight":         "normal",
	"column_labels_text_transform":      "inherit",
	"column_labels_padding":             "5px",
	"column_labels_padding_horizontal":  "5px",
	"column_labels_border_top_color":    "#D3D3D3",
	"column_labels_border_bottom_color": "#D3D3D3",
	"row_group_background_color":        "transparent",
	"row_group_font_weight":             "initial",
	"row_group_text_transform":          "inherit",
	"row_group_border_top_color":        "#D3D3D3",
	"row_group_border_bottom_color":     "#D3D3D3",
	"table_body_hlines_color":           "#D3D3D3",
	"table_body_border_top_color":       "#D3D3D3",
	"table_body_border_bottom_color":    "#D3D3D3",
	"data_row_padding":                  "8px",
	"data_row_padding_horizontal":       "5px",
	"stub_background_color":             "transparent",
	"stub_font_weight":                  "initial",
	"stub_text_transform":               "inherit",
	"stub_border_color":                 "#D3D3D3",
	"source_notes_background_color":     "transparent",
	"source_notes_font_size":            "90%",
	"source_notes_padding":              "4px",
	"source_notes_padding_horizontal":   "5px",
	"row_striping_background_color":     "rgba(128, 128, 128, 0.05)",
	"row_striping_include_table_body":   "false",
	"footnotes_marks":                   "numbers",
}

// OptionNames returns the keys accepted by TabOptions.
func OptionNames() []string { return sortedKeys(defaultOptions) }

// Opt returns the effective value of a styling option.
func (t *Table) Opt(name string) string {
	if v, ok := t.opts[name]; ok {
		return v
	}
	return defaultOptions[name]
}

// options returns every option with overrides applied.
func (t *Table) options() map[string]string {
	out := maps.Clone(defaultOptions)
	maps.Copy(out, t.opts)
	return out
}

func (t *Table) setOpts(kv map[string]string) error {
	for _, k := range sortedKeys(kv) {
		if _, ok := defaultOptions[k]; !ok {
			return errors.InvalidInput("options", fmt.Sprintf("unknown option %q", k))
		}
		if strings.ContainsAny(kv[k], ";{}<>") {
			return errors.InvalidInput("options", fmt.Sprintf("invalid value for %q", k))
		}
	}
	out := make(map[string]string, len(t.opts)+len(kv))
	maps.Copy(out, t.opts)
	maps.Copy(out, kv)
	t.opts = out
	return nil
}

// TabOptions overrides styling options by name. See OptionNames.
func (t *Table) TabOptions(opts map[string]string) *Table {
	return t.apply(OpTabOptions, func(c *Table) error {
		return c.setOpts(opts)
	})
}

// OptAlignTableHeader aligns the title and subtitle.
func (t *Table) OptAlignTableHeader(align string) *Table {
	return t.apply(OpOptAlignTableHeader, func(c *Table) error {
		if !slices.Contains(alignments, align) {
			return errors.InvalidInput("align", fmt.Sprintf("%q is not one of %v", align, alignments))
		}
		return c.setOpts(map[string]string{"heading_align": align})
	})
}

// OptAllCaps renders column labels, stub and row group labels in small
// bold capitals. Passing false restores the defaults.
func (t *Table) OptAllCaps(allCaps bool) *Table {
	return t.apply(OpOptAllCaps, func(c *Table) error {
		keys := []string{
			"column_labels_font_size", "column_labels_font_weight", "column_labels_text_transform",
			"stub_font_weight", "stub_text_transform", "row_group_font_weight", "row_group_text_transform",
		}
		kv := make(map[string]string, len(keys))
		for _, k := range keys {
			kv[k] = defaultOptions[k]
		}
		if allCaps {
			kv["column_labels_font_size"] = "80%"
			kv["column_labels_font_weight"] = "bolder"
			kv["column_labels_text_transform"] = "uppercase"
			kv["stub_font_weight"] = "bolder"
			kv["stub_text_transform"] = "uppercase"
			kv["row_group_font_weight"] = "bolder"
			kv["row_group_text_transform"] = "uppercase"
		}
		return c.setOpts(kv)
	})
}

var footnoteSets = map[string][]string{
	"numbers":  {"1", "2", "3", "4", "5", "6", "7", "8", "9"},
	"letters":  {"a", "b", "c", "d", "e", "f", "g", "h", "i"},
	"LETTERS":  {"A", "B", "C", "D", "E", "F", "G", "H", "I"},
	"standard": {"*", "†", "‡", "§"},
	"extended": {"*", "†", "‡", "§", "‖", "¶"},
}

// OptFootnoteMarks selects footnote marks: a set name ("numbers",
// "letters", "LETTERS", "standard", "extended") or an explicit list.
func (t *Table) OptFootnoteMarks(marks ...string) *Table {
	return t.apply(OpOptFootnoteMarks, func(c *Table) error {
		switch {
		case len(marks) == 0:
			return errors.InvalidInput("marks", "at least one mark or a set name is required")
		case len(marks) == 1:
			if _, ok := footnoteSets[marks[0]]; ok {
				return c.setOpts(map[string]string{"footnotes_marks": marks[0]})
			}
		}
		if slices.ContainsFunc(marks, func(m string) bool { return m == "" || strings.Contains(m, ",") }) {
			return errors.InvalidInput("marks", "marks must be non-empty and contain no commas")
		}
		return c.setOpts(map[string]string{"footnotes_marks": strings.Join(marks, ",")})
	})
}

// FootnoteMarks returns the marks selected by OptFootnoteMarks.
func (t *Table) FootnoteMarks() []string {
	v := t.Opt("footnotes_marks")
	if set, ok := footnoteSets[v]; ok {
		return slices.Clone(set)
	}
	return strings.Split(v, ",")
}

// OptRowStriping turns row striping on or off.
func (t *Table) OptRowStriping(on bool) *Table {
	return t.apply(OpOptRowStriping, func(c *Table) error {
		return c.setOpts(map[string]string{"row_striping_include_table_body": strconv.FormatBool(on)})
	})
}

// OptVerticalPadding scales vertical cell padding by a factor in [0, 3].
func (t *Table) OptVerticalPadding(scale float64) *Table {
	return t.apply(OpOptVerticalPadding, func(c *Table) error {
		if scale < 0 || scale > 3 {
			return errors.InvalidInput("scale", "scale must be between 0 and 3")
		}
		return c.setOpts(map[string]string{
			"heading_padding":       px(4 * scale),
			"column_labels_padding": px(5 * scale),
			"data_row_padding":      px(8 * scale),
			"source_notes_padding":  px(4 * scale),
		})
	})
}

// OptHorizontalPadding scales horizontal cell padding by a factor in [0, 3].
func (t *Table) OptHorizontalPadding(scale float64) *Table {
	return t.apply(OpOptHorizontalPadding, func(c *Table) error {
		if scale < 0 || scale > 3 {
			return errors.InvalidInput("scale", "scale must be between 0 and 3")
		}
		return c.setOpts(map[string]string{
			"heading_padding_horizontal":       px(5 * scale),
			"column_labels_padding_horizontal": px(5 * scale),
			"data_row_padding_horizontal":      px(5 * scale),
			"source_notes_padding_horizontal":  px(5 * scale),
		})
	})
}

var borderStyles = []string{"solid", "dashed", "dotted", "double", "none"}

// OptTableOutline draws a border around the whole table.
func (t *Table) OptTableOutline(style, width, color string) *Table {
	return t.apply(OpOptTableOutline, func(c *Table) error {
		if !slices.Contains(borderStyles, style) {
			return errors.InvalidInput("style", fmt.Sprintf("%q is not one of %v", style, borderStyles))
		}
		if !cssLength.MatchString(width) {
			return errors.InvalidInput("width", fmt.Sprintf("%q is not a CSS length", width))
		}
		if _, err := parseColor(color); err != nil {
			return err
		}
		kv := map[string]string{}
		for _, side := range []string{"top", "bottom", "left", "right"} {
			kv["table_border_"+side+"_style"] = style
			kv["table_border_"+side+"_width"] = width
			kv["table_border_"+side+"_color"] = color
		}
		return c.setOpts(kv)
	})
}

// OptTableFont sets the font stack and weight. Names containing spaces are
// quoted.
func (t *Table) OptTableFont(fonts []string, weight string) *Table {
	return t.apply(OpOptTableFont, func(c *Table) error {
		if len(fonts) == 0 {
			return errors.InvalidInput("font", "at least one font is required")
		}
		quoted := make([]string, len(fonts))
		for i, f := range fonts {
			if strings.ContainsAny(f, `'"`) {
				return errors.InvalidInput("font", fmt.Sprintf("font name %q must not contain quotes", f))
			}
			quoted[i] = f
			if strings.Contains(f, " ") {
				quoted[i] = "'" + f + "'"
			}
		}
		kv := map[string]string{"table_font_names": strings.Join(quoted, ", ")}
		if weight != "" {
			kv["table_font_weight"] = weight
		}
		return c.setOpts(kv)
	})
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
