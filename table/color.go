package table

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/kbukum/tablekit/errors"
)

type rgb struct{ r, g, b float64 }

func (c rgb) hex() string {
	return fmt.Sprintf("#%02X%02X%02X", uint8(math.Round(c.r)), uint8(math.Round(c.g)), uint8(math.Round(c.b)))
}

// luminance is the WCAG relative luminance.
func (c rgb) luminance() float64 {
	lin := func(v float64) float64 {
		v /= 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.r) + 0.7152*lin(c.g) + 0.0722*lin(c.b)
}

// textColor picks black or white, whichever contrasts more with c.
func (c rgb) textColor() string {
	l := c.luminance()
	if (1.05)/(l+0.05) > (l+0.05)/0.05 {
		return "#FFFFFF"
	}
	return "#000000"
}

var namedColors = map[string]string{
	"black": "#000000", "white": "#FFFFFF", "red": "#FF0000", "green": "#008000",
	"blue": "#0000FF", "yellow": "#FFFF00", "orange": "#FFA500", "purple": "#800080",
	"pink": "#FFC0CB", "cyan": "#00FFFF", "magenta": "#FF00FF", "gray": "#808080",
	"grey": "#808080", "lightgray": "#D3D3D3", "lightgrey": "#D3D3D3",
	"darkgray": "#A9A9A9", "darkgrey": "#A9A9A9", "lightblue": "#ADD8E6",
	"steelblue": "#4682B4", "navy": "#000080", "teal": "#008080",
	"papayawhip": "#FFEFD5", "mediumaquamarine": "#66CDAA", "gold": "#FFD700",
	"salmon": "#FA8072", "tomato": "#FF6347", "lightgreen": "#90EE90",
	"darkgreen": "#006400", "brown": "#A52A2A", "beige": "#F5F5DC",
}

// parseColor accepts #RGB, #RRGGBB and common CSS colour names.
func parseColor(s string) (rgb, error) {
	in := s
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "#") {
		h := s[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) == 6 {
			if n, err := strconv.ParseUint(h, 16, 32); err == nil {
				return rgb{float64(n >> 16 & 0xFF), float64(n >> 8 & 0xFF), float64(n & 0xFF)}, nil
			}
		}
	}
	return rgb{}, errors.InvalidInput("color", fmt.Sprintf("%q is not a colour", in))
}

func lerp(a, b rgb, f float64) rgb {
	return rgb{a.r + (b.r-a.r)*f, a.g + (b.g-a.g)*f, a.b + (b.b-a.b)*f}
}

// interpolate maps f in [0, 1] onto the palette.
func interpolate(pal []rgb, f float64) rgb {
	if len(pal) == 1 {
		return pal[0]
	}
	f = math.Max(0, math.Min(1, f))
	pos := f * float64(len(pal)-1)
	i := int(math.Floor(pos))
	if i >= len(pal)-1 {
		return pal[len(pal)-1]
	}
	return lerp(pal[i], pal[i+1], pos-float64(i))
}

// ColorScale configures DataColor.
type ColorScale struct {
	Rows []int
	// Palette is interpolated from low to high; empty means a viridis ramp.
	Palette []string
	// Domain fixes the [low, high] range of numeric values; empty means the
	// range of the coloured cells.
	Domain []float64
	// NAColor fills missing values; empty means gray.
	NAColor string
	// KeepTextColor disables automatic black or white text for contrast.
	KeepTextColor bool
}

var defaultPalette = []string{"#440154", "#21908C", "#FDE725"}

type colorRule struct {
	cells    cellSet
	palette  []rgb
	domain   []float64
	na       rgb
	autoText bool
}

// DataColor fills cell backgrounds from their values. Numeric columns are
// scaled linearly; other values are treated as categories.
func (t *Table) DataColor(columns []string, o ColorScale) *Table {
	return t.apply(OpDataColor, func(c *Table) error {
		cells, err := c.cells(columns, o.Rows)
		if err != nil {
			return err
		}
		names := o.Palette
		if len(names) == 0 {
			names = defaultPalette
		}
		rule := colorRule{cells: cells, autoText: !o.KeepTextColor}
		for _, n := range names {
			col, err := parseColor(n)
			if err != nil {
				return err
			}
			rule.palette = append(rule.palette, col)
		}
		if rule.na, err = parseColor(orDefault(o.NAColor, "#808080")); err != nil {
			return err
		}
		switch len(o.Domain) {
		case 0:
		case 2:
			if o.Domain[0] >= o.Domain[1] {
				return errors.InvalidInput("domain", "domain low must be below high")
			}
			rule.domain = []float64{o.Domain[0], o.Domain[1]}
		default:
			return errors.InvalidInput("domain", "domain needs exactly two values")
		}
		c.colors = appendTo(c.colors, rule)
		return nil
	})
}

type cellKey struct {
	row int
	col string
}

// colorStyles resolves every DataColor rule to inline styles per cell.
// Later rules override earlier ones.
func (t *Table) colorStyles() map[cellKey]string {
	out := map[cellKey]string{}
	for _, rule := range t.colors {
		var keys []cellKey
		numericOnly := true
		lo, hi := math.Inf(1), math.Inf(-1)
		var cats []string
		for _, col := range t.order {
			if !rule.cells.cols[col] {
				continue
			}
			for row := range t.frame.NumRows() {
				if !rule.cells.has(row, col) {
					continue
				}
				keys = append(keys, cellKey{row, col})
				v := t.frame.Value(row, col)
				if isMissing(v) {
					continue
				}
				if s := plainValue(v); !slices.Contains(cats, s) {
					cats = append(cats, s)
				}
				if x, ok := toFloat(v); ok {
					lo, hi = math.Min(lo, x), math.Max(hi, x)
					continue
				}
				numericOnly = false
			}
		}
		if rule.domain != nil {
			lo, hi = rule.domain[0], rule.domain[1]
		}
		for _, k := range keys {
			v := t.frame.Value(k.row, k.col)
			var fill rgb
			switch x, isNum := toFloat(v); {
			case isMissing(v):
				fill = rule.na
			case numericOnly && isNum:
				f := 0.5
				if hi > lo {
					f = (x - lo) / (hi - lo)
				}
				fill = interpolate(rule.palette, f)
			default:
				f := 0.0
				if idx := slices.Index(cats, plainValue(v)); len(cats) > 1 && idx >= 0 {
					f = float64(idx) / float64(len(cats)-1)
				}
				fill = interpolate(rule.palette, f)
			}
			css := "background-color: " + fill.hex() + ";"
			if rule.autoText {
				css += " color: " + fill.textColor() + ";"
			}
			out[k] = css
		}
	}
	return out
}
