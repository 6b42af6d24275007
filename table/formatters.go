package table

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func formatDecimal(p *message.Printer, x float64, decimals int, seps bool) string {
	opts := []number.Option{number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)}
	if !seps {
		opts = append(opts, number.NoSeparator())
	}
	return p.Sprint(number.Decimal(x, opts...))
}

func formatScientific(p *message.Printer, x float64, decimals int) string {
	if x == 0 || math.IsInf(x, 0) {
		return formatDecimal(p, x, decimals, false)
	}
	exp := int(math.Floor(math.Log10(math.Abs(x))))
	m := x / math.Pow(10, float64(exp))
	if pow := math.Pow(10, float64(decimals)); math.Abs(math.Round(m*pow)/pow) >= 10 {
		m /= 10
		exp++
	}
	mant := formatDecimal(p, m, decimals, false)
	if exp == 0 {
		return mant
	}
	return fmt.Sprintf(`%s × 10<sup style="font-size: 65%%;">%d</sup>`, mant, exp)
}

func formatBytes(x float64, binary bool) string {
	sign := ""
	if x < 0 {
		sign, x = "-", -x
	}
	n := uint64(math.Round(x))
	if binary {
		return sign + humanize.IBytes(n)
	}
	return sign + humanize.Bytes(n)
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman converts 0..3999. Zero is "N".
func roman(x float64) (string, bool) {
	n := int(math.Round(x))
	if n < 0 || n > 3999 {
		return "", false
	}
	if n == 0 {
		return "N", true
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String(), true
}

var dateStyles = map[string]string{
	"iso":                 "2006-01-02",
	"wday_month_day_year": "Monday, January 2, 2006",
	"wd_m_day_year":       "Mon, Jan 2, 2006",
	"wday_day_month_year": "Monday 2 January 2006",
	"month_day_year":      "January 2, 2006",
	"m_day_year":          "Jan 2, 2006",
	"day_m_year":          "2 Jan 2006",
	"day_month_year":      "2 January 2006",
	"day_month":           "2 January",
	"year":                "2006",
	"month":               "January",
	"day":                 "02",
	"year.mn.day":         "2006/01/02",
	"y.mn.day":            "06/01/02",
}

var timeStyles = map[string]string{
	"iso":       "15:04:05",
	"iso-short": "15:04",
	"h_m_s_p":   "3:04:05 PM",
	"h_m_p":     "3:04 PM",
	"h_p":       "3 PM",
}

// DateStyles lists the style names accepted by FmtDate.
func DateStyles() []string { return sortedKeys(dateStyles) }

// TimeStyles lists the style names accepted by FmtTime.
func TimeStyles() []string { return sortedKeys(timeStyles) }

var inputLayouts = []string{time.RFC3339, time.DateTime, time.DateOnly, "2006-01-02T15:04:05", time.TimeOnly, "15:04"}

func temporal(layout string) formatter {
	return func(v any, _ formatEnv) (string, bool) {
		var ts time.Time
		switch x := v.(type) {
		case time.Time:
			ts = x
		case string:
			parsed := false
			for _, l := range inputLayouts {
				if p, err := time.Parse(l, x); err == nil {
					ts, parsed = p, true
					break
				}
			}
			if !parsed {
				return "", false
			}
		default:
			return "", false
		}
		return html.EscapeString(ts.Format(layout)), true
	}
}

var iconSymbols = map[string]string{
	"star":         "★",
	"check":        "✓",
	"circle-check": "✔",
	"xmark":        "✗",
	"circle-xmark": "✘",
	"heart":        "♥",
	"circle":       "●",
	"square":       "■",
	"arrow-up":     "↑",
	"arrow-down":   "↓",
	"arrow-left":   "←",
	"arrow-right":  "→",
	"plus":         "+",
	"minus":        "−",
	"sun":          "☀",
	"cloud":        "☁",
	"umbrella":     "☂",
	"snowflake":    "❄",
	"bolt":         "⚡",
	"flag":         "⚑",
	"envelope":     "✉",
	"phone":        "☎",
	"clock":        "◷",
	"gear":         "⚙",
	"music":        "♪",
	"warning":      "⚠",
}

func icons(s, height, fill string) string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		sym, ok := iconSymbols[name]
		if !ok {
			sym = name
		}
		style := "font-size:" + height + ";"
		if fill != "" {
			style += "color:" + fill + ";"
		}
		out = append(out, fmt.Sprintf(`<span class="gt_icon" role="img" aria-label="%s" style="%s">%s</span>`,
			html.EscapeString(name), style, html.EscapeString(sym)))
	}
	return strings.Join(out, " ")
}

// flags converts comma separated alpha-2 codes to regional indicator pairs.
func flags(s, height string) (string, bool) {
	var out []string
	for _, code := range strings.Split(s, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
			return "", false
		}
		flag := string([]rune{0x1F1E6 + rune(code[0]-'A'), 0x1F1E6 + rune(code[1]-'A')})
		out = append(out, fmt.Sprintf(`<span class="gt_flag" title="%s" style="font-size:%s;">%s</span>`,
			code, height, flag))
	}
	return strings.Join(out, " "), true
}

var unitSymbols = strings.NewReplacer("degC", "°C", "degF", "°F", "ohm", "Ω")

func isUnitRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.'
}

// units renders "m^2", "x_0" and "m^{-1}" with superscripts and subscripts.
func units(s string) string {
	rs := []rune(unitSymbols.Replace(s))
	var b strings.Builder
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if (r != '^' && r != '_') || i+1 == len(rs) {
			b.WriteString(html.EscapeString(string(r)))
			continue
		}
		j := i + 1
		var tok []rune
		if rs[j] == '{' {
			end := j + 1
			for end < len(rs) && rs[end] != '}' {
				end++
			}
			tok, j = rs[j+1:min(end, len(rs))], end+1
		} else {
			for j < len(rs) && isUnitRune(rs[j]) {
				j++
			}
			tok = rs[i+1 : j]
		}
		if len(tok) == 0 {
			b.WriteString(html.EscapeString(string(r)))
			continue
		}
		tag := "sup"
		if r == '_' {
			tag = "sub"
		}
		fmt.Fprintf(&b, "<%s>%s</%s>", tag, html.EscapeString(string(tok)), tag)
		i = j - 1
	}
	return b.String()
}

// seriesOf extracts plot values from number slices or delimited strings.
func seriesOf(v any) ([]float64, bool) {
	var out []float64
	switch x := v.(type) {
	case []float64:
		out = x
	case []int:
		for _, n := range x {
			out = append(out, float64(n))
		}
	case []any:
		for _, e := range x {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
	case string:
		for _, f := range strings.FieldsFunc(x, func(r rune) bool { return r == ' ' || r == ',' }) {
			n, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, false
			}
			out = append(out, n)
		}
	default:
		return nil, false
	}
	return out, len(out) > 0
}

const (
	plotWidth  = 400.0
	plotHeight = 100.0
	plotPad    = 10.0
)

func nanoplot(vals []float64, plot, height, color string) string {
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	y := func(v float64) float64 {
		if hi == lo {
			return plotHeight / 2
		}
		return plotHeight - plotPad - (v-lo)/(hi-lo)*(plotHeight-2*plotPad)
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg role="img" viewBox="0 0 %g %g" style="height:%s;overflow:visible;">`, plotWidth, plotHeight, height)
	switch plot {
	case "bar":
		w := plotWidth / float64(len(vals))
		base := plotHeight - plotPad
		if lo < 0 {
			base = y(math.Min(0, hi))
		}
		for i, v := range vals {
			top := y(v)
			if hi == lo {
				top = plotPad
			}
			fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
				float64(i)*w+w*0.1, math.Min(top, base), w*0.8, math.Abs(base-top), color)
		}
	default:
		step := 0.0
		if len(vals) > 1 {
			step = (plotWidth - 2*plotPad) / float64(len(vals)-1)
		}
		pts := make([]string, len(vals))
		for i, v := range vals {
			pts[i] = fmt.Sprintf("%.1f,%.1f", plotPad+float64(i)*step, y(v))
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="4"/>`, strings.Join(pts, " "), color)
		for i, v := range vals {
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="6" fill="%s"/>`, plotPad+float64(i)*step, y(v), color)
		}
	}
	b.WriteString("</svg>")
	return b.String()
}
