package table

import (
	"fmt"
	"strings"

	"github.com/kbukum/tablekit/render"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`, "%", `\%`, "$", `\$`, "#", `\#`, "_", `\_`,
	"{", `\{`, "}", `\}`, "~", `\textasciitilde{}`, "^", `\textasciicircum{}`,
)

func latexEscape(s string) string { return latexEscaper.Replace(s) }

// Latex renders the table as a LaTeX table using booktabs rules.
func (t *Table) Latex() (string, error) {
	if t.err != nil {
		return "", t.err
	}
	cols := t.VisibleColumns()
	if t.rowname != "" {
		cols = append([]string{t.rowname}, cols...)
	}
	env := t.env()

	var b strings.Builder
	b.WriteString("\\begin{table}[!t]\n")
	if !t.title.IsZero() {
		b.WriteString("\\caption*{\n")
		fmt.Fprintf(&b, "{\\large %s}", latexEscape(t.title.String()))
		if !t.subtitle.IsZero() {
			fmt.Fprintf(&b, " \\\\\n{\\small %s}", latexEscape(t.subtitle.String()))
		}
		b.WriteString("\n}\n")
	}
	colspec := make([]string, len(cols))
	for i, c := range cols {
		colspec[i] = t.Alignment(c)[:1]
	}
	fmt.Fprintf(&b, "\\begin{tabular*}{\\linewidth}{@{\\extracolsep{\\fill}}%s}\n\\toprule\n", strings.Join(colspec, ""))

	for _, level := range t.spannerLevelsTopDown() {
		var cells, rules []string
		for i := 0; i < len(cols); {
			s, ok := level[cols[i]]
			j := i + 1
			for ok && j < len(cols) {
				if n, in := level[cols[j]]; !in || n.ID != s.ID {
					break
				}
				j++
			}
			if ok {
				cells = append(cells, fmt.Sprintf("\\multicolumn{%d}{c}{%s}", j-i, latexEscape(s.Label.String())))
				rules = append(rules, fmt.Sprintf("\\cmidrule(lr){%d-%d}", i+1, j))
			} else {
				cells = append(cells, "")
			}
			i = j
		}
		fmt.Fprintf(&b, "%s \\\\ \n%s\n", strings.Join(cells, " & "), strings.Join(rules, ""))
	}

	labels := make([]string, len(cols))
	for i, c := range cols {
		if c == t.rowname {
			labels[i] = latexEscape(t.stubhead.String())
			continue
		}
		labels[i] = latexEscape(t.Label(c).String())
	}
	fmt.Fprintf(&b, "%s \\\\ \n\\midrule\\addlinespace[2.5pt]\n", strings.Join(labels, " & "))

	groupLabels, groups := t.rowGroups()
	for gi, rows := range groups {
		if t.groupname != "" {
			fmt.Fprintf(&b, "\\multicolumn{%d}{l}{%s} \\\\[2.5pt]\n\\midrule\\addlinespace[2.5pt]\n",
				len(cols), latexEscape(groupLabels[gi]))
		}
		for _, r := range rows {
			cells := make([]string, len(cols))
			for i, c := range cols {
				s, err := t.cellText(r, c, env)
				if err != nil {
					return "", err
				}
				cells[i] = latexEscape(s)
			}
			fmt.Fprintf(&b, "%s \\\\ \n", strings.Join(cells, " & "))
		}
	}
	b.WriteString("\\bottomrule\n\\end{tabular*}\n")
	if len(t.notes) > 0 {
		b.WriteString("\\begin{minipage}{\\linewidth}\n")
		for _, n := range t.notes {
			fmt.Fprintf(&b, "%s\\\\\n", latexEscape(n.String()))
		}
		b.WriteString("\\end{minipage}\n")
	}
	b.WriteString("\\end{table}\n")
	return b.String(), nil
}

// spannerLevelsTopDown maps columns to their spanner, one map per level,
// topmost level first.
func (t *Table) spannerLevelsTopDown() []map[string]Spanner {
	levels := t.spannerLevels()
	out := make([]map[string]Spanner, 0, len(levels))
	for i := len(levels) - 1; i >= 0; i-- {
		m := map[string]Spanner{}
		for _, s := range levels[i] {
			for _, c := range s.Columns {
				m[c] = s
			}
		}
		out = append(out, m)
	}
	return out
}

// cellText is the plain text of a formatted cell.
func (t *Table) cellText(row int, col string, env formatEnv) (string, error) {
	switch v := t.frame.Value(row, col); v.(type) {
	case Text, string:
	default:
		if render.IsRenderable(v) {
			return render.ValueString(v), nil
		}
	}
	h, err := t.cellHTML(row, col, env)
	if err != nil {
		return "", err
	}
	return stripTags(h), nil
}
