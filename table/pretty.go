package table

import (
	"strings"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// AsText renders the table as a fixed-width terminal table.
func (t *Table) AsText() (string, error) {
	w, err := t.prettyWriter()
	if err != nil {
		return "", err
	}
	w.SetStyle(prettytable.StyleLight)
	return w.Render(), nil
}

// AsMarkdown renders the table as a GitHub-flavoured Markdown table.
func (t *Table) AsMarkdown() (string, error) {
	w, err := t.prettyWriter()
	if err != nil {
		return "", err
	}
	return w.RenderMarkdown(), nil
}

func (t *Table) prettyWriter() (prettytable.Writer, error) {
	if t.err != nil {
		return nil, t.err
	}
	cols := t.VisibleColumns()
	if t.rowname != "" {
		cols = append([]string{t.rowname}, cols...)
	}
	w := prettytable.NewWriter()

	if !t.title.IsZero() {
		title := t.title.String()
		if !t.subtitle.IsZero() {
			title += "\n" + t.subtitle.String()
		}
		w.SetTitle("%s", title)
	}

	for _, level := range t.spannerLevelsTopDown() {
		row := make(prettytable.Row, len(cols))
		for i, c := range cols {
			if s, ok := level[c]; ok {
				row[i] = s.Label.String()
			}
		}
		w.AppendHeader(row, prettytable.RowConfig{AutoMerge: true})
	}
	header := make(prettytable.Row, len(cols))
	configs := make([]prettytable.ColumnConfig, len(cols))
	for i, c := range cols {
		if c == t.rowname {
			header[i] = t.stubhead.String()
		} else {
			header[i] = t.Label(c).String()
		}
		configs[i] = prettytable.ColumnConfig{Number: i + 1, Align: textAlign(t.Alignment(c))}
	}
	w.AppendHeader(header)
	w.SetColumnConfigs(configs)

	env := t.env()
	labels, groups := t.rowGroups()
	for gi, rows := range groups {
		if t.groupname != "" {
			w.AppendSeparator()
			group := make(prettytable.Row, len(cols))
			for i := range group {
				group[i] = labels[gi]
			}
			w.AppendRow(group, prettytable.RowConfig{AutoMerge: true})
			w.AppendSeparator()
		}
		for _, r := range rows {
			row := make(prettytable.Row, len(cols))
			for i, c := range cols {
				s, err := t.cellText(r, c, env)
				if err != nil {
					return nil, err
				}
				row[i] = s
			}
			w.AppendRow(row)
		}
	}

	if len(t.notes) > 0 {
		notes := make([]string, len(t.notes))
		for i, n := range t.notes {
			notes[i] = n.String()
		}
		w.SetCaption("%s", strings.Join(notes, "\n"))
	}
	return w, nil
}

func textAlign(a string) text.Align {
	switch a {
	case "left":
		return text.AlignLeft
	case "center":
		return text.AlignCenter
	case "right":
		return text.AlignRight
	}
	return text.AlignDefault
}
