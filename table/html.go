package table

import (
	"bytes"
	"embed"
	"html"
	"html/template"
	"slices"
	"strings"
	ttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))
	cssTemplate   = ttemplate.Must(ttemplate.ParseFS(templateFS, "templates/table.css.tmpl"))
)

type tableView struct {
	ID       string
	Locale   string
	CSS      template.CSS
	Width    template.CSS
	Overflow template.CSS
	NumCols  int
	Widths   []template.CSS

	HasTitle      bool
	HasSubtitle   bool
	Title         template.HTML
	Subtitle      template.HTML
	TitleStyle    template.CSS
	SubtitleStyle template.CSS

	SpannerRows [][]spannerCell
	HasStub     bool
	Stubhead    template.HTML
	Labels      []labelCell
	Groups      []groupView
	Notes       []template.HTML
	NotesStyle  template.CSS
}

type spannerCell struct {
	ID    string
	HTML  template.HTML
	Span  int
	Empty bool
}

type labelCell struct {
	ID    string
	HTML  template.HTML
	Align string
	Style template.CSS
}

type groupView struct {
	ID       string
	Label    template.HTML
	HasLabel bool
	Rows     []rowView
}

type rowView struct {
	HasStub bool
	Stub    bodyCell
	Cells   []bodyCell
	Striped bool
}

type bodyCell struct {
	HTML    template.HTML
	Align   string
	Style   template.CSS
	Striped bool
}

// RenderHTML renders the table as a self-contained HTML fragment with
// scoped CSS.
func (t *Table) RenderHTML() (string, error) {
	if t.err != nil {
		return "", t.err
	}
	view, err := t.view()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, "table", view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Page renders the table as a complete HTML document.
func (t *Table) Page() (string, error) {
	body, err := t.RenderHTML()
	if err != nil {
		return "", err
	}
	title := t.title.String()
	if title == "" {
		title = "tablekit"
	}
	return Document(title, t.locale, template.HTML(body))
}

// Document wraps trusted body markup in an HTML page.
func Document(title, lang string, body template.HTML) (string, error) {
	var buf bytes.Buffer
	err := htmlTemplates.ExecuteTemplate(&buf, "page", struct {
		Title, Lang string
		Body        template.HTML
	}{title, orDefault(lang, DefaultLocale), body})
	return buf.String(), err
}

func (t *Table) css() (string, error) {
	var buf bytes.Buffer
	err := cssTemplate.Execute(&buf, struct {
		ID string
		O  map[string]string
	}{t.id, t.options()})
	return buf.String(), err
}

func (t *Table) view() (*tableView, error) {
	css, err := t.css()
	if err != nil {
		return nil, err
	}
	cols := t.VisibleColumns()
	v := &tableView{
		ID:       t.id,
		Locale:   t.locale,
		CSS:      template.CSS(css),
		Width:    template.CSS(t.Opt("container_width")),
		Overflow: template.CSS(t.Opt("container_overflow_x")),
		NumCols:  len(cols),
		HasStub:  t.rowname != "",
	}
	if v.HasStub {
		v.NumCols++
		if v.Stubhead, err = textHTML(t.stubhead); err != nil {
			return nil, err
		}
	}

	if slices.ContainsFunc(cols, func(c string) bool { return t.widths[c] != "" }) {
		if v.HasStub {
			v.Widths = append(v.Widths, template.CSS(widthCSS(t.widths[t.rowname])))
		}
		for _, c := range cols {
			v.Widths = append(v.Widths, template.CSS(widthCSS(t.widths[c])))
		}
	}

	if !t.title.IsZero() {
		v.HasTitle = true
		if v.Title, err = textHTML(t.title); err != nil {
			return nil, err
		}
		v.TitleStyle = template.CSS(t.partStyle(PartTitle))
		if !t.subtitle.IsZero() {
			v.HasSubtitle = true
			if v.Subtitle, err = textHTML(t.subtitle); err != nil {
				return nil, err
			}
			v.SubtitleStyle = template.CSS(t.partStyle(PartSubtitle))
		}
	}

	if v.SpannerRows, err = t.spannerRows(cols); err != nil {
		return nil, err
	}

	for _, c := range cols {
		h, err := textHTML(t.Label(c))
		if err != nil {
			return nil, err
		}
		v.Labels = append(v.Labels, labelCell{
			ID:    c,
			HTML:  h,
			Align: t.Alignment(c),
			Style: template.CSS(t.cellStyle(PartColumnLabels, -1, c)),
		})
	}

	if v.Groups, err = t.bodyGroups(cols); err != nil {
		return nil, err
	}

	for _, n := range t.notes {
		h, err := textHTML(n)
		if err != nil {
			return nil, err
		}
		v.Notes = append(v.Notes, h)
	}
	v.NotesStyle = template.CSS(t.partStyle(PartSourceNotes))
	return v, nil
}

func widthCSS(w string) string {
	if w == "" {
		return ""
	}
	return "width:" + w + ";"
}

func textHTML(t Text) (template.HTML, error) {
	s, err := t.HTML()
	return template.HTML(s), err
}

// spannerLevels assigns each spanner the lowest level where none of its
// columns is already covered. Level 0 sits right above the labels.
func (t *Table) spannerLevels() [][]Spanner {
	var levels [][]Spanner
	for _, s := range t.spanners {
		placed := false
		for i := range levels {
			if !slices.ContainsFunc(levels[i], func(o Spanner) bool {
				return slices.ContainsFunc(o.Columns, func(c string) bool { return slices.Contains(s.Columns, c) })
			}) {
				levels[i] = append(levels[i], s)
				placed = true
				break
			}
		}
		if !placed {
			levels = append(levels, []Spanner{s})
		}
	}
	return levels
}

// spannerRows lays out spanner rows from the top level down. Runs of
// adjacent visible columns under one spanner merge into a single cell.
func (t *Table) spannerRows(cols []string) ([][]spannerCell, error) {
	levels := t.spannerLevels()
	rows := make([][]spannerCell, 0, len(levels))
	for _, level := range slices.Backward(levels) {
		owner := make(map[string]int, len(cols))
		for i, s := range level {
			for _, c := range s.Columns {
				owner[c] = i + 1
			}
		}
		var row []spannerCell
		if t.rowname != "" {
			row = append(row, spannerCell{Span: 1, Empty: true})
		}
		for i := 0; i < len(cols); {
			o := owner[cols[i]]
			j := i + 1
			for j < len(cols) && owner[cols[j]] == o {
				j++
			}
			cell := spannerCell{Span: j - i, Empty: o == 0}
			if o != 0 {
				s := level[o-1]
				h, err := textHTML(s.Label)
				if err != nil {
					return nil, err
				}
				cell.ID, cell.HTML = s.ID, h
			}
			row = append(row, cell)
			i = j
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rowGroups returns row indices per group, ordered by RowGroupOrder and
// then by first appearance. Without a groupname there is one unlabeled group.
func (t *Table) rowGroups() (labels []string, rows [][]int) {
	if t.groupname == "" {
		all := make([]int, t.frame.NumRows())
		for i := range all {
			all[i] = i
		}
		return []string{""}, [][]int{all}
	}
	labels = slices.Clone(t.groupOrder)
	for _, g := range t.groupLabels() {
		if !slices.Contains(labels, g) {
			labels = append(labels, g)
		}
	}
	rows = make([][]int, len(labels))
	for r := range t.frame.NumRows() {
		i := slices.Index(labels, plainValue(t.frame.Value(r, t.groupname)))
		rows[i] = append(rows[i], r)
	}
	return labels, rows
}

func (t *Table) bodyGroups(cols []string) ([]groupView, error) {
	env := t.env()
	colors := t.colorStyles()
	striping := t.Opt("row_striping_include_table_body") == "true"
	labels, groups := t.rowGroups()
	out := make([]groupView, 0, len(groups))
	for gi, rows := range groups {
		g := groupView{
			ID:       labels[gi],
			Label:    template.HTML(html.EscapeString(labels[gi])),
			HasLabel: t.groupname != "",
		}
		for i, r := range rows {
			rv := rowView{HasStub: t.rowname != "", Striped: striping && i%2 == 1}
			if rv.HasStub {
				h, err := t.cellHTML(r, t.rowname, env)
				if err != nil {
					return nil, err
				}
				rv.Stub = bodyCell{HTML: template.HTML(h), Style: template.CSS(t.cellStyle(PartStub, r, t.rowname))}
			}
			for _, c := range cols {
				h, err := t.cellHTML(r, c, env)
				if err != nil {
					return nil, err
				}
				style := strings.TrimSpace(colors[cellKey{r, c}] + " " + t.cellStyle(PartBody, r, c))
				rv.Cells = append(rv.Cells, bodyCell{
					HTML:    template.HTML(h),
					Align:   t.Alignment(c),
					Style:   template.CSS(style),
					Striped: rv.Striped,
				})
			}
			g.Rows = append(g.Rows, rv)
		}
		out = append(out, g)
	}
	return out, nil
}
