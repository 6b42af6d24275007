// Package table builds styled display tables over a Frame of columns.
//
// A Table is a value: each builder method returns a modified copy, so
// intermediate tables stay valid and can be rendered independently.
//
//	t := table.New(frame).
//		TabHeader("New York Air Quality Measurements").
//		ColsMoveToStart("Year", "Month", "Day").
//		OptStylize(2, "pink", true)
//	html, err := t.RenderHTML()
//
// Errors are sticky: the first failing call is kept in the returned table,
// later calls are skipped, and Err and every render method report it.
//
// Every builder method is named by an Operation. Prepare resolves an
// operation name and arguments into a Step at runtime, which is how
// recorded pipelines and YAML recipes drive the builder.
//
// Output formats:
//   - RenderHTML and Page: HTML fragment and document (html/template)
//   - AsText and AsMarkdown: terminal and Markdown tables (go-pretty)
//   - Latex: booktabs LaTeX
//   - Save: .html files, and .png or .pdf through headless Chrome
package table
