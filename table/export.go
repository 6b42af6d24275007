package table

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/logger"
	"github.com/kbukum/tablekit/observability"
)

// ExportTimeout bounds a single Save when the context has no deadline.
const ExportTimeout = 60 * time.Second

// Save writes the table to path. The format follows the extension:
// .html writes a page, .png a screenshot of the table and .pdf a printed
// page, the last two through headless Chrome. The table is returned
// unchanged; a failed write is recorded as its error.
func (t *Table) Save(path string) *Table {
	return t.export(OpSave, func() error { return t.SaveContext(context.Background(), path) })
}

// SaveContext is Save returning the error directly.
func (t *Table) SaveContext(ctx context.Context, path string) (err error) {
	if t.err != nil {
		return t.err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	op := observability.Start(ctx, "table", "save")
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		op.Metrics.RecordExport(op.Context(), format, status)
		op.End(err)
	}()
	ctx = op.Context()

	var data []byte
	switch format {
	case "html", "htm":
		page, err := t.Page()
		if err != nil {
			return err
		}
		data = []byte(page)
	case "png", "pdf":
		page, err := t.Page()
		if err != nil {
			return err
		}
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, ExportTimeout)
			defer cancel()
		}
		err = exportGuard.Execute(ctx, func() error {
			var cerr error
			data, cerr = capture(ctx, page, "#"+t.id, format)
			return cerr
		})
		if err != nil {
			return errors.Export(path, err)
		}
	default:
		return errors.InvalidInput("path", "file extension must be .html, .png or .pdf")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Export(path, err)
	}
	logger.Get("table").Info("table saved", logger.Fields("path", path, "format", format, "bytes", len(data)))
	return nil
}

// Show writes the table as an HTML page to w.
func (t *Table) Show(w io.Writer) *Table {
	return t.export(OpShow, func() error {
		if w == nil {
			return errors.InvalidInput("writer", "writer is required")
		}
		page, err := t.Page()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	})
}

// AsRawHTML passes the HTML fragment to sink.
func (t *Table) AsRawHTML(sink func(string)) *Table {
	return t.export(OpAsRawHTML, func() error {
		if sink == nil {
			return errors.InvalidInput("sink", "sink is required")
		}
		s, err := t.RenderHTML()
		if err != nil {
			return err
		}
		sink(s)
		return nil
	})
}

// WriteRawHTML writes the HTML fragment to path.
func (t *Table) WriteRawHTML(path string) *Table {
	return t.export(OpWriteRawHTML, func() error {
		s, err := t.RenderHTML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
			return errors.Export(path, err)
		}
		logger.Get("table").Info("table fragment written", logger.Fields("path", path))
		return nil
	})
}

// AsLatex passes the LaTeX rendering to sink.
func (t *Table) AsLatex(sink func(string)) *Table {
	return t.export(OpAsLatex, func() error {
		if sink == nil {
			return errors.InvalidInput("sink", "sink is required")
		}
		s, err := t.Latex()
		if err != nil {
			return err
		}
		sink(s)
		return nil
	})
}

// Pipe passes a copy of the table to fn and returns its result, for
// reusable chains of builder calls.
func (t *Table) Pipe(fn func(*Table) *Table) *Table {
	if t.err != nil {
		return t
	}
	if fn == nil {
		return t.fail(OpPipe, errors.InvalidInput("fn", "function is required"))
	}
	out := fn(t.Clone())
	if out == nil {
		return t.fail(OpPipe, errors.InvalidInput("fn", "function returned no table"))
	}
	return out
}

// export runs an output-only operation. The content is never changed.
func (t *Table) export(op Operation, fn func() error) *Table {
	if t.err != nil {
		return t
	}
	if err := fn(); err != nil {
		return t.fail(op, err)
	}
	return t
}
