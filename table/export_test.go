package table

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/tablekit/errors"
)

func stubCapture(t *testing.T, fn func(ctx context.Context, doc, selector, format string) ([]byte, error)) {
	t.Helper()
	orig := capture
	capture = fn
	t.Cleanup(func() { capture = orig })
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	tb := New(sampleFrame(t)).TabHeader("Saved")
	if got := tb.Save(path); got != tb {
		t.Error("Save should return the same table on success")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<title>Saved</title>") {
		t.Errorf("saved page = %.80q", data)
	}
}

func TestSaveImageUsesCapture(t *testing.T) {
	var gotSelector, gotFormat string
	stubCapture(t, func(_ context.Context, doc, selector, format string) ([]byte, error) {
		if !strings.Contains(doc, "<!DOCTYPE html>") {
			t.Error("capture did not receive a page")
		}
		gotSelector, gotFormat = selector, format
		return []byte("PNGDATA"), nil
	})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := New(sampleFrame(t), ID("shot")).SaveContext(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if gotSelector != "#shot" || gotFormat != "png" {
		t.Errorf("capture(%q, %q)", gotSelector, gotFormat)
	}
	if data, _ := os.ReadFile(path); string(data) != "PNGDATA" {
		t.Errorf("file = %q", data)
	}
}

func TestSaveFailures(t *testing.T) {
	stubCapture(t, func(context.Context, string, string, string) ([]byte, error) {
		return nil, stderrors.New("chrome not found")
	})
	dir := t.TempDir()

	tb := New(sampleFrame(t))
	failed := tb.Save(filepath.Join(dir, "out.pdf"))
	if !errors.HasCode(failed.Err(), errors.ErrCodeExport) {
		t.Fatalf("error = %v, want EXPORT_FAILED", failed.Err())
	}
	if ae, _ := errors.AsAppError(failed.Err()); ae.Details["operation"] != string(OpSave) {
		t.Errorf("details = %v", ae.Details)
	}
	if tb.Err() != nil {
		t.Error("failed save modified the receiver")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.pdf")); !os.IsNotExist(err) {
		t.Error("failed export left a file behind")
	}

	if err := tb.SaveContext(context.Background(), filepath.Join(dir, "out.docx")); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad extension error = %v", err)
	}
	if err := tb.SaveContext(context.Background(), filepath.Join(dir, "missing", "out.html")); !errors.HasCode(err, errors.ErrCodeExport) {
		t.Errorf("unwritable path error = %v", err)
	}
}

func TestFailedTableSkipsExports(t *testing.T) {
	called := false
	tb := New(sampleFrame(t)).ColsHide("nope")
	tb.AsRawHTML(func(string) { called = true })
	if called {
		t.Error("sink called on a failed table")
	}
	if got := tb.Show(&strings.Builder{}); got != tb {
		t.Error("export on a failed table should return it unchanged")
	}
}

func TestShowAndSinks(t *testing.T) {
	var page strings.Builder
	tb := New(sampleFrame(t)).Show(&page)
	if err := tb.Err(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(page.String(), "gt_table") {
		t.Error("Show wrote no table")
	}
	if err := New(sampleFrame(t)).Show(nil).Err(); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil writer error = %v", err)
	}

	var latex string
	if err := New(sampleFrame(t)).TabHeader("R&D").AsLatex(func(s string) { latex = s }).Err(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`\begin{table}`, `\toprule`, `R\&D`, `\bottomrule`} {
		if !strings.Contains(latex, want) {
			t.Errorf("latex missing %q", want)
		}
	}

	path := filepath.Join(t.TempDir(), "frag.html")
	if err := New(sampleFrame(t)).WriteRawHTML(path).Err(); err != nil {
		t.Fatal(err)
	}
	if data, _ := os.ReadFile(path); strings.Contains(string(data), "<!DOCTYPE") {
		t.Error("fragment should not be a full page")
	}
}

func TestTextRenderings(t *testing.T) {
	txt, err := New(sampleFrame(t)).TabHeader("Sample").AsText()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(txt, "Sample") || !strings.Contains(txt, "2250") {
		t.Errorf("text = %s", txt)
	}
	md, err := New(sampleFrame(t)).ColsHide("n").AsMarkdown()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "---") || !strings.HasPrefix(strings.TrimSpace(md), "|") {
		t.Errorf("markdown = %s", md)
	}
	if strings.Contains(md, "| 3 |") {
		t.Error("hidden column rendered")
	}
}
