package table

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/kbukum/tablekit/resilience"
)

// exportGuard caps concurrent headless browsers.
var exportGuard = resilience.NewBulkhead(resilience.ExportBulkheadConfig())

// capture renders doc in headless Chrome. Replaced in tests.
var capture = chromeCapture

// chromeCapture returns a PNG of the element matching selector, or a PDF
// of the whole page.
func chromeCapture(ctx context.Context, doc, selector, format string) ([]byte, error) {
	f, err := os.CreateTemp("", "tablekit-*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(doc); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var buf []byte
	actions := []chromedp.Action{
		chromedp.Navigate("file://" + f.Name()),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
	}
	switch format {
	case "png":
		actions = append(actions, chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery))
	case "pdf":
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}))
	default:
		return nil, fmt.Errorf("unsupported capture format %q", format)
	}
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, fmt.Errorf("headless chrome: %w", err)
	}
	return buf, nil
}

var chromeNames = []string{
	"headless-shell", "chromium", "chromium-browser", "google-chrome",
	"google-chrome-stable", "chrome",
}

// FindChrome returns the path of a Chrome or Chromium executable usable
// for PNG and PDF export.
func FindChrome() (string, error) {
	for _, name := range chromeNames {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no chrome executable found in PATH (tried %v)", chromeNames)
}
