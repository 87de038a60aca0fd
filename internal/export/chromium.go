package export

import (
	"context"
	"encoding/base64"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	// captureWidth is the fixed logical width the report is laid out at for
	// raster capture; captureScale sharpens the output.
	captureWidth = 1440
	captureScale = 2.0

	renderTimeout = 30 * time.Second
)

// Chromium drives a headless browser for region capture, full-page
// screenshots, and PDF printing. It implements Capturer, Screenshotter and
// Printer.
type Chromium struct {
	chromePath string
}

func NewChromium(chromePath string) *Chromium {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &Chromium{chromePath: chromePath}
}

func (c *Chromium) run(ctx context.Context, actions ...chromedp.Action) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	return chromedp.Run(taskCtx, actions...)
}

func dataURL(htmlDoc string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
}

// CaptureRegion rasterizes one section of the rendered document, addressed
// by CSS selector, as PNG.
func (c *Chromium) CaptureRegion(ctx context.Context, htmlDoc, selector string) ([]byte, error) {
	var buf []byte
	err := c.run(ctx,
		chromedp.EmulateViewport(captureWidth, 900, chromedp.EmulateScale(captureScale)),
		chromedp.Navigate(dataURL(htmlDoc)),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &buf, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// CapturePage flattens the whole rendered document into a single PNG at the
// fixed logical width.
func (c *Chromium) CapturePage(ctx context.Context, htmlDoc string) ([]byte, error) {
	var buf []byte
	err := c.run(ctx,
		chromedp.EmulateViewport(captureWidth, 900, chromedp.EmulateScale(captureScale)),
		chromedp.Navigate(dataURL(htmlDoc)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// PrintToPDF prints the document on A4 pages with the fixed attribution
// footer and page-count pagination stamped on every page.
func (c *Chromium) PrintToPDF(ctx context.Context, htmlDoc string) ([]byte, error) {
	var pdf []byte
	err := c.run(ctx,
		chromedp.Navigate(dataURL(htmlDoc)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Conversion Rate Benchmark Report &middot; Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
