package chart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 20 * time.Second
	defaultScale         = 2.0
)

// ChromedpConfig configures the headless Chrome rasterizer.
type ChromedpConfig struct {
	// RemoteURL points at a running Chrome DevTools endpoint. Empty launches a local browser.
	RemoteURL string
	Timeout   time.Duration
	// NoSandbox is required when Chrome runs as root inside a container.
	NoSandbox bool
	// Scale is the device scale factor of the screenshot.
	Scale  float64
	Logger *zap.Logger
}

// ChromedpRasterizer paints the SVG in headless Chrome and screenshots it as PNG.
type ChromedpRasterizer struct {
	config      ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func NewChromedpRasterizer(config ChromedpConfig) *ChromedpRasterizer {
	if config.Timeout == 0 {
		config.Timeout = defaultChromeTimeout
	}
	if config.Scale == 0 {
		config.Scale = defaultScale
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRasterizer{config: config, logger: logger}
	if config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), config.RemoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

func (r *ChromedpRasterizer) Rasterize(ctx context.Context, c *VectorChart) (*Image, error) {
	if c == nil {
		return nil, &RasterError{Message: "chart is nil"}
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// the browser context must die with the request context
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	var png []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(c.Width), int64(c.Height)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, pageHTML(c)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, err := page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{X: 0, Y: 0, Width: c.Width, Height: c.Height, Scale: r.config.Scale}).
				Do(ctx)
			if err != nil {
				return err
			}
			png = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &RasterError{Message: fmt.Sprintf("chart rasterization timed out after %v", r.config.Timeout), Cause: err}
		}
		return nil, &RasterError{Message: "chromedp execution failed", Cause: err}
	}
	if len(png) == 0 {
		return nil, &RasterError{Message: "screenshot is empty"}
	}

	r.logger.Debug("chart rasterized", zap.Int("bytes", len(png)))
	return &Image{ContentType: "image/png", Data: png}, nil
}

// Close shuts down the browser allocator.
func (r *ChromedpRasterizer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func pageHTML(c *VectorChart) string {
	return `<!DOCTYPE html><html><head><meta charset="UTF-8">` +
		`<style>html,body{margin:0;padding:0;background:#FFFFFF;}</style></head><body>` +
		c.SVG() + `</body></html>`
}

var _ Rasterizer = (*ChromedpRasterizer)(nil)
var _ Rasterizer = SVGRasterizer{}
