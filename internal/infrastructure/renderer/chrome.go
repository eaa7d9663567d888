package renderer

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"docsign/internal/config"
)

// A4 paper size and the footer page margins, in inches (PrintToPDF units).
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	marginInches   = 0.59 // 15mm
)

const defaultSettleTimeout = 5 * time.Second

// ChromeRenderer renders HTML through a headless Chrome subprocess. When no
// executable path is configured, chromedp falls back to its own browser
// discovery.
type ChromeRenderer struct {
	execPath      string
	settleTimeout time.Duration
	logger        *zap.Logger
}

func NewChromeRenderer(cfg *config.Config, logger *zap.Logger) HtmlToPdf {
	settle := cfg.Pdf.SettleTimeout
	if settle <= 0 {
		settle = defaultSettleTimeout
	}

	if cfg.Pdf.ChromeExecutablePath != "" {
		logger.Info("Using configured Chrome executable",
			zap.String("path", cfg.Pdf.ChromeExecutablePath),
		)
	}

	return &ChromeRenderer{
		execPath:      cfg.Pdf.ChromeExecutablePath,
		settleTimeout: settle,
		logger:        logger,
	}
}

func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var pdfBytes []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		r.settle(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBytes, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		r.logger.Error("Headless render failed", zap.Error(err))
		return nil, err
	}
	if len(pdfBytes) == 0 {
		r.logger.Warn("Headless render produced empty PDF")
		return nil, errors.New("rendered pdf is empty")
	}

	r.logger.Info("HTML rendered to PDF",
		zap.Int("size", len(pdfBytes)),
	)
	return pdfBytes, nil
}

// settle waits for the injected content to finish loading subresources. The
// wait is bounded: on timeout rendering proceeds with whatever has loaded
// rather than hanging the request.
func (r *ChromeRenderer) settle() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, r.settleTimeout)
		defer cancel()

		err := chromedp.WaitReady("body", chromedp.ByQuery).Do(waitCtx)
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			r.logger.Warn("Render settle wait timed out, proceeding",
				zap.Duration("timeout", r.settleTimeout),
			)
			return nil
		}
		return err
	})
}
