package renderer

import "context"

// HtmlToPdf renders an HTML document into PDF bytes. Implementations return
// an error on any failure; callers decide whether a missing footer is fatal
// (merge/export) or skippable (preview, email attachments).
type HtmlToPdf interface {
	Render(ctx context.Context, html string) ([]byte, error)
}
