package usecase

import (
	"fmt"
	"html"
	"strings"
	"time"

	"docsign/internal/domain/entity"
)

const defaultLocation = "TP. Cần Thơ"

// buildFooterHTML renders the signature summary page appended to exported
// documents: one section per signature in signing order, with the drawn or
// typed signature visual followed by signer role, name, email and timestamp.
func buildFooterHTML(doc *entity.Document, signatures []entity.Signature) string {
	var items strings.Builder
	for _, sig := range signatures {
		items.WriteString(`<div class="signature-item">`)
		items.WriteString(`<div style="margin-bottom: 10px;">`)
		items.WriteString(signatureVisualHTML(sig))
		items.WriteString(`</div><div class="signature-info">`)
		fmt.Fprintf(&items, `<div><strong>%s:</strong> %s</div>`,
			html.EscapeString(sig.SignerRole), html.EscapeString(sig.SignerName))
		if sig.SignerEmail != "" {
			fmt.Fprintf(&items, `<div><strong>Email:</strong> %s</div>`, html.EscapeString(sig.SignerEmail))
		}
		fmt.Fprintf(&items, `<div><strong>Ngày ký:</strong> %s</div>`, sig.SignedAt.Format("02/01/2006 15:04"))
		items.WriteString(`</div></div>`)
	}

	location := doc.Location
	if location == "" {
		location = defaultLocation
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>Chữ ký - %s</title>
<style>
@page { margin: 15mm; }
body {
	font-family: 'Times New Roman', 'Tinos', serif;
	font-size: 12pt;
	line-height: 1.6;
	color: #000;
	max-width: 210mm;
	margin: 0 auto;
	padding: 20px;
}
.date-location { text-align: right; margin-bottom: 30px; font-size: 11pt; color: #333; }
.signatures { margin-top: 30px; }
.signature-item { margin: 20px 0; padding: 15px 0; border-bottom: 1px solid #eee; }
.signature-image { max-width: 250px; max-height: 100px; margin-bottom: 10px; }
.signature-info { margin-top: 10px; font-size: 11pt; color: #666; }
</style>
</head>
<body>
<div class="date-location">%s, %s</div>
<div class="signatures">
<h2 style="font-size: 14pt; margin-bottom: 20px; border-bottom: 1px solid #ccc; padding-bottom: 10px;">Chữ ký các bên</h2>
%s
</div>
</body>
</html>`,
		html.EscapeString(doc.Title),
		html.EscapeString(location),
		formatDateVietnamese(doc.CreatedAt),
		items.String(),
	)
}

func signatureVisualHTML(sig entity.Signature) string {
	switch {
	case sig.Data.Type == entity.SignatureTypeDraw && sig.Data.Data != "":
		src := sig.Data.Data
		if !strings.HasPrefix(src, "data:") {
			src = "data:image/png;base64," + src
		}
		return fmt.Sprintf(`<img class="signature-image" src="%s" alt="%s">`,
			src, html.EscapeString(sig.SignerName))

	case sig.Data.Type == entity.SignatureTypeType && sig.Data.Data != "":
		fontFamily := sig.Data.FontFamily
		if fontFamily == "" {
			fontFamily = "Times New Roman, serif"
		}
		color := sig.Data.Color
		if color == "" {
			color = "#000000"
		}
		return fmt.Sprintf(`<div style="font-family: %s; color: %s; font-size: 24px; font-weight: bold; padding: 10px 0; border-bottom: 2px solid %s;">%s</div>`,
			html.EscapeString(fontFamily), html.EscapeString(color), html.EscapeString(color), html.EscapeString(sig.Data.Data))

	default:
		return fmt.Sprintf(`<div style="font-size: 18px; font-weight: bold; padding: 10px 0; border-bottom: 2px solid #ccc;">%s</div>`,
			html.EscapeString(sig.SignerName))
	}
}

func formatDateVietnamese(t time.Time) string {
	return fmt.Sprintf("ngày %02d tháng %02d năm %d", t.Day(), int(t.Month()), t.Year())
}
