package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// Document types
const (
	DocumentTypePdf      = "pdf"
	DocumentTypeContract = "contract"
)

// Document statuses
const (
	DocumentStatusDraft           = "draft"
	DocumentStatusPartiallySigned = "partially_signed"
	DocumentStatusSigned          = "signed"
)

type Document struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Type            string           `json:"type"`
	Status          string           `json:"status"`
	PdfURL          string           `json:"pdf_url,omitempty"`
	SignatureBlocks []SignatureBlock `json:"pdf_signature_blocks,omitempty"`
	Location        string           `json:"location,omitempty"`
	ViewCount       int              `json:"view_count"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// FindBlock returns the signature block with the given ID, or nil.
func (d *Document) FindBlock(blockID string) *SignatureBlock {
	for i := range d.SignatureBlocks {
		if d.SignatureBlocks[i].ID == blockID {
			return &d.SignatureBlocks[i]
		}
	}
	return nil
}

// AllBlocksSigned reports whether every placed block has been signed.
// A document without blocks is never considered fully signed.
func (d *Document) AllBlocksSigned() bool {
	if len(d.SignatureBlocks) == 0 {
		return false
	}
	for _, b := range d.SignatureBlocks {
		if !b.IsSigned {
			return false
		}
	}
	return true
}

// SignatureBlock is a placeholder region on a PDF page where a signer must
// stamp a signature. Coordinates are percentages of the page dimensions with
// Y measured from the page top, matching the browser preview.
type SignatureBlock struct {
	ID            string  `json:"id"`
	PageNumber    int     `json:"pageNumber"`
	XPercent      float64 `json:"xPercent"`
	YPercent      float64 `json:"yPercent"`
	WidthPercent  float64 `json:"widthPercent"`
	HeightPercent float64 `json:"heightPercent"`
	SignerRole    string  `json:"signerRole"`
	IsSigned      bool    `json:"isSigned"`
	SignatureID   string  `json:"signatureId,omitempty"`
}

// canonicalBlockKeys maps lowercased JSON keys back to the canonical
// camelCase names. Stored blobs and clients send either camelCase or
// PascalCase depending on which frontend produced them, so reads tolerate
// both. This tolerance is a compatibility contract, not a library default.
var canonicalBlockKeys = map[string]string{
	"id":            "id",
	"pagenumber":    "pageNumber",
	"xpercent":      "xPercent",
	"ypercent":      "yPercent",
	"widthpercent":  "widthPercent",
	"heightpercent": "heightPercent",
	"signerrole":    "signerRole",
	"issigned":      "isSigned",
	"signatureid":   "signatureId",
}

type signatureBlockAlias SignatureBlock

func (b *SignatureBlock) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	norm := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		if canonical, ok := canonicalBlockKeys[strings.ToLower(k)]; ok {
			norm[canonical] = v
		} else {
			norm[k] = v
		}
	}

	buf, err := json.Marshal(norm)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, (*signatureBlockAlias)(b))
}
