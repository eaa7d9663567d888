package entity

import "time"

// Signature kinds
const (
	SignatureTypeDraw = "draw"
	SignatureTypeType = "type"
)

// Signature is the record created when a signer fills a signature block.
// SignerID carries the block ID that was filled, so a block can never be
// backed by more than one record.
type Signature struct {
	ID          string        `json:"id"`
	DocumentID  string        `json:"document_id"`
	SignerID    string        `json:"signer_id"`
	SignerRole  string        `json:"signer_role"`
	SignerName  string        `json:"signer_name"`
	SignerEmail string        `json:"signer_email,omitempty"`
	Data        SignatureData `json:"signature_data"`
	IPAddress   string        `json:"ip_address,omitempty"`
	UserAgent   string        `json:"user_agent,omitempty"`
	SignedAt    time.Time     `json:"signed_at"`
}

// SignatureData holds the visual signature payload. For drawn signatures Data
// is the captured image (base64, possibly a data URL); for typed signatures it
// is the literal text rendered in FontFamily.
type SignatureData struct {
	Type       string `json:"type"`
	Data       string `json:"data"`
	Color      string `json:"color,omitempty"`
	FontFamily string `json:"font_family,omitempty"`
}
