package entity

// CreateDocumentRequest creates a new document shell before any PDF upload.
type CreateDocumentRequest struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Location string `json:"location,omitempty"`
}

// ApplyPdfSignatureRequest stamps one signature block with a captured image.
// SignatureImageBase64 is raw base64 or a data URL (data:image/png;base64,...).
type ApplyPdfSignatureRequest struct {
	SignatureBlockID     string `json:"signature_block_id"`
	SignerName           string `json:"signer_name"`
	SignerEmail          string `json:"signer_email,omitempty"`
	SignatureImageBase64 string `json:"signature_image_base64"`
}
