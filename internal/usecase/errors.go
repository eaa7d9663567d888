package usecase

import "errors"

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrNotPdfDocument     = errors.New("document has no pdf attached")
	ErrBlockNotFound      = errors.New("signature block not found")
	ErrBlockAlreadySigned = errors.New("signature block already signed")
)
