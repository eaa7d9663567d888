package entity

import "time"

// Operation names recorded in the audit log
const (
	OperationUpload = "upload"
	OperationStamp  = "stamp"
	OperationMerge  = "merge"
	OperationDelete = "delete"
)

// OperationLog is one audit entry for a PDF processing operation.
type OperationLog struct {
	ID         int64     `json:"id"`
	DocumentID string    `json:"document_id"`
	Operation  string    `json:"operation"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	Duration   int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
