package entity

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes surfaced to clients. Input errors map to 4xx responses,
// PROCESSING_ERROR to 5xx.
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeFileTooLarge    = "FILE_TOO_LARGE"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeAlreadySigned   = "ALREADY_SIGNED"
	ErrCodeProcessingError = "PROCESSING_ERROR"
)

func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code string, message string) *APIResponse {
	return &APIResponse{
		Success: false,
		Message: message,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}
