package dto

// ErrorResponse is the only error shape sent to callers.
// Message is set only on the fallback 500 body.
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message,omitempty"`
}

// InternalServerError is the fixed body for unanticipated failures.
var InternalServerError = ErrorResponse{
	Detail:  "Internal Server Error",
	Message: "An unexpected error occurred.",
}
