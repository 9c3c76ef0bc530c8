package dto

import "time"

// ErrorResponse is the user-facing shape of a failed command.
//
// Fields:
//   - Message: short description of what failed.
//   - ErrorDetails: underlying error text, if any.
//   - Timestamp: when the failure was reported.
type ErrorResponse struct {
	Message      string    `json:"message"`
	ErrorDetails string    `json:"error_details,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
