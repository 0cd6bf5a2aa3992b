package httpdto

// MessageResponse carries a plain success message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope for every endpoint. Details is only
// populated for unexpected internal faults.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned from GET /message
type HealthResponse struct {
	Message  string `json:"message"`
	DBStatus string `json:"db_status"`
}

func NewErrorResponse(err string) ErrorResponse {
	return ErrorResponse{Error: err}
}
