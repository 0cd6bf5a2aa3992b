package httpdto

// AskRequest is used for POST /api/ask
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// AskResponse is returned for a completed question/answer exchange
type AskResponse struct {
	Success  bool   `json:"success"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
