package push

// Error codes returned in the JSON error body
const (
	CodeInvalidToken  = "INVALID_TOKEN"
	CodeInternalError = "INTERNAL_ERROR"
)

// RegisterTokenRequest is the body for registering a browser push token
type RegisterTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	ClientID string `json:"client_id"`
	Platform string `json:"platform"`
	Locale   string `json:"locale"`
}

// SendRequest is the admin broadcast body
type SendRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
	URL   string `json:"url"`
}

// SendResponse reports broadcast delivery counts
type SendResponse struct {
	Ok     bool `json:"ok"`
	Sent   int  `json:"sent"`
	Failed int  `json:"failed"`
}
