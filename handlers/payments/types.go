package payments

// Error codes returned in the JSON error body
const (
	CodeInvalidClientID  = "INVALID_CLIENT_ID"
	CodeInvalidPackage   = "INVALID_PACKAGE"
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeNotFound         = "TRANSACTION_NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
)

// CheckoutRequest is the body for opening a Stripe checkout session
type CheckoutRequest struct {
	PackageID string `json:"package_id" binding:"required"`
	ClientID  string `json:"client_id" binding:"required"`
}

// VerifyRequest is the body for polling a checkout session's outcome
type VerifyRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	ClientID  string `json:"client_id"`
}
