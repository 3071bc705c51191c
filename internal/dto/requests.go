package dto

// SymbolRequest - тело POST /coins и PUT /coins/:id.
type SymbolRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// TokenRequest - тело POST /auth/token.
type TokenRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}
