package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/cryptofav-backend/internal/dto"
	"github.com/ignatzorin/cryptofav-backend/internal/http/handlers/common"
	"github.com/ignatzorin/cryptofav-backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// IssueToken POST /auth/token (только development)
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	tok, err := h.auth.IssueToken(c.Request.Context(), req.UserID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, tok)
}
