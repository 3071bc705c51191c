package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/cryptofav-backend/internal/http/handlers/common"
	"github.com/ignatzorin/cryptofav-backend/internal/service"
)

// CatalogHandler отдаёт справочник монет, которые можно добавить в избранное.
type CatalogHandler struct {
	svc *service.FavoriteService
}

func NewCatalogHandler(s *service.FavoriteService) *CatalogHandler {
	return &CatalogHandler{svc: s}
}

// ListCoins GET /coins/catalog
func (h *CatalogHandler) ListCoins(c *gin.Context) {
	coins, err := h.svc.ListCoins(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondItems(c, http.StatusOK, coins)
}
