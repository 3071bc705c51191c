package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/cryptofav-backend/internal/dto"
	"github.com/ignatzorin/cryptofav-backend/internal/http/handlers/common"
	"github.com/ignatzorin/cryptofav-backend/internal/service"
)

type FavoriteHandler struct {
	svc *service.FavoriteService
}

func NewFavoriteHandler(s *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: s}
}

// ListFavorites GET /coins
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	items, err := h.svc.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondItems(c, http.StatusOK, items)
}

// AddFavorite POST /coins
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.SymbolRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	fav, err := h.svc.AddFavorite(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, fav)
}

// UpdateFavorite PUT /coins/:id
func (h *FavoriteHandler) UpdateFavorite(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	favoriteID, err := common.FavoriteIDParam(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.SymbolRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	fav, err := h.svc.UpdateFavorite(c.Request.Context(), userID, favoriteID, req.Symbol)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, fav)
}

// RemoveFavorite DELETE /coins/:id
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	favoriteID, err := common.FavoriteIDParam(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	if err := h.svc.RemoveFavorite(c.Request.Context(), userID, favoriteID); err != nil {
		common.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
