package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/cryptofav-backend/internal/coingecko"
	"github.com/ignatzorin/cryptofav-backend/internal/http/handlers/common"
	"github.com/ignatzorin/cryptofav-backend/internal/service"
)

// MarketHandler проксирует рыночные данные CoinGecko.
type MarketHandler struct {
	svc *service.MarketService
}

func NewMarketHandler(s *service.MarketService) *MarketHandler {
	return &MarketHandler{svc: s}
}

// LivePrices GET /coins/live-prices?ids=bitcoin,ethereum&vs_currencies=usd,eur
func (h *MarketHandler) LivePrices(c *gin.Context) {
	// Отсутствующий параметр получает дефолт, пустой - нет
	ids := c.DefaultQuery("ids", coingecko.DefaultCoinID)
	vs := c.DefaultQuery("vs_currencies", coingecko.DefaultVsCurrency)

	res, err := h.svc.LivePrices(c.Request.Context(), ids, vs)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, res)
}

// CoinInfo GET /coins/:coin_id/external-info
func (h *MarketHandler) CoinInfo(c *gin.Context) {
	res, err := h.svc.CoinInfo(c.Request.Context(), c.Param("coin_id"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, res)
}
