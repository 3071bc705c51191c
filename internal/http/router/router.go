package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/cryptofav-backend/internal/config"
	"github.com/ignatzorin/cryptofav-backend/internal/http/handlers"
	"github.com/ignatzorin/cryptofav-backend/internal/http/middleware"
)

// Handlers собирает все хендлеры, нужные роутеру.
type Handlers struct {
	Health   *handlers.HealthHandler
	Favorite *handlers.FavoriteHandler
	Catalog  *handlers.CatalogHandler
	Market   *handlers.MarketHandler
	// Auth регистрируется только в development
	Auth *handlers.AuthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.TokenParser) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	// gzip должен оборачивать ErrorHandler, иначе тело ошибки пишется мимо сжатия
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/health"})))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Health)

	if h.Auth != nil && cfg.IsDevelopment() {
		r.POST("/auth/token", h.Auth.IssueToken)
	}

	// Справочник и прокси к CoinGecko не требуют идентификации
	r.GET("/coins/catalog", h.Catalog.ListCoins)

	market := r.Group("/coins")
	market.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		market.GET("/live-prices", h.Market.LivePrices)
		market.GET("/:coin_id/external-info", h.Market.CoinInfo)
	}

	favorites := r.Group("/coins")
	favorites.Use(middleware.IdentityMiddleware(tokens, cfg.Auth.TrustUserHeader))
	{
		favorites.GET("", h.Favorite.ListFavorites)
		favorites.POST("", h.Favorite.AddFavorite)
		favorites.PUT("/:id", middleware.PositiveIDParam("id"), h.Favorite.UpdateFavorite)
		favorites.DELETE("/:id", middleware.PositiveIDParam("id"), h.Favorite.RemoveFavorite)
	}

	return r
}
