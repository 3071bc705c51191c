package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/cryptofav-backend/internal/cache"
	"github.com/ignatzorin/cryptofav-backend/internal/coingecko"
	"github.com/ignatzorin/cryptofav-backend/internal/config"
	"github.com/ignatzorin/cryptofav-backend/internal/db"
	"github.com/ignatzorin/cryptofav-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/cryptofav-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/cryptofav-backend/internal/http/router"
	"github.com/ignatzorin/cryptofav-backend/internal/logger"
	"github.com/ignatzorin/cryptofav-backend/internal/repository"
	"github.com/ignatzorin/cryptofav-backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.Env)

	// Подключение к базе, миграции и начальные данные.
	store, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.URL, cfg.Database.MaxIdleConns)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose("database", store.Close)

	if err := db.Bootstrap(ctx, store); err != nil {
		logger.Log.Fatalf("main: ошибка инициализации базы: %v", err)
	}

	responseCache, cachePinger, closeCache := newResponseCache(ctx, cfg.Cache)
	defer closeCache()

	gecko := coingecko.NewClient(cfg.CoinGecko.BaseURL, cfg.CoinGecko.Timeout,
		coingecko.WithAPIKey(cfg.CoinGecko.APIKey),
		coingecko.WithCache(responseCache, cfg.Cache.TTL),
	)

	// Репозитории.
	userRepo := repository.NewUserRepository(store)
	coinRepo := repository.NewCoinRepository(store)
	favoriteRepo := repository.NewFavoriteRepository(store)

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	favoriteService := service.NewFavoriteService(favoriteRepo, coinRepo)
	marketService := service.NewMarketService(gecko)
	authService := service.NewAuthService(userRepo, tokenManager)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Health:   httpHandlers.NewHealthHandler(store, cachePinger),
		Favorite: httpHandlers.NewFavoriteHandler(favoriteService),
		Catalog:  httpHandlers.NewCatalogHandler(favoriteService),
		Market:   httpHandlers.NewMarketHandler(marketService),
		Auth:     httpHandlers.NewAuthHandler(authService),
	}, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Log.Fatalf("main: не удалось открыть порт %s: %v", cfg.HTTPPort, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"port":      cfg.HTTPPort,
		"env":       cfg.Env,
		"db_driver": store.Driver(),
	}).Info("main: HTTP сервер запущен")

	if err := serve(ctx, server, ln, shutdownTimeout); err != nil {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
	logger.Log.Info("main: HTTP сервер остановлен")
}

// newResponseCache выбирает кэш ответов CoinGecko: Redis, если задан и доступен,
// иначе в памяти процесса. При TTL <= 0 кэширование выключено.
func newResponseCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, httpHandlers.Pinger, func()) {
	noop := func() {}
	if cfg.TTL <= 0 {
		return cache.Nop{}, nil, noop
	}

	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL, "cryptofav:")
		if err == nil {
			return redisCache, redisCache, func() { safeClose("redis", redisCache.Close) }
		}
		logger.Log.WithError(err).Warn("main: redis недоступен, используем кэш в памяти")
	}

	return cache.NewMemory(ctx, 0), nil, noop
}

// serve обслуживает ln до отмены ctx и возвращается только после того,
// как Shutdown дождётся активных запросов (не дольше grace).
func serve(ctx context.Context, server *http.Server, ln net.Listener, grace time.Duration) error {
	shutdownDone := make(chan struct{})
	goroutine.SafeGoWithContext(ctx, "shutdown", func(ctx context.Context) {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-shutdownDone
	return nil
}

// safeClose закрывает ресурс и логирует ошибку.
func safeClose(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Log.WithError(err).Warnf("main: ошибка закрытия %s", name)
	}
}
