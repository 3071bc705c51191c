package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/cryptofav-backend/internal/cache"
	"github.com/ignatzorin/cryptofav-backend/internal/logger"
	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
)

const (
	Source = "coingecko"

	DefaultBaseURL    = "https://api.coingecko.com/api/v3"
	DefaultTimeout    = 5 * time.Second
	DefaultCoinID     = "bitcoin"
	DefaultVsCurrency = "usd"

	apiKeyHeader = "x-cg-demo-api-key"
	maxBodyBytes = 5 << 20
)

// Client ходит в публичный REST API CoinGecko. Повторов нет: ошибка апстрима сразу уходит вызывающему.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	log        *logrus.Entry
}

type Option func(*Client)

func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithCache включает кэширование успешных ответов апстрима.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if store != nil && ttl > 0 {
			c.cache = store
			c.cacheTTL = ttl
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient создаёт клиента с ограничением времени на запрос.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: cache.Nop{},
		log:   logger.WithComponent("coingecko"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SimplePrice вызывает /simple/price и возвращает тело ответа как есть.
func (c *Client) SimplePrice(ctx context.Context, ids, vsCurrencies []string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", strings.Join(vsCurrencies, ","))

	body, err := c.get(ctx, "/simple/price", params)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// CoinInfo вызывает /coins/{id} без тяжёлых секций и нормализует ответ.
func (c *Client) CoinInfo(ctx context.Context, id string) (*CoinInfo, error) {
	params := url.Values{}
	params.Set("localization", "false")
	params.Set("tickers", "false")
	params.Set("market_data", "true")
	params.Set("community_data", "false")
	params.Set("developer_data", "false")
	params.Set("sparkline", "false")

	body, err := c.get(ctx, "/coins/"+url.PathEscape(id), params)
	if err != nil {
		return nil, err
	}

	var raw coinResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeBadGateway, apperror.ErrExternalInvalidJSON.Message)
	}
	return raw.normalize(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	cacheKey := Source + ":" + endpoint + "?" + params.Encode()
	if cached, ok := c.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to build external API request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("endpoint", endpoint).Warn("upstream request failed")
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstreamUnavailable,
			fmt.Sprintf("Error connecting to external crypto API: %v", err))
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"latency":  time.Since(started).String(),
	}).Debug("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// тело ошибки апстрима не нужно, но дочитываем для переиспользования соединения
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		if resp.StatusCode == http.StatusNotFound {
			return nil, apperror.ErrExternalNotFound
		}
		return nil, apperror.Newf(apperror.ErrCodeBadGateway, "External crypto API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstreamUnavailable,
			fmt.Sprintf("Error connecting to external crypto API: %v", err))
	}
	if !json.Valid(body) {
		return nil, apperror.ErrExternalInvalidJSON
	}

	c.toCache(ctx, cacheKey, body)
	return body, nil
}

// Ошибки кэша только логируются: запрос всё равно обслуживается апстримом.
func (c *Client) fromCache(ctx context.Context, key string) ([]byte, bool) {
	val, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache read failed")
		return nil, false
	}
	return val, ok
}

func (c *Client) toCache(ctx context.Context, key string, body []byte) {
	if c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}
