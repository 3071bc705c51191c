package service

import (
	"context"
	"encoding/json"

	"github.com/ignatzorin/cryptofav-backend/internal/coingecko"
	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
	"github.com/ignatzorin/cryptofav-backend/internal/validation"
)

type PriceProvider interface {
	SimplePrice(ctx context.Context, ids, vsCurrencies []string) (json.RawMessage, error)
	CoinInfo(ctx context.Context, id string) (*coingecko.CoinInfo, error)
}

type LivePrices struct {
	Source       string          `json:"source"`
	IDs          []string        `json:"ids"`
	VsCurrencies []string        `json:"vs_currencies"`
	Data         json.RawMessage `json:"data"`
}

type CoinInfoResult struct {
	Source string              `json:"source"`
	Data   *coingecko.CoinInfo `json:"data"`
}

// MarketService проксирует запросы цен и метаданных к внешнему провайдеру.
type MarketService struct {
	provider PriceProvider
}

func NewMarketService(provider PriceProvider) *MarketService {
	return &MarketService{provider: provider}
}

// LivePrices принимает списки через запятую. Дефолты для отсутствующих параметров подставляет HTTP слой.
func (s *MarketService) LivePrices(ctx context.Context, rawIDs, rawVsCurrencies string) (*LivePrices, error) {
	ids := validation.SplitList(rawIDs)
	if len(ids) == 0 {
		return nil, apperror.ErrIDsRequired
	}

	// Пустой vs_currencies уходит провайдеру как есть, ответ решает он
	vs := validation.SplitList(rawVsCurrencies)

	data, err := s.provider.SimplePrice(ctx, ids, vs)
	if err != nil {
		return nil, err
	}

	return &LivePrices{
		Source:       coingecko.Source,
		IDs:          ids,
		VsCurrencies: vs,
		Data:         data,
	}, nil
}

func (s *MarketService) CoinInfo(ctx context.Context, coinID string) (*CoinInfoResult, error) {
	if err := validation.ValidateCoinID(coinID); err != nil {
		return nil, apperror.ErrCoinIDRequired
	}

	info, err := s.provider.CoinInfo(ctx, coinID)
	if err != nil {
		return nil, err
	}

	return &CoinInfoResult{Source: coingecko.Source, Data: info}, nil
}
