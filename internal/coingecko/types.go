package coingecko

import (
	"github.com/shopspring/decimal"
)

// Amount — точное десятичное значение, которое сериализуется числом JSON или null.
type Amount struct {
	decimal.NullDecimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{decimal.NewNullDecimal(d)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Decimal.String()), nil
}

// CoinInfo — плоская запись о монете.
type CoinInfo struct {
	ID              *string `json:"id"`
	Symbol          *string `json:"symbol"`
	Name            *string `json:"name"`
	Image           *string `json:"image"`
	CurrentPriceUSD Amount  `json:"current_price_usd"`
	MarketCapUSD    Amount  `json:"market_cap_usd"`
	PriceChange24h  Amount  `json:"price_change_24h"`
	Homepage        *string `json:"homepage"`
}

// coinResponse описывает нужную часть ответа /coins/{id}. Любой уровень может отсутствовать.
type coinResponse struct {
	ID     *string `json:"id"`
	Symbol *string `json:"symbol"`
	Name   *string `json:"name"`
	Image  *struct {
		Large *string `json:"large"`
	} `json:"image"`
	MarketData *struct {
		CurrentPrice             map[string]Amount `json:"current_price"`
		MarketCap                map[string]Amount `json:"market_cap"`
		PriceChangePercentage24h Amount            `json:"price_change_percentage_24h"`
	} `json:"market_data"`
	Links *struct {
		Homepage []*string `json:"homepage"`
	} `json:"links"`
}

func (r *coinResponse) normalize() *CoinInfo {
	info := &CoinInfo{
		ID:     r.ID,
		Symbol: r.Symbol,
		Name:   r.Name,
	}

	if r.Image != nil {
		info.Image = r.Image.Large
	}

	if md := r.MarketData; md != nil {
		info.CurrentPriceUSD = md.CurrentPrice[DefaultVsCurrency]
		info.MarketCapUSD = md.MarketCap[DefaultVsCurrency]
		info.PriceChange24h = md.PriceChangePercentage24h
	}

	if r.Links != nil && len(r.Links.Homepage) > 0 {
		if first := r.Links.Homepage[0]; first != nil && *first != "" {
			info.Homepage = first
		}
	}

	return info
}
