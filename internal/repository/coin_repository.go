package repository

import (
	"context"
	"fmt"

	"github.com/ignatzorin/cryptofav-backend/internal/db"
	"github.com/ignatzorin/cryptofav-backend/internal/models"
	"github.com/ignatzorin/cryptofav-backend/internal/repository/common"
)

var ErrCoinNotFound = fmt.Errorf("coin %w", common.ErrNotFound)

// CoinRepository читает справочник монет.
type CoinRepository struct {
	store *db.Store
}

func NewCoinRepository(store *db.Store) *CoinRepository {
	return &CoinRepository{store: store}
}

// GetBySymbol ищет монету по уже нормализованному символу.
func (r *CoinRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Coin, error) {
	coin, err := db.QueryOne[models.Coin](ctx, r.store, `SELECT id, symbol, name FROM coins WHERE symbol = $1`, symbol)
	if err != nil {
		return nil, err
	}
	if coin == nil {
		return nil, ErrCoinNotFound
	}
	return coin, nil
}

func (r *CoinRepository) List(ctx context.Context) ([]models.Coin, error) {
	return db.QueryAll[models.Coin](ctx, r.store, `SELECT id, symbol, name FROM coins ORDER BY id`)
}
