package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignatzorin/cryptofav-backend/internal/db"
	"github.com/ignatzorin/cryptofav-backend/internal/models"
	"github.com/ignatzorin/cryptofav-backend/internal/repository/common"
)

var (
	ErrFavoriteNotFound = fmt.Errorf("favorite %w", common.ErrNotFound)
	ErrFavoriteExists   = fmt.Errorf("favorite %w", common.ErrAlreadyExists)
)

const favoriteViewColumns = `
	SELECT f.id, c.symbol, c.name, f.added_at
	FROM favourites f
	JOIN coins c ON f.coin_id = c.id
`

type FavoriteRepository struct {
	store *db.Store
}

func NewFavoriteRepository(store *db.Store) *FavoriteRepository {
	return &FavoriteRepository{store: store}
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]models.FavoriteView, error) {
	return db.QueryAll[models.FavoriteView](ctx, r.store, favoriteViewColumns+`
		WHERE f.user_id = $1
		ORDER BY f.added_at DESC, f.id DESC
	`, userID)
}

func (r *FavoriteRepository) FindByUserAndCoin(ctx context.Context, userID, coinID int64) (*models.Favorite, error) {
	fav, err := db.QueryOne[models.Favorite](ctx, r.store, `
		SELECT id, user_id, coin_id, added_at FROM favourites WHERE user_id = $1 AND coin_id = $2
	`, userID, coinID)
	if err != nil {
		return nil, err
	}
	if fav == nil {
		return nil, ErrFavoriteNotFound
	}
	return fav, nil
}

func (r *FavoriteRepository) GetOwned(ctx context.Context, id, userID int64) (*models.Favorite, error) {
	fav, err := db.QueryOne[models.Favorite](ctx, r.store, `
		SELECT id, user_id, coin_id, added_at FROM favourites WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return nil, err
	}
	if fav == nil {
		return nil, ErrFavoriteNotFound
	}
	return fav, nil
}

// Add вставляет избранное, только если пары (user, coin) ещё нет, и возвращает новую строку.
func (r *FavoriteRepository) Add(ctx context.Context, userID, coinID int64) (*models.FavoriteView, error) {
	n, err := r.store.Execute(ctx, `
		INSERT INTO favourites (user_id, coin_id)
		SELECT CAST($1 AS INTEGER), CAST($2 AS INTEGER)
		WHERE NOT EXISTS (
			SELECT 1 FROM favourites WHERE user_id = $1 AND coin_id = $2
		)
	`, userID, coinID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrFavoriteExists
	}

	view, err := db.QueryOne[models.FavoriteView](ctx, r.store, favoriteViewColumns+`
		WHERE f.user_id = $1 AND f.coin_id = $2
		ORDER BY f.id DESC
		LIMIT 1
	`, userID, coinID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrFavoriteNotFound
	}
	return view, nil
}

func (r *FavoriteRepository) UpdateCoin(ctx context.Context, id, coinID int64) error {
	n, err := r.store.Execute(ctx, `UPDATE favourites SET coin_id = $1 WHERE id = $2`, coinID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) GetView(ctx context.Context, id int64) (*models.FavoriteView, error) {
	view, err := db.QueryOne[models.FavoriteView](ctx, r.store, favoriteViewColumns+`WHERE f.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrFavoriteNotFound
	}
	return view, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, id, userID int64) error {
	n, err := r.store.Execute(ctx, `DELETE FROM favourites WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, common.ErrAlreadyExists)
}
