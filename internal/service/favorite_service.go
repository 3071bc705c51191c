package service

import (
	"context"

	"github.com/ignatzorin/cryptofav-backend/internal/models"
	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
	"github.com/ignatzorin/cryptofav-backend/internal/repository"
	"github.com/ignatzorin/cryptofav-backend/internal/validation"
)

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.FavoriteView, error)
	FindByUserAndCoin(ctx context.Context, userID, coinID int64) (*models.Favorite, error)
	GetOwned(ctx context.Context, id, userID int64) (*models.Favorite, error)
	Add(ctx context.Context, userID, coinID int64) (*models.FavoriteView, error)
	UpdateCoin(ctx context.Context, id, coinID int64) error
	GetView(ctx context.Context, id int64) (*models.FavoriteView, error)
	Remove(ctx context.Context, id, userID int64) error
}

type CoinRepository interface {
	GetBySymbol(ctx context.Context, symbol string) (*models.Coin, error)
	List(ctx context.Context) ([]models.Coin, error)
}

type FavoriteService struct {
	favorites FavoriteRepository
	coins     CoinRepository
}

func NewFavoriteService(favorites FavoriteRepository, coins CoinRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, coins: coins}
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID int64) ([]models.FavoriteView, error) {
	items, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to load favourites")
	}
	return items, nil
}

// AddFavorite добавляет монету в избранное пользователя.
// Проверка дубликата и вставка - два отдельных выражения; вставка дополнительно защищена условием NOT EXISTS.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID int64, symbol string) (*models.FavoriteView, error) {
	coin, err := s.findCoin(ctx, symbol)
	if err != nil {
		return nil, err
	}

	_, err = s.favorites.FindByUserAndCoin(ctx, userID, coin.ID)
	switch {
	case err == nil:
		return nil, apperror.ErrFavoriteExists
	case !repository.IsNotFound(err):
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to check favourites")
	}

	view, err := s.favorites.Add(ctx, userID, coin.ID)
	if err != nil {
		if repository.IsAlreadyExists(err) {
			return nil, apperror.ErrFavoriteExists
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to add favourite")
	}
	return view, nil
}

// UpdateFavorite переназначает монету у избранного. Дубликаты при обновлении не проверяются.
func (s *FavoriteService) UpdateFavorite(ctx context.Context, userID, favoriteID int64, symbol string) (*models.FavoriteView, error) {
	normalized := validation.NormalizeSymbol(symbol)
	if err := validation.ValidateSymbol(normalized); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if _, err := s.favorites.GetOwned(ctx, favoriteID, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrFavoriteNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to load favourite")
	}

	coin, err := s.findCoin(ctx, normalized)
	if err != nil {
		return nil, err
	}

	if err := s.favorites.UpdateCoin(ctx, favoriteID, coin.ID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrFavoriteNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to update favourite")
	}

	view, err := s.favorites.GetView(ctx, favoriteID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrFavoriteNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to load favourite")
	}
	return view, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, favoriteID int64) error {
	if err := s.favorites.Remove(ctx, favoriteID, userID); err != nil {
		if repository.IsNotFound(err) {
			return apperror.ErrFavoriteNotFound
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to remove favourite")
	}
	return nil
}

// ListCoins возвращает справочник монет, которые можно добавить в избранное.
func (s *FavoriteService) ListCoins(ctx context.Context) ([]models.Coin, error) {
	coins, err := s.coins.List(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to load coins")
	}
	return coins, nil
}

func (s *FavoriteService) findCoin(ctx context.Context, symbol string) (*models.Coin, error) {
	symbol = validation.NormalizeSymbol(symbol)
	if err := validation.ValidateSymbol(symbol); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	coin, err := s.coins.GetBySymbol(ctx, symbol)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.CoinNotFound(symbol)
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to look up coin")
	}
	return coin, nil
}
