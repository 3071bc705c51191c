package repository

import (
	"context"
	"fmt"

	"github.com/ignatzorin/cryptofav-backend/internal/db"
	"github.com/ignatzorin/cryptofav-backend/internal/models"
	"github.com/ignatzorin/cryptofav-backend/internal/repository/common"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = fmt.Errorf("user %w", common.ErrNotFound)

// UserRepository отвечает за таблицу users.
type UserRepository struct {
	store *db.Store
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(store *db.Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := db.QueryOne[models.User](ctx, r.store, `SELECT id, username, email FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
