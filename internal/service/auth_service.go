package service

import (
	"context"

	"github.com/ignatzorin/cryptofav-backend/internal/models"
	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
	"github.com/ignatzorin/cryptofav-backend/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService выдаёт токены существующим пользователям.
type AuthService struct {
	users  UserRepository
	tokens *TokenManager
}

func NewAuthService(users UserRepository, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) IssueToken(ctx context.Context, userID int64) (*AccessToken, error) {
	if userID <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "user_id must be a positive integer")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "failed to load user")
	}

	tok, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to issue token")
	}
	return tok, nil
}
