package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/cryptofav-backend/internal/models"
	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
	"github.com/ignatzorin/cryptofav-backend/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_IssueToken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := NewTokenManager("secret", time.Minute)
	svc := NewAuthService(users, tokens)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1, Username: sql.NullString{String: "testuser", Valid: true}}, nil)

	tok, err := svc.IssueToken(ctx, 1)
	require.NoError(t, err)

	userID, err := tokens.ParseAccess(tok.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 1, userID)
}

func TestAuthService_IssueToken_UnknownUser(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewAuthService(users, NewTokenManager("secret", time.Minute))
	ctx := context.Background()

	users.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrUserNotFound)
	users.On("GetByID", ctx, int64(10)).Return(nil, errors.New("database is locked"))

	_, err := svc.IssueToken(ctx, 9)
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)

	_, err = svc.IssueToken(ctx, 10)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ErrCodeDatabaseError, appErr.Code)

	_, err = svc.IssueToken(ctx, 0)
	assert.True(t, apperror.IsValidation(err))
}
