package common

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/cryptofav-backend/internal/dto"
	"github.com/ignatzorin/cryptofav-backend/internal/http/middleware"
	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
)

// CurrentUserID достаёт id пользователя, установленный IdentityMiddleware.
func CurrentUserID(c *gin.Context) (int64, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	userID, ok := raw.(int64)
	if !ok || userID <= 0 {
		return 0, apperror.ErrUnauthorized
	}

	return userID, nil
}

// FavoriteIDParam достаёт id, проверенный PositiveIDParam.
func FavoriteIDParam(c *gin.Context) (int64, error) {
	raw, exists := c.Get(middleware.ContextFavoriteIDKey)
	if !exists {
		return 0, middleware.ErrInvalidFavoriteID
	}

	id, ok := raw.(int64)
	if !ok {
		return 0, middleware.ErrInvalidFavoriteID
	}
	return id, nil
}

// BindJSON читает тело запроса; любая ошибка разбора - 400 с единым сообщением.
func BindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, apperror.ErrInvalidBody.Message)
	}
	return nil
}

// Fail передаёт ошибку в ErrorHandler.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// RespondItems оборачивает список в {"items": [...]}.
func RespondItems[T any](c *gin.Context, statusCode int, items []T) {
	c.JSON(statusCode, dto.NewItemsResponse(items))
}
