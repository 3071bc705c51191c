package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
)

// ContextFavoriteIDKey - проверенный id избранного (int64).
const ContextFavoriteIDKey = "favoriteID"

var ErrInvalidFavoriteID = apperror.New(apperror.ErrCodeBadRequest, "invalid favourite id")

// PositiveIDParam проверяет, что параметр пути - положительное целое.
// Использование: router.PUT("/coins/:id", PositiveIDParam("id"), handler.Update)
func PositiveIDParam(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
		if err != nil || id <= 0 {
			abortWithError(c, ErrInvalidFavoriteID)
			return
		}

		c.Set(ContextFavoriteIDKey, id)
		c.Next()
	}
}
