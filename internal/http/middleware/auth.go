package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
)

// ContextUserIDKey - ключ id пользователя (int64) в gin.Context.
const ContextUserIDKey = "userID"

// UserHeader - заголовок с id пользователя для доверенных клиентов.
const UserHeader = "X-User-Id"

// TokenParser проверяет access токен и возвращает id пользователя.
type TokenParser interface {
	ParseAccess(token string) (int64, error)
}

// IdentityMiddleware определяет вызывающего пользователя.
// Bearer токен имеет приоритет; без него при trustHeader используется X-User-Id.
func IdentityMiddleware(tokens TokenParser, trustHeader bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth := c.GetHeader("Authorization"); auth != "" {
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || tokens == nil {
				abortWithError(c, apperror.ErrInvalidToken)
				return
			}
			userID, err := tokens.ParseAccess(strings.TrimSpace(raw))
			if err != nil {
				abortWithError(c, apperror.ErrInvalidToken)
				return
			}
			c.Set(ContextUserIDKey, userID)
			c.Next()
			return
		}

		if !trustHeader {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(strings.TrimSpace(c.GetHeader(UserHeader)), 10, 64)
		if err != nil || userID <= 0 {
			abortWithError(c, apperror.ErrInvalidUserHeader)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// abortWithError прерывает цепочку; ответ рендерит ErrorHandler.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
