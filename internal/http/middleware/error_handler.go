package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/cryptofav-backend/internal/dto"
	"github.com/ignatzorin/cryptofav-backend/internal/logger"
	"github.com/ignatzorin/cryptofav-backend/internal/pkg/apperror"
)

const internalErrorMessage = "internal server error"

// ErrorHandler обрабатывает ошибки централизованно.
// Ошибки клиента и апстрима отдаются как есть, внутренние маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Ответ уже отправлен хендлером
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, message := resolveError(err)

		fields := logrus.Fields{
			"error":      err.Error(),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"status":     status,
			"request_id": c.GetString(ContextRequestIDKey),
		}
		if status >= http.StatusInternalServerError {
			logger.Log.WithFields(fields).Error("Request error")
		} else {
			logger.Log.WithFields(fields).Debug("Request rejected")
		}

		c.JSON(status, dto.ErrorResponse{Error: message})
	}
}

func resolveError(err error) (int, string) {
	appErr, ok := apperror.As(err)
	if !ok {
		return http.StatusInternalServerError, internalErrorMessage
	}

	switch appErr.Code {
	case apperror.ErrCodeInternal, apperror.ErrCodeDatabaseError:
		return appErr.HTTPStatus, internalErrorMessage
	}
	return appErr.HTTPStatus, appErr.Message
}

// Recovery превращает panic в 500 с единым телом ошибки.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.WithFields(logrus.Fields{
			"panic":      recovered,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		}).Error("Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: internalErrorMessage})
	})
}
