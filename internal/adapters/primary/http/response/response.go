package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "internal server error"

// OK успешный ответ в общем конверте
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// Fail ответ с ошибкой, текст уходит клиенту как есть
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// StatusFor код ответа для ошибки usecase
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidBirthData):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error переводит ошибку usecase в ответ.
// Бизнес-ошибки уже залогированы в usecase, остальные логируются здесь и наружу не раскрываются
func Error(c *gin.Context, log *slog.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
		Fail(c, status, internalErrorMessage)
		return
	}

	if !domain.IsBusinessError(err) {
		log.Debug("request rejected",
			"error", err,
			"status", status,
			"path", c.FullPath(),
		)
	}
	Fail(c, status, err.Error())
}
