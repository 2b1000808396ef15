package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/recyconnect/backend/internal/logger"
	"github.com/recyconnect/backend/internal/repository"
	"github.com/recyconnect/backend/internal/service"
)

// notFoundMessages сопоставляет сентинелы хранилища с ответами клиенту.
var notFoundMessages = map[error]string{
	repository.ErrUserNotFound:         "пользователь не найден",
	repository.ErrItemNotFound:         "объявление не найдено",
	repository.ErrItemImageNotFound:    "изображение не найдено",
	repository.ErrDonatedItemNotFound:  "пожертвованная вещь не найдена",
	repository.ErrReportedItemNotFound: "запись не найдена",
	repository.ErrConcernNotFound:      "обращение не найдено",
	repository.ErrFlagNotFound:         "жалоба не найдена",
	repository.ErrMessageNotFound:      "сообщение не найдено",
	repository.ErrNotificationNotFound: "уведомление не найдено",
}

// ErrorHandler обрабатывает ошибки централизованно.
// Маскирует внутренние ошибки и возвращает понятные сообщения клиенту.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			statusCode := http.StatusInternalServerError
			message := "внутренняя ошибка сервера"

			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			switch {
			case matchNotFound(err.Err, &message):
				statusCode = http.StatusNotFound
			case errors.Is(err.Err, service.ErrForbidden):
				statusCode = http.StatusForbidden
				message = service.ErrForbidden.Error()
			case errors.Is(err.Err, service.ErrInvalidTransition),
				errors.Is(err.Err, service.ErrAlreadyClaimed),
				errors.Is(err.Err, service.ErrNotClaimed),
				errors.Is(err.Err, service.ErrDuplicateFlag):
				statusCode = http.StatusConflict
				message = err.Error()
			case err.Error() != "" && !containsInternalKeywords(err.Error()):
				message = err.Error()
				statusCode = http.StatusBadRequest
			}

			c.JSON(statusCode, gin.H{"error": message})
		}
	}
}

func matchNotFound(err error, message *string) bool {
	for sentinel, msg := range notFoundMessages {
		if errors.Is(err, sentinel) {
			*message = msg
			return true
		}
	}
	return false
}

// containsInternalKeywords проверяет, содержит ли строка ключевые слова внутренних ошибок.
func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	lower := strings.ToLower(s)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
