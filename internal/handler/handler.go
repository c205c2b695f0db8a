// Package handler содержит HTTP-обработчики на echo: публичный API гейтвея
// и внутренние API трёх сервисов. Доменные ошибки переводятся в единый
// формат ответа {message, errors[]}.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// HeaderUserName — заголовок, которым передаётся личность пользователя.
// Аутентификации нет: значение доверяется как есть.
const HeaderUserName = "X-User-Name"

// HeaderLoyaltyDegraded выставляется гейтвеем, когда бронь создана,
// но счётчик лояльности обновить не удалось.
const HeaderLoyaltyDegraded = "X-Loyalty-Degraded"

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// writeError переводит доменную ошибку в HTTP-ответ.
func writeError(c echo.Context, logger *log.Entry, err error) error {
	if vErr, ok := domain.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: vErr.Fields})
	}
	if domain.IsNotFound(err) {
		return c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	}
	if errors.Is(err, domain.ErrPaymentStateConflict) {
		return c.JSON(http.StatusConflict, errorResponse{Message: err.Error()})
	}
	if domain.IsUnavailable(err) {
		logger.WithError(err).Error("downstream service unavailable")
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Message: "service temporarily unavailable"})
	}

	logger.WithError(err).Error("request failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal error"})
}

// username извлекает X-User-Name; пустой заголовок — ошибка валидации.
func username(c echo.Context) (string, error) {
	name := c.Request().Header.Get(HeaderUserName)
	if name == "" {
		return "", domain.NewValidationError(HeaderUserName, "header is required")
	}
	return name, nil
}
