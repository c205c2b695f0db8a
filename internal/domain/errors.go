package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrHotelNotFound возвращается, если отель не найден в каталоге.
	ErrHotelNotFound = errors.New("hotel not found")
	// ErrReservationNotFound возвращается, если бронь не найдена или принадлежит другому пользователю.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrPaymentNotFound возвращается, если платёж не найден.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrLoyaltyNotFound возвращается, если у пользователя ещё нет аккаунта лояльности.
	ErrLoyaltyNotFound = errors.New("loyalty account not found")
	// Ошибка отсутствующего имени пользователя.
	ErrUsernameRequired = errors.New("username is required")
	// Ошибка отсутствующего идентификатора отеля.
	ErrHotelUIDRequired = errors.New("hotelUid is required")
	// Ошибка отсутствующего идентификатора платежа.
	ErrPaymentUIDRequired = errors.New("paymentUid is required")
	// Ошибка порядка дат: дата выезда должна быть строго позже даты заезда.
	ErrDateOrder = errors.New("endDate must be after startDate")
	// Ошибка отрицательной суммы платежа.
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка некорректной цены за ночь в каталоге.
	ErrHotelPriceInvalid = errors.New("hotel price must be greater than zero")
	// ErrPaymentStateConflict — попытка недопустимого перехода статуса платежа (PAID → терминальные).
	ErrPaymentStateConflict = errors.New("payment status transition not allowed")
	// ErrLedgerUnavailable — таймаут, обрыв соединения или неожиданный ответ одного из сервисов.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
)

// FieldError описывает одну ошибку валидации входных данных.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError агрегирует ошибки валидации запроса; маппится на HTTP 400.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Error))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError создаёт ошибку валидации для одного поля.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Error: message}}}
}

// AsValidation извлекает *ValidationError из цепочки ошибок.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsNotFound проверяет, относится ли ошибка к семейству not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrHotelNotFound) ||
		errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrLoyaltyNotFound)
}

// IsUnavailable проверяет, является ли ошибка недоступностью downstream-сервиса.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrLedgerUnavailable)
}
