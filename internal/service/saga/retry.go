package saga

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// RetryConfig задаёт политику повторов для read-only шагов саги.
// Повторяются только сбои доступности; бизнес-ошибки (not found, валидация)
// возвращаются сразу.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig возвращает конфигурацию по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
	}
}

func (o *orchestrator) getHotelWithRetry(ctx context.Context, hotelUID string) (domain.Hotel, error) {
	var hotel domain.Hotel
	err := o.withReadRetry(ctx, "get hotel", func(ctx context.Context) error {
		var err error
		hotel, err = o.reservations.GetHotel(ctx, hotelUID)
		return err
	})
	return hotel, err
}

func (o *orchestrator) getLoyaltyWithRetry(ctx context.Context, username string) (domain.LoyaltyAccount, error) {
	var account domain.LoyaltyAccount
	err := o.withReadRetry(ctx, "get loyalty", func(ctx context.Context) error {
		var err error
		account, err = o.loyalty.Get(ctx, username)
		return err
	})
	return account, err
}

// withReadRetry повторяет read-only вызов с экспоненциальной задержкой, пока
// сервис недоступен. Записи не повторяются: у них нет гарантии идемпотентности.
func (o *orchestrator) withReadRetry(ctx context.Context, operation string, fn func(context.Context) error) error {
	delay := o.retry.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= o.retry.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !domain.IsUnavailable(lastErr) {
			return lastErr
		}
		if attempt == o.retry.MaxAttempts {
			break
		}

		o.logger.WithError(lastErr).WithFields(log.Fields{
			"operation": operation,
			"attempt":   attempt,
			"delay":     delay.String(),
		}).Warn("read-only step failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * o.retry.BackoffFactor)
		if delay > o.retry.MaxDelay {
			delay = o.retry.MaxDelay
		}
	}
	return lastErr
}
