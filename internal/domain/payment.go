package domain

import "time"

// PaymentStatus описывает состояние платежа.
type PaymentStatus string

const (
	// PaymentStatusPaid — средства списаны; единственный начальный статус.
	PaymentStatusPaid PaymentStatus = "PAID"
	// PaymentStatusCanceled — платёж аннулирован при отмене брони; терминальный.
	PaymentStatusCanceled PaymentStatus = "CANCELED"
	// PaymentStatusReversed — платёж сторнирован; терминальный.
	PaymentStatusReversed PaymentStatus = "REVERSED"
)

// Payment описывает платёж, привязанный к брони через paymentUid.
// CANCELED — чистый флаг статуса, финансовый возврат здесь не моделируется.
type Payment struct {
	ID         int64
	PaymentUID string
	Status     PaymentStatus
	Price      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate проверяет корректность полей платежа.
func (p *Payment) Validate() []error {
	var errs []error

	if p.PaymentUID == "" {
		errs = append(errs, ErrPaymentUIDRequired)
	}
	if p.Price < 0 {
		errs = append(errs, ErrPriceNegative)
	}

	return errs
}

// CanTransition проверяет допустимость перехода статуса.
// Разрешены только PAID → CANCELED и PAID → REVERSED.
func (p *Payment) CanTransition(next PaymentStatus) bool {
	if p.Status != PaymentStatusPaid {
		return false
	}
	return next == PaymentStatusCanceled || next == PaymentStatusReversed
}
