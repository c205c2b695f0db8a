package payment

import (
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// Service реализует payment-сервис: маленькая машина состояний PAID → {CANCELED, REVERSED}.
type Service struct {
	payments domain.PaymentRepository
	logger   *log.Entry
}

// NewService конструирует сервис с зависимостями.
func NewService(payments domain.PaymentRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "payment-service")
	}
	return &Service{payments: payments, logger: logger}
}

// Create проводит платёж на сумму price; новый платёж сразу в статусе PAID.
func (s *Service) Create(price int64) (domain.Payment, error) {
	payment := domain.Payment{
		PaymentUID: uuid.NewString(),
		Status:     domain.PaymentStatusPaid,
		Price:      price,
	}
	if errs := payment.Validate(); len(errs) > 0 {
		return domain.Payment{}, domain.NewValidationError("price", errs[0].Error())
	}

	created, err := s.payments.Create(payment)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("create payment: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"payment_uid": created.PaymentUID,
		"price":       created.Price,
	}).Info("payment created")
	return created, nil
}

// Get возвращает платёж по uid.
func (s *Service) Get(paymentUID string) (domain.Payment, error) {
	return s.payments.GetByUID(paymentUID)
}

// Cancel переводит платёж в CANCELED. Отмена уже отменённого платежа — no-op,
// отмена сторнированного — конфликт статусов.
func (s *Service) Cancel(paymentUID string) error {
	payment, err := s.payments.GetByUID(paymentUID)
	if err != nil {
		return err
	}

	if payment.Status == domain.PaymentStatusCanceled {
		s.logger.WithField("payment_uid", paymentUID).Debug("payment already canceled")
		return nil
	}
	if !payment.CanTransition(domain.PaymentStatusCanceled) {
		return fmt.Errorf("cancel payment %s from %s: %w", paymentUID, payment.Status, domain.ErrPaymentStateConflict)
	}

	if err := s.payments.UpdateStatus(paymentUID, domain.PaymentStatusCanceled); err != nil {
		return fmt.Errorf("cancel payment: %w", err)
	}

	s.logger.WithField("payment_uid", paymentUID).Info("payment canceled")
	return nil
}
