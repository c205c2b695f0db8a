package memory

import (
	"sync"
	"time"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// paymentRepositoryInMemory — in-memory реализация PaymentRepository.
type paymentRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[string]domain.Payment // ключ — paymentUid
}

// NewPaymentRepository возвращает in-memory репозиторий платежей.
func NewPaymentRepository() domain.PaymentRepository {
	return &paymentRepositoryInMemory{
		nextID: 1,
		items:  make(map[string]domain.Payment),
	}
}

// Create сохраняет новый платёж.
func (r *paymentRepositoryInMemory) Create(payment domain.Payment) (domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now
	r.items[payment.PaymentUID] = payment
	return payment, nil
}

// GetByUID возвращает платёж или ErrPaymentNotFound.
func (r *paymentRepositoryInMemory) GetByUID(paymentUID string) (domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.items[paymentUID]
	if !ok {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	return payment, nil
}

// UpdateStatus меняет статус платежа.
func (r *paymentRepositoryInMemory) UpdateStatus(paymentUID string, status domain.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.items[paymentUID]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	payment.Status = status
	payment.UpdatedAt = time.Now().UTC()
	r.items[paymentUID] = payment
	return nil
}

var _ domain.PaymentRepository = (*paymentRepositoryInMemory)(nil)
