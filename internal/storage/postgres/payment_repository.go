package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository создаёт PostgreSQL-реализацию PaymentRepository.
func NewPaymentRepository(store *Store) domain.PaymentRepository {
	return &paymentRepository{db: store.DB()}
}

func (r *paymentRepository) Create(payment domain.Payment) (domain.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (payment_uid, status, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`,
		payment.PaymentUID, string(payment.Status), payment.Price,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("insert payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) GetByUID(paymentUID string) (domain.Payment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var payment domain.Payment
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, payment_uid, status, price, created_at, updated_at
		FROM payments
		WHERE payment_uid = $1
	`, paymentUID).Scan(
		&payment.ID, &payment.PaymentUID, &status, &payment.Price,
		&payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, domain.ErrPaymentNotFound
		}
		return domain.Payment{}, fmt.Errorf("select payment: %w", err)
	}
	payment.Status = domain.PaymentStatus(status)

	return payment, nil
}

func (r *paymentRepository) UpdateStatus(paymentUID string, status domain.PaymentStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = $2, updated_at = NOW()
		WHERE payment_uid = $1
	`, paymentUID, string(status))
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update payment status affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}
