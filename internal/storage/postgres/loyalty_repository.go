package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

type loyaltyRepository struct {
	db *sql.DB
}

// NewLoyaltyRepository создаёт PostgreSQL-реализацию LoyaltyRepository.
func NewLoyaltyRepository(store *Store) domain.LoyaltyRepository {
	return &loyaltyRepository{db: store.DB()}
}

func (r *loyaltyRepository) GetByUsername(username string) (domain.LoyaltyAccount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var account domain.LoyaltyAccount
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, reservation_count, status, discount, created_at, updated_at
		FROM loyalty_accounts
		WHERE username = $1
	`, username).Scan(
		&account.ID, &account.Username, &account.ReservationCount,
		&status, &account.Discount, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LoyaltyAccount{}, domain.ErrLoyaltyNotFound
		}
		return domain.LoyaltyAccount{}, fmt.Errorf("select loyalty account: %w", err)
	}
	account.Status = domain.LoyaltyLevel(status)

	return account, nil
}

func (r *loyaltyRepository) ApplyDelta(username string, delta int) (domain.LoyaltyAccount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	initial := delta
	if initial < 0 {
		initial = 0
	}
	initialStatus, initialDiscount := domain.LevelForCount(initial)

	// Дельта применяется одним upsert-ом: конфликтующие записи по одному
	// username сериализуются постгресом на уровне строки, инкременты не теряются.
	// Уровень пересчитывается от нового счётчика там же.
	account := domain.LoyaltyAccount{Username: username}
	var status string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO loyalty_accounts (username, reservation_count, status, discount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE
		SET reservation_count = GREATEST(0, loyalty_accounts.reservation_count + $5),
		    status = CASE
		        WHEN GREATEST(0, loyalty_accounts.reservation_count + $5) >= 20 THEN 'GOLD'
		        WHEN GREATEST(0, loyalty_accounts.reservation_count + $5) >= 10 THEN 'SILVER'
		        ELSE 'BRONZE'
		    END,
		    discount = CASE
		        WHEN GREATEST(0, loyalty_accounts.reservation_count + $5) >= 20 THEN 10
		        WHEN GREATEST(0, loyalty_accounts.reservation_count + $5) >= 10 THEN 5
		        ELSE 0
		    END,
		    updated_at = NOW()
		RETURNING id, reservation_count, status, discount, created_at, updated_at
	`,
		username, initial, string(initialStatus), initialDiscount, delta,
	).Scan(
		&account.ID, &account.ReservationCount, &status,
		&account.Discount, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return domain.LoyaltyAccount{}, fmt.Errorf("apply loyalty delta: %w", err)
	}
	account.Status = domain.LoyaltyLevel(status)

	return account, nil
}
