package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository создаёт PostgreSQL-реализацию ReservationRepository.
func NewReservationRepository(store *Store) domain.ReservationRepository {
	return &reservationRepository{db: store.DB()}
}

func (r *reservationRepository) Create(reservation domain.Reservation) (domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reservations (
			reservation_uid, username, payment_uid, hotel_id, status, start_date, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`,
		reservation.ReservationUID, reservation.Username, reservation.PaymentUID,
		reservation.HotelID, string(reservation.Status),
		reservation.StartDate, reservation.EndDate,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}

	return reservation, nil
}

func (r *reservationRepository) GetByUID(reservationUID string) (domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	reservation, err := scanReservation(r.db.QueryRowContext(ctx, `
		SELECT id, reservation_uid, username, payment_uid, hotel_id, status,
		       start_date, end_date, created_at, updated_at
		FROM reservations
		WHERE reservation_uid = $1
	`, reservationUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		return domain.Reservation{}, fmt.Errorf("select reservation: %w", err)
	}

	return reservation, nil
}

func (r *reservationRepository) ListByUsername(username string) ([]domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, reservation_uid, username, payment_uid, hotel_id, status,
		       start_date, end_date, created_at, updated_at
		FROM reservations
		WHERE username = $1
		ORDER BY created_at DESC, id DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("select reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) UpdateStatus(reservationUID string, status domain.ReservationStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE reservations
		SET status = $2, updated_at = NOW()
		WHERE reservation_uid = $1
	`, reservationUID, string(status))
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation status affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (domain.Reservation, error) {
	var reservation domain.Reservation
	var status string
	err := row.Scan(
		&reservation.ID, &reservation.ReservationUID, &reservation.Username,
		&reservation.PaymentUID, &reservation.HotelID, &status,
		&reservation.StartDate, &reservation.EndDate,
		&reservation.CreatedAt, &reservation.UpdatedAt,
	)
	if err != nil {
		return domain.Reservation{}, err
	}
	reservation.Status = domain.ReservationStatus(status)
	return reservation, nil
}
