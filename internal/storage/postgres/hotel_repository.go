package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type hotelRepository struct {
	db *sql.DB
}

// NewHotelRepository создаёт PostgreSQL-реализацию HotelRepository.
func NewHotelRepository(store *Store) domain.HotelRepository {
	return &hotelRepository{db: store.DB()}
}

func (r *hotelRepository) Create(hotel domain.Hotel) (domain.Hotel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO hotels (hotel_uid, name, country, city, address, stars, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		hotel.HotelUID, hotel.Name, hotel.Country, hotel.City,
		hotel.Address, hotel.Stars, hotel.Price,
	).Scan(&hotel.ID, &hotel.CreatedAt)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("insert hotel: %w", err)
	}

	return hotel, nil
}

func (r *hotelRepository) List(page, size int) ([]domain.Hotel, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count hotels: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, hotel_uid, name, country, city, address, stars, price, created_at
		FROM hotels
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("select hotels: %w", err)
	}
	defer rows.Close()

	hotels := make([]domain.Hotel, 0, size)
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(
			&h.ID, &h.HotelUID, &h.Name, &h.Country, &h.City,
			&h.Address, &h.Stars, &h.Price, &h.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate hotels: %w", err)
	}

	return hotels, total, nil
}

func (r *hotelRepository) GetByUID(hotelUID string) (domain.Hotel, error) {
	return r.getBy(`hotel_uid = $1`, hotelUID)
}

func (r *hotelRepository) GetByID(id int64) (domain.Hotel, error) {
	return r.getBy(`id = $1`, id)
}

func (r *hotelRepository) getBy(where string, arg interface{}) (domain.Hotel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var h domain.Hotel
	err := r.db.QueryRowContext(ctx, `
		SELECT id, hotel_uid, name, country, city, address, stars, price, created_at
		FROM hotels
		WHERE `+where,
		arg,
	).Scan(
		&h.ID, &h.HotelUID, &h.Name, &h.Country, &h.City,
		&h.Address, &h.Stars, &h.Price, &h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hotel{}, domain.ErrHotelNotFound
		}
		return domain.Hotel{}, fmt.Errorf("select hotel: %w", err)
	}

	return h, nil
}
