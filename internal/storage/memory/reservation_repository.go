package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// reservationRepositoryInMemory — in-memory реализация ReservationRepository.
type reservationRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[string]domain.Reservation // ключ — reservationUid
}

// NewReservationRepository возвращает in-memory репозиторий броней.
func NewReservationRepository() domain.ReservationRepository {
	return &reservationRepositoryInMemory{
		nextID: 1,
		items:  make(map[string]domain.Reservation),
	}
}

// Create сохраняет новую бронь.
func (r *reservationRepositoryInMemory) Create(reservation domain.Reservation) (domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservation.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = now
	}
	reservation.UpdatedAt = now
	r.items[reservation.ReservationUID] = reservation
	return reservation, nil
}

// GetByUID возвращает бронь или ErrReservationNotFound.
func (r *reservationRepositoryInMemory) GetByUID(reservationUID string) (domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, ok := r.items[reservationUID]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return reservation, nil
}

// ListByUsername возвращает все брони пользователя, новые первыми.
func (r *reservationRepositoryInMemory) ListByUsername(username string) ([]domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Reservation, 0)
	for _, res := range r.items {
		if res.Username != username {
			continue
		}
		result = append(result, res)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// UpdateStatus меняет статус брони.
func (r *reservationRepositoryInMemory) UpdateStatus(reservationUID string, status domain.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservation, ok := r.items[reservationUID]
	if !ok {
		return domain.ErrReservationNotFound
	}
	reservation.Status = status
	reservation.UpdatedAt = time.Now().UTC()
	r.items[reservationUID] = reservation
	return nil
}

var _ domain.ReservationRepository = (*reservationRepositoryInMemory)(nil)
