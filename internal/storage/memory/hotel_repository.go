package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// hotelRepositoryInMemory — in-memory реализация HotelRepository.
type hotelRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[string]domain.Hotel // ключ — hotelUid
}

// NewHotelRepository возвращает in-memory каталог для локальной разработки и тестов.
func NewHotelRepository() domain.HotelRepository {
	return &hotelRepositoryInMemory{
		nextID: 1,
		items:  make(map[string]domain.Hotel),
	}
}

// Create сохраняет запись каталога, выдавая внутренний ключ.
func (r *hotelRepositoryInMemory) Create(hotel domain.Hotel) (domain.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hotel.ID = r.nextID
	r.nextID++
	if hotel.CreatedAt.IsZero() {
		hotel.CreatedAt = time.Now().UTC()
	}
	r.items[hotel.HotelUID] = hotel
	return hotel, nil
}

// List возвращает страницу каталога в порядке внутренних ключей и общий размер.
func (r *hotelRepositoryInMemory) List(page, size int) ([]domain.Hotel, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Hotel, 0, len(r.items))
	for _, h := range r.items {
		all = append(all, h)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	offset := page * size
	if offset >= total {
		return []domain.Hotel{}, total, nil
	}
	end := offset + size
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// GetByUID возвращает отель или ErrHotelNotFound.
func (r *hotelRepositoryInMemory) GetByUID(hotelUID string) (domain.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hotel, ok := r.items[hotelUID]
	if !ok {
		return domain.Hotel{}, domain.ErrHotelNotFound
	}
	return hotel, nil
}

// GetByID возвращает отель по внутреннему ключу или ErrHotelNotFound.
func (r *hotelRepositoryInMemory) GetByID(id int64) (domain.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.items {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrHotelNotFound
}

var _ domain.HotelRepository = (*hotelRepositoryInMemory)(nil)
