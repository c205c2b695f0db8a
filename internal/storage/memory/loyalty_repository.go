package memory

import (
	"sync"
	"time"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// loyaltyRepositoryInMemory — in-memory реализация LoyaltyRepository.
type loyaltyRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[string]domain.LoyaltyAccount // ключ — username
}

// NewLoyaltyRepository возвращает in-memory репозиторий аккаунтов лояльности.
func NewLoyaltyRepository() domain.LoyaltyRepository {
	return &loyaltyRepositoryInMemory{
		nextID: 1,
		items:  make(map[string]domain.LoyaltyAccount),
	}
}

// GetByUsername возвращает аккаунт или ErrLoyaltyNotFound.
func (r *loyaltyRepositoryInMemory) GetByUsername(username string) (domain.LoyaltyAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.items[username]
	if !ok {
		return domain.LoyaltyAccount{}, domain.ErrLoyaltyNotFound
	}
	return account, nil
}

// ApplyDelta атомарно применяет delta к счётчику под общим локом,
// лениво создавая аккаунт.
func (r *loyaltyRepositoryInMemory) ApplyDelta(username string, delta int) (domain.LoyaltyAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.items[username]
	if !ok {
		account = domain.NewLoyaltyAccount(username)
		account.ID = r.nextID
		r.nextID++
		account.CreatedAt = time.Now().UTC()
	}
	account.ApplyDelta(delta)
	account.UpdatedAt = time.Now().UTC()
	r.items[username] = account
	return account, nil
}

var _ domain.LoyaltyRepository = (*loyaltyRepositoryInMemory)(nil)
