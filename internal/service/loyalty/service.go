package loyalty

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// Service реализует loyalty-сервис: один аккаунт на пользователя,
// уровень — чистая функция счётчика броней.
type Service struct {
	accounts domain.LoyaltyRepository
	logger   *log.Entry
}

// NewService конструирует сервис с зависимостями.
func NewService(accounts domain.LoyaltyRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "loyalty-service")
	}
	return &Service{accounts: accounts, logger: logger}
}

// Get возвращает аккаунт пользователя или ErrLoyaltyNotFound.
func (s *Service) Get(username string) (domain.LoyaltyAccount, error) {
	return s.accounts.GetByUsername(username)
}

// Adjust применяет delta к счётчику броней и пересчитывает уровень.
// Аккаунт создаётся лениво при первом изменении. Сама мутация атомарна
// на уровне репозитория: параллельные брони одного пользователя не
// теряют инкрементов.
func (s *Service) Adjust(username string, delta int) (domain.LoyaltyAccount, error) {
	if username == "" {
		return domain.LoyaltyAccount{}, domain.NewValidationError("username", domain.ErrUsernameRequired.Error())
	}

	saved, err := s.accounts.ApplyDelta(username, delta)
	if err != nil {
		return domain.LoyaltyAccount{}, fmt.Errorf("apply loyalty delta: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"username": username,
		"delta":    delta,
		"count":    saved.ReservationCount,
		"status":   saved.Status,
	}).Info("loyalty account adjusted")
	return saved, nil
}
