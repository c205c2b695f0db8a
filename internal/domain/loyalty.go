package domain

import "time"

// LoyaltyLevel — уровень скидки, производный от количества броней пользователя.
type LoyaltyLevel string

const (
	LoyaltyLevelBronze LoyaltyLevel = "BRONZE"
	LoyaltyLevelSilver LoyaltyLevel = "SILVER"
	LoyaltyLevelGold   LoyaltyLevel = "GOLD"
)

// Пороговые значения счётчика броней для уровней.
const (
	silverThreshold = 10
	goldThreshold   = 20
)

// Фиксированные проценты скидки по уровням.
const (
	DiscountBronze = 0
	DiscountSilver = 5
	DiscountGold   = 10
)

// LoyaltyAccount — одна запись на пользователя: счётчик броней и производный уровень.
type LoyaltyAccount struct {
	ID               int64
	Username         string
	ReservationCount int
	Status           LoyaltyLevel
	Discount         int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LevelForCount — чистая функция уровня от счётчика: [0,10) BRONZE,
// [10,20) SILVER, [20,∞) GOLD. Никакого гистерезиса нет.
func LevelForCount(count int) (LoyaltyLevel, int) {
	switch {
	case count >= goldThreshold:
		return LoyaltyLevelGold, DiscountGold
	case count >= silverThreshold:
		return LoyaltyLevelSilver, DiscountSilver
	default:
		return LoyaltyLevelBronze, DiscountBronze
	}
}

// NewLoyaltyAccount возвращает аккаунт начального уровня для пользователя.
func NewLoyaltyAccount(username string) LoyaltyAccount {
	status, discount := LevelForCount(0)
	return LoyaltyAccount{
		Username: username,
		Status:   status,
		Discount: discount,
	}
}

// ApplyDelta применяет изменение счётчика (с отсечкой в нуле) и пересчитывает уровень.
func (a *LoyaltyAccount) ApplyDelta(delta int) {
	a.ReservationCount += delta
	if a.ReservationCount < 0 {
		a.ReservationCount = 0
	}
	a.Status, a.Discount = LevelForCount(a.ReservationCount)
}
