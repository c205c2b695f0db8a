package domain

import "context"

// HotelInfo — краткая карточка отеля внутри брони.
type HotelInfo struct {
	HotelUID    string
	Name        string
	FullAddress string
	Stars       int
}

// PaymentInfo — статус и сумма платежа, подмешиваемые в бронь на чтении.
type PaymentInfo struct {
	Status PaymentStatus
	Price  int64
}

// ReservationView — бронь в том виде, в котором её отдаёт reservation-сервис:
// с карточкой отеля и ссылкой на платёж, но без данных самого платежа.
type ReservationView struct {
	ReservationUID string
	Hotel          HotelInfo
	StartDate      string
	EndDate        string
	Status         ReservationStatus
	PaymentUID     string
	// Payment заполняется гейтвеем по данным payment-сервиса; nil означает,
	// что платёж получить не удалось и отдаётся только PaymentUID.
	Payment *PaymentInfo
}

// ReservationDraft — данные для создания брони в reservation-сервисе.
// Даты уже провалидированы оркестратором и передаются строками YYYY-MM-DD.
type ReservationDraft struct {
	Username   string
	HotelUID   string
	PaymentUID string
	StartDate  string
	EndDate    string
	Status     ReservationStatus
}

// HotelPage — страница каталога отелей.
type HotelPage struct {
	Page          int
	PageSize      int
	TotalElements int
	Items         []Hotel
}

// ReservationLedger описывает взаимодействие гейтвея с reservation-сервисом.
type ReservationLedger interface {
	ListHotels(ctx context.Context, page, size int) (HotelPage, error)
	// GetHotel возвращает отель по uid или ErrHotelNotFound.
	GetHotel(ctx context.Context, hotelUID string) (Hotel, error)
	// CreateReservation сохраняет бронь; ErrHotelNotFound, если uid отеля не резолвится.
	CreateReservation(ctx context.Context, draft ReservationDraft) (ReservationView, error)
	// GetReservation возвращает бронь пользователя или ErrReservationNotFound,
	// в том числе когда бронь принадлежит другому пользователю.
	GetReservation(ctx context.Context, username, reservationUID string) (ReservationView, error)
	ListReservations(ctx context.Context, username string) ([]ReservationView, error)
	CancelReservation(ctx context.Context, username, reservationUID string) error
}

// PaymentLedger описывает взаимодействие гейтвея с payment-сервисом.
type PaymentLedger interface {
	// Create проводит платёж на сумму price; новый платёж имеет статус PAID.
	Create(ctx context.Context, price int64) (Payment, error)
	Get(ctx context.Context, paymentUID string) (Payment, error)
	// Cancel переводит платёж в CANCELED; повторная отмена — no-op без ошибки.
	Cancel(ctx context.Context, paymentUID string) error
}

// LoyaltyLedger описывает взаимодействие гейтвея с loyalty-сервисом.
type LoyaltyLedger interface {
	// Get возвращает аккаунт или ErrLoyaltyNotFound, если пользователь ещё не бронировал.
	Get(ctx context.Context, username string) (LoyaltyAccount, error)
	// Adjust применяет delta к счётчику броней (с отсечкой в нуле) и возвращает
	// аккаунт с пересчитанным уровнем.
	Adjust(ctx context.Context, username string, delta int) (LoyaltyAccount, error)
}
