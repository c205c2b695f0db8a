package domain

// HotelRepository описывает требования к хранилищу каталога отелей.
type HotelRepository interface {
	// List возвращает страницу каталога и общее количество записей.
	List(page, size int) ([]Hotel, int, error)
	// GetByUID возвращает отель по внешнему идентификатору или ErrHotelNotFound.
	GetByUID(hotelUID string) (Hotel, error)
	// GetByID возвращает отель по внутреннему ключу или ErrHotelNotFound.
	GetByID(id int64) (Hotel, error)
	// Create сохраняет запись каталога (используется сидом и тестами).
	Create(hotel Hotel) (Hotel, error)
}

// ReservationRepository описывает требования к хранилищу броней.
type ReservationRepository interface {
	// Create сохраняет новую бронь и возвращает её с заполненным внутренним ключом.
	Create(reservation Reservation) (Reservation, error)
	// GetByUID возвращает бронь по идентификатору или ErrReservationNotFound.
	GetByUID(reservationUID string) (Reservation, error)
	// ListByUsername возвращает все брони пользователя, новые первыми.
	ListByUsername(username string) ([]Reservation, error)
	// UpdateStatus меняет статус брони или возвращает ErrReservationNotFound.
	UpdateStatus(reservationUID string, status ReservationStatus) error
}

// PaymentRepository описывает требования к хранилищу платежей.
type PaymentRepository interface {
	Create(payment Payment) (Payment, error)
	GetByUID(paymentUID string) (Payment, error)
	UpdateStatus(paymentUID string, status PaymentStatus) error
}

// LoyaltyRepository описывает требования к хранилищу аккаунтов лояльности.
type LoyaltyRepository interface {
	// GetByUsername возвращает аккаунт или ErrLoyaltyNotFound, если его ещё нет.
	GetByUsername(username string) (LoyaltyAccount, error)
	// ApplyDelta атомарно применяет delta к счётчику броней (с отсечкой в нуле),
	// лениво создавая аккаунт, и возвращает запись с пересчитанным уровнем.
	// Параллельные вызовы по одному username не теряют инкрементов.
	ApplyDelta(username string, delta int) (LoyaltyAccount, error)
}
