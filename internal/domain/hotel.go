package domain

import (
	"fmt"
	"time"
)

// Hotel описывает запись каталога отелей. Каталог заполняется сидом,
// для бизнес-логики бронирования он read-only.
type Hotel struct {
	ID        int64
	HotelUID  string
	Name      string
	Country   string
	City      string
	Address   string
	Stars     int
	Price     int64 // цена за ночь в минимальных денежных единицах
	CreatedAt time.Time
}

// FullAddress собирает адрес в формате "страна, город, улица".
func (h *Hotel) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s", h.Country, h.City, h.Address)
}

// Validate проверяет инварианты записи каталога.
func (h *Hotel) Validate() []error {
	var errs []error

	if h.HotelUID == "" {
		errs = append(errs, ErrHotelUIDRequired)
	}
	if h.Price <= 0 {
		errs = append(errs, ErrHotelPriceInvalid)
	}

	return errs
}
