package domain

import "time"

// DateLayout — формат календарных дат во всех внешних интерфейсах.
const DateLayout = "2006-01-02"

// ReservationStatus описывает жизненный цикл брони.
type ReservationStatus string

const (
	// ReservationStatusReserved — бронь создана, оплата не подтверждена.
	ReservationStatusReserved ReservationStatus = "RESERVED"
	// ReservationStatusPaid — бронь подкреплена успешным платежом.
	ReservationStatusPaid ReservationStatus = "PAID"
	// ReservationStatusCanceled — бронь отменена; терминальный статус.
	ReservationStatusCanceled ReservationStatus = "CANCELED"
)

// Reservation описывает бронь отеля. Физически записи никогда не удаляются,
// отмена — это переход статуса в CANCELED.
type Reservation struct {
	ID             int64
	ReservationUID string
	Username       string
	PaymentUID     string
	HotelID        int64
	Status         ReservationStatus
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Nights возвращает количество ночей между датами заезда и выезда.
func (r *Reservation) Nights() int64 {
	return int64(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// Validate проверяет базовые инварианты брони и возвращает список замечаний.
func (r *Reservation) Validate() []error {
	var errs []error

	if r.Username == "" {
		errs = append(errs, ErrUsernameRequired)
	}
	if r.PaymentUID == "" {
		errs = append(errs, ErrPaymentUIDRequired)
	}
	if !r.EndDate.After(r.StartDate) {
		errs = append(errs, ErrDateOrder)
	}

	return errs
}

// CanCancel сообщает, допустим ли переход в CANCELED из текущего статуса.
// Обратных переходов из CANCELED нет.
func (r *Reservation) CanCancel() bool {
	return r.Status == ReservationStatusReserved || r.Status == ReservationStatusPaid
}
