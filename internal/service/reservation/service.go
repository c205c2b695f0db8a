package reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// Service реализует бизнес-логику reservation-сервиса: каталог отелей
// и CRUD броней с единственным инвариантом — бронь ссылается на существующий отель.
type Service struct {
	hotels       domain.HotelRepository
	reservations domain.ReservationRepository
	logger       *log.Entry
}

// NewService конструирует сервис с зависимостями.
func NewService(hotels domain.HotelRepository, reservations domain.ReservationRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "reservation-service")
	}
	return &Service{
		hotels:       hotels,
		reservations: reservations,
		logger:       logger,
	}
}

// ListHotels возвращает страницу каталога.
func (s *Service) ListHotels(page, size int) (domain.HotelPage, error) {
	items, total, err := s.hotels.List(page, size)
	if err != nil {
		return domain.HotelPage{}, fmt.Errorf("list hotels: %w", err)
	}
	return domain.HotelPage{
		Page:          page,
		PageSize:      size,
		TotalElements: total,
		Items:         items,
	}, nil
}

// GetHotel возвращает отель по uid.
func (s *Service) GetHotel(hotelUID string) (domain.Hotel, error) {
	return s.hotels.GetByUID(hotelUID)
}

// CreateParams — провалидированные данные для создания брони.
type CreateParams struct {
	Username   string
	HotelUID   string
	PaymentUID string
	Status     domain.ReservationStatus
	StartDate  time.Time
	EndDate    time.Time
}

// CreateReservation резолвит отель по uid, проверяет инварианты брони и сохраняет её.
// Неизвестный отель — ErrHotelNotFound: для вызывающей стороны это ошибка валидации входа.
func (s *Service) CreateReservation(p CreateParams) (domain.ReservationView, error) {
	hotel, err := s.hotels.GetByUID(p.HotelUID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("resolve hotel %s: %w", p.HotelUID, err)
	}

	reservation := domain.Reservation{
		ReservationUID: uuid.NewString(),
		Username:       p.Username,
		PaymentUID:     p.PaymentUID,
		HotelID:        hotel.ID,
		Status:         p.Status,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
	}
	if errs := reservation.Validate(); len(errs) > 0 {
		ve := &domain.ValidationError{}
		for _, e := range errs {
			ve.Fields = append(ve.Fields, domain.FieldError{Field: "reservation", Error: e.Error()})
		}
		return domain.ReservationView{}, ve
	}

	created, err := s.reservations.Create(reservation)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("create reservation: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"reservation_uid": created.ReservationUID,
		"hotel_uid":       hotel.HotelUID,
		"username":        created.Username,
	}).Info("reservation created")

	return buildView(created, hotel), nil
}

// GetReservation возвращает бронь пользователя. Чужая или несуществующая бронь
// неразличимы для вызывающего: в обоих случаях ErrReservationNotFound.
func (s *Service) GetReservation(username, reservationUID string) (domain.ReservationView, error) {
	reservation, err := s.reservations.GetByUID(reservationUID)
	if err != nil {
		return domain.ReservationView{}, err
	}
	if reservation.Username != username {
		return domain.ReservationView{}, domain.ErrReservationNotFound
	}

	hotel, err := s.hotels.GetByID(reservation.HotelID)
	if err != nil {
		return domain.ReservationView{}, fmt.Errorf("resolve hotel of reservation %s: %w", reservationUID, err)
	}

	return buildView(reservation, hotel), nil
}

// ListReservations возвращает все брони пользователя с карточками отелей.
func (s *Service) ListReservations(username string) ([]domain.ReservationView, error) {
	reservations, err := s.reservations.ListByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	views := make([]domain.ReservationView, 0, len(reservations))
	for _, r := range reservations {
		hotel, err := s.hotels.GetByID(r.HotelID)
		if err != nil {
			return nil, fmt.Errorf("resolve hotel of reservation %s: %w", r.ReservationUID, err)
		}
		views = append(views, buildView(r, hotel))
	}
	return views, nil
}

// CancelReservation переводит бронь пользователя в CANCELED.
// Повторная отмена уже отменённой брони — no-op.
func (s *Service) CancelReservation(username, reservationUID string) error {
	reservation, err := s.reservations.GetByUID(reservationUID)
	if err != nil {
		return err
	}
	if reservation.Username != username {
		return domain.ErrReservationNotFound
	}
	if reservation.Status == domain.ReservationStatusCanceled {
		s.logger.WithField("reservation_uid", reservationUID).Debug("reservation already canceled")
		return nil
	}

	if err := s.reservations.UpdateStatus(reservationUID, domain.ReservationStatusCanceled); err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"reservation_uid": reservationUID,
		"username":        username,
	}).Info("reservation canceled")
	return nil
}

// buildView — явный маппинг записи брони и отеля в ответ сервиса.
func buildView(r domain.Reservation, h domain.Hotel) domain.ReservationView {
	return domain.ReservationView{
		ReservationUID: r.ReservationUID,
		Hotel: domain.HotelInfo{
			HotelUID:    h.HotelUID,
			Name:        h.Name,
			FullAddress: h.FullAddress(),
			Stars:       h.Stars,
		},
		StartDate:  r.StartDate.Format(domain.DateLayout),
		EndDate:    r.EndDate.Format(domain.DateLayout),
		Status:     r.Status,
		PaymentUID: r.PaymentUID,
	}
}
