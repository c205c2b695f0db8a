package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
	"github.com/avoronkov/hotel-booking/internal/messaging/kafka"
	"github.com/avoronkov/hotel-booking/internal/metrics"
)

// Step идентифицирует шаг саги в логах и метриках.
type Step string

const (
	StepResolveHotel      Step = "resolve_hotel"
	StepLoyaltyLookup     Step = "loyalty_lookup"
	StepPayment           Step = "payment"
	StepReservation       Step = "reservation"
	StepLoyaltyIncrement  Step = "loyalty_increment"
	StepPaymentCancel     Step = "payment_cancel"
	StepReservationCancel Step = "reservation_cancel"
	StepLoyaltyDecrement  Step = "loyalty_decrement"
)

// CreateBookingRequest — провалидированный на границе запрос на бронирование.
// Даты приходят строками YYYY-MM-DD и разбираются оркестратором.
type CreateBookingRequest struct {
	HotelUID  string
	StartDate string
	EndDate   string
}

// CreateBookingResult — агрегат созданной брони.
type CreateBookingResult struct {
	ReservationUID string
	HotelUID       string
	StartDate      string
	EndDate        string
	Discount       int
	Status         domain.ReservationStatus
	Payment        domain.PaymentInfo
	// LoyaltyDegraded выставляется, когда бронь создана, но счётчик лояльности
	// обновить не удалось. Бронь при этом не откатывается.
	LoyaltyDegraded bool
}

// UserInfo — профиль пользователя: его брони и состояние лояльности.
type UserInfo struct {
	Reservations []domain.ReservationView
	Loyalty      domain.LoyaltyAccount
}

// Orchestrator управляет сагами бронирования и сборкой read-агрегатов.
type Orchestrator interface {
	CreateBooking(ctx context.Context, username string, req CreateBookingRequest) (CreateBookingResult, error)
	CancelBooking(ctx context.Context, username, reservationUID string) error
	GetBooking(ctx context.Context, username, reservationUID string) (domain.ReservationView, error)
	ListBookings(ctx context.Context, username string) ([]domain.ReservationView, error)
	GetUserInfo(ctx context.Context, username string) (UserInfo, error)
	GetLoyalty(ctx context.Context, username string) (domain.LoyaltyAccount, error)
}

// orchestrator реализует последовательность шагов саги бронирования:
// hotel → loyalty → payment → reservation → loyalty+1, с компенсацией
// закоммиченных шагов в обратном порядке при сбое.
type orchestrator struct {
	reservations  domain.ReservationLedger
	payments      domain.PaymentLedger
	loyalty       domain.LoyaltyLedger
	logger        *log.Entry
	metrics       *metrics.SagaMetrics
	retry         RetryConfig
	kafkaProducer *kafka.Producer // опциональный Kafka producer для событий саги
}

// NewOrchestrator создаёт рабочий экземпляр оркестратора.
func NewOrchestrator(
	reservations domain.ReservationLedger,
	payments domain.PaymentLedger,
	loyalty domain.LoyaltyLedger,
	logger *log.Entry,
) Orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "saga")
	}
	return &orchestrator{
		reservations: reservations,
		payments:     payments,
		loyalty:      loyalty,
		logger:       logger,
		metrics:      metrics.NewSagaMetrics(),
		retry:        DefaultRetryConfig(),
	}
}

// NewOrchestratorWithKafka создаёт оркестратор, публикующий события саги в Kafka.
func NewOrchestratorWithKafka(
	reservations domain.ReservationLedger,
	payments domain.PaymentLedger,
	loyalty domain.LoyaltyLedger,
	kafkaProducer *kafka.Producer,
	logger *log.Entry,
) Orchestrator {
	o := NewOrchestrator(reservations, payments, loyalty, logger).(*orchestrator)
	o.kafkaProducer = kafkaProducer
	return o
}

// NewOrchestratorWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewOrchestratorWithoutMetrics(
	reservations domain.ReservationLedger,
	payments domain.PaymentLedger,
	loyalty domain.LoyaltyLedger,
	logger *log.Entry,
) Orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "saga")
	}
	return &orchestrator{
		reservations: reservations,
		payments:     payments,
		loyalty:      loyalty,
		logger:       logger,
		retry:        DefaultRetryConfig(),
	}
}

// compensation — закоммиченный шаг и действие, семантически отменяющее его.
type compensation struct {
	step Step
	fn   func(context.Context) error
}

// CreateBooking выполняет сагу создания брони.
func (o *orchestrator) CreateBooking(ctx context.Context, username string, req CreateBookingRequest) (CreateBookingResult, error) {
	startedAt := time.Now()
	if o.metrics != nil {
		o.metrics.RecordSagaStarted()
	}
	defer func() {
		if o.metrics != nil {
			o.metrics.RecordSagaFinished()
			o.metrics.RecordSagaDuration(time.Since(startedAt))
		}
	}()

	startDate, endDate, vErr := validateCreateRequest(req)
	if vErr != nil {
		o.failSaga(username, "", vErr)
		return CreateBookingResult{}, vErr
	}

	o.publishSagaEvent(kafka.EventTypeSagaStarted, username, "", map[string]interface{}{
		"hotel_uid": req.HotelUID,
	})

	// Шаг 1: резолвим отель. Неизвестный uid — ошибка входных данных, не 404.
	var hotel domain.Hotel
	err := o.step(StepResolveHotel, func() error {
		var stepErr error
		hotel, stepErr = o.getHotelWithRetry(ctx, req.HotelUID)
		return stepErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrHotelNotFound) {
			vErr := domain.NewValidationError("hotelUid", "hotel not found")
			o.failSaga(username, "", vErr)
			return CreateBookingResult{}, vErr
		}
		o.failSaga(username, "", err)
		return CreateBookingResult{}, fmt.Errorf("resolve hotel: %w", err)
	}

	nights := int64(endDate.Sub(startDate).Hours() / 24)
	basePrice := hotel.Price * nights

	// Шаг 2: скидка по лояльности; отсутствующий аккаунт — скидка 0.
	discount := 0
	err = o.step(StepLoyaltyLookup, func() error {
		account, stepErr := o.getLoyaltyWithRetry(ctx, username)
		if stepErr != nil {
			if errors.Is(stepErr, domain.ErrLoyaltyNotFound) {
				return nil
			}
			return stepErr
		}
		discount = account.Discount
		return nil
	})
	if err != nil {
		o.failSaga(username, "", err)
		return CreateBookingResult{}, fmt.Errorf("lookup loyalty: %w", err)
	}

	// Целочисленная арифметика с округлением вниз.
	finalPrice := basePrice * int64(100-discount) / 100

	// Шаг 3: проводим платёж. До этого места компенсировать нечего.
	var payment domain.Payment
	err = o.step(StepPayment, func() error {
		var stepErr error
		payment, stepErr = o.payments.Create(ctx, finalPrice)
		return stepErr
	})
	if err != nil {
		o.failSaga(username, "", err)
		return CreateBookingResult{}, fmt.Errorf("create payment: %w", err)
	}

	compensations := []compensation{{
		step: StepPaymentCancel,
		fn: func(ctx context.Context) error {
			return o.payments.Cancel(ctx, payment.PaymentUID)
		},
	}}

	// Шаг 4: сохраняем бронь; при сбое откатываем платёж.
	var view domain.ReservationView
	err = o.step(StepReservation, func() error {
		var stepErr error
		view, stepErr = o.reservations.CreateReservation(ctx, domain.ReservationDraft{
			Username:   username,
			HotelUID:   hotel.HotelUID,
			PaymentUID: payment.PaymentUID,
			StartDate:  startDate.Format(domain.DateLayout),
			EndDate:    endDate.Format(domain.DateLayout),
			Status:     reservationStatusFor(payment.Status),
		})
		return stepErr
	})
	if err != nil {
		o.compensate(ctx, compensations)
		o.failSaga(username, "", err)
		return CreateBookingResult{}, fmt.Errorf("create reservation: %w", err)
	}

	// Шаг 5: инкремент счётчика лояльности — best-effort; сбой не откатывает бронь.
	degraded := false
	err = o.step(StepLoyaltyIncrement, func() error {
		_, stepErr := o.loyalty.Adjust(ctx, username, 1)
		return stepErr
	})
	if err != nil {
		degraded = true
		o.logger.WithError(err).WithFields(log.Fields{
			"reservation_uid": view.ReservationUID,
			"username":        username,
		}).Warn("loyalty increment failed, booking kept")
		if o.metrics != nil {
			o.metrics.RecordLoyaltyDegraded()
		}
	}

	if o.metrics != nil {
		o.metrics.RecordSagaCompleted()
	}
	o.logger.WithFields(log.Fields{
		"reservation_uid": view.ReservationUID,
		"payment_uid":     payment.PaymentUID,
		"username":        username,
		"price":           finalPrice,
		"discount":        discount,
	}).Info("booking saga completed")

	o.publishSagaEvent(kafka.EventTypeSagaCompleted, username, view.ReservationUID, nil)
	o.publishSagaEvent(kafka.EventTypeBookingCreated, username, view.ReservationUID, map[string]interface{}{
		"hotel_uid": hotel.HotelUID,
		"price":     finalPrice,
		"discount":  discount,
	})

	return CreateBookingResult{
		ReservationUID:  view.ReservationUID,
		HotelUID:        hotel.HotelUID,
		StartDate:       view.StartDate,
		EndDate:         view.EndDate,
		Discount:        discount,
		Status:          view.Status,
		Payment:         domain.PaymentInfo{Status: payment.Status, Price: payment.Price},
		LoyaltyDegraded: degraded,
	}, nil
}

// CancelBooking выполняет сагу отмены: платёж отменяется раньше брони, чтобы
// сбой между шагами не оставил «живой» платёж у отменённой брони.
func (o *orchestrator) CancelBooking(ctx context.Context, username, reservationUID string) error {
	if o.metrics != nil {
		o.metrics.RecordSagaCanceled()
	}

	view, err := o.reservations.GetReservation(ctx, username, reservationUID)
	if err != nil {
		return err
	}

	if err := o.step(StepPaymentCancel, func() error {
		return o.payments.Cancel(ctx, view.PaymentUID)
	}); err != nil {
		o.failSaga(username, reservationUID, err)
		return fmt.Errorf("cancel payment: %w", err)
	}

	if err := o.step(StepReservationCancel, func() error {
		return o.reservations.CancelReservation(ctx, username, reservationUID)
	}); err != nil {
		o.failSaga(username, reservationUID, err)
		return fmt.Errorf("cancel reservation: %w", err)
	}

	// Декремент лояльности — best-effort, как и инкремент при создании.
	if err := o.step(StepLoyaltyDecrement, func() error {
		_, stepErr := o.loyalty.Adjust(ctx, username, -1)
		return stepErr
	}); err != nil {
		o.logger.WithError(err).WithFields(log.Fields{
			"reservation_uid": reservationUID,
			"username":        username,
		}).Warn("loyalty decrement failed, cancellation kept")
		if o.metrics != nil {
			o.metrics.RecordLoyaltyDegraded()
		}
	}

	o.logger.WithFields(log.Fields{
		"reservation_uid": reservationUID,
		"username":        username,
	}).Info("booking canceled")
	o.publishSagaEvent(kafka.EventTypeBookingCanceled, username, reservationUID, nil)
	return nil
}

// GetBooking возвращает бронь пользователя с подмешанными данными платежа.
func (o *orchestrator) GetBooking(ctx context.Context, username, reservationUID string) (domain.ReservationView, error) {
	view, err := o.reservations.GetReservation(ctx, username, reservationUID)
	if err != nil {
		return domain.ReservationView{}, err
	}
	o.mergePayment(ctx, &view)
	return view, nil
}

// ListBookings возвращает все брони пользователя. Бронь с недоступным платежом
// не выпадает из списка — отдаётся без status/price, только с paymentUid.
func (o *orchestrator) ListBookings(ctx context.Context, username string) ([]domain.ReservationView, error) {
	views, err := o.reservations.ListReservations(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range views {
		o.mergePayment(ctx, &views[i])
	}
	return views, nil
}

// GetUserInfo собирает профиль пользователя из двух сервисов.
func (o *orchestrator) GetUserInfo(ctx context.Context, username string) (UserInfo, error) {
	reservations, err := o.ListBookings(ctx, username)
	if err != nil {
		return UserInfo{}, err
	}
	loyalty, err := o.GetLoyalty(ctx, username)
	if err != nil {
		return UserInfo{}, err
	}
	return UserInfo{Reservations: reservations, Loyalty: loyalty}, nil
}

// GetLoyalty возвращает аккаунт лояльности; для ещё не бронировавшего
// пользователя — нулевой BRONZE-аккаунт.
func (o *orchestrator) GetLoyalty(ctx context.Context, username string) (domain.LoyaltyAccount, error) {
	account, err := o.getLoyaltyWithRetry(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrLoyaltyNotFound) {
			return domain.NewLoyaltyAccount(username), nil
		}
		return domain.LoyaltyAccount{}, err
	}
	return account, nil
}

// mergePayment подтягивает {status, price} платежа в бронь; при сбое оставляет
// только paymentUid.
func (o *orchestrator) mergePayment(ctx context.Context, view *domain.ReservationView) {
	payment, err := o.payments.Get(ctx, view.PaymentUID)
	if err != nil {
		o.logger.WithError(err).WithFields(log.Fields{
			"reservation_uid": view.ReservationUID,
			"payment_uid":     view.PaymentUID,
		}).Warn("payment lookup failed, returning reservation without payment data")
		return
	}
	view.Payment = &domain.PaymentInfo{Status: payment.Status, Price: payment.Price}
}

// compensate выполняет компенсации закоммиченных шагов в обратном порядке.
// Сбой одной компенсации не останавливает остальные.
func (o *orchestrator) compensate(ctx context.Context, compensations []compensation) {
	if len(compensations) == 0 {
		return
	}
	if o.metrics != nil {
		o.metrics.RecordSagaCompensated()
	}
	for i := len(compensations) - 1; i >= 0; i-- {
		c := compensations[i]
		if err := c.fn(ctx); err != nil {
			o.logger.WithError(err).WithField("step", string(c.step)).Error("compensation failed")
			continue
		}
		o.logger.WithField("step", string(c.step)).Info("compensation applied")
	}
	o.publishSagaEvent(kafka.EventTypeSagaCompensated, "", "", nil)
}

func (o *orchestrator) failSaga(username, reservationUID string, rootErr error) {
	if o.metrics != nil {
		o.metrics.RecordSagaFailed()
	}
	o.publishSagaEvent(kafka.EventTypeSagaFailed, username, reservationUID, map[string]interface{}{
		"reason": rootErr.Error(),
	})
}

// step замеряет длительность шага для метрик.
func (o *orchestrator) step(step Step, fn func() error) error {
	startedAt := time.Now()
	err := fn()
	if o.metrics != nil {
		o.metrics.RecordStepDuration(string(step), time.Since(startedAt))
	}
	return err
}

// publishSagaEvent публикует событие саги в Kafka (если producer настроен)
func (o *orchestrator) publishSagaEvent(eventType kafka.EventType, username, reservationUID string, metadata map[string]interface{}) {
	if o.kafkaProducer == nil {
		return
	}

	event := kafka.NewSagaEvent(eventType, username, reservationUID, metadata)
	if err := o.kafkaProducer.PublishSagaEvent(event); err != nil {
		// Логируем ошибку, но не прерываем сагу — Kafka опциональный
		o.logger.WithError(err).WithFields(log.Fields{
			"event_type":      eventType,
			"reservation_uid": reservationUID,
		}).Warn("failed to publish saga event to kafka")
	}
}

// validateCreateRequest проверяет формат и согласованность входа; все замечания
// собираются в одну ошибку валидации.
func validateCreateRequest(req CreateBookingRequest) (time.Time, time.Time, *domain.ValidationError) {
	var fields []domain.FieldError

	if _, err := uuid.Parse(req.HotelUID); err != nil {
		fields = append(fields, domain.FieldError{Field: "hotelUid", Error: "must be a valid UUID"})
	}

	startDate, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		fields = append(fields, domain.FieldError{Field: "startDate", Error: "must be a date in YYYY-MM-DD format"})
	}
	endDate, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		fields = append(fields, domain.FieldError{Field: "endDate", Error: "must be a date in YYYY-MM-DD format"})
	}

	if len(fields) == 0 && !endDate.After(startDate) {
		fields = append(fields, domain.FieldError{Field: "endDate", Error: domain.ErrDateOrder.Error()})
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, &domain.ValidationError{Fields: fields}
	}
	return startDate, endDate, nil
}

// reservationStatusFor отражает статус платежа в статус брони.
func reservationStatusFor(status domain.PaymentStatus) domain.ReservationStatus {
	if status == domain.PaymentStatusPaid {
		return domain.ReservationStatusPaid
	}
	return domain.ReservationStatusReserved
}

var _ Orchestrator = (*orchestrator)(nil)
