package app

import (
	"context"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
	"github.com/avoronkov/hotel-booking/internal/handler"
	healthcheck "github.com/avoronkov/hotel-booking/internal/health"
	"github.com/avoronkov/hotel-booking/internal/service/loyalty"
	"github.com/avoronkov/hotel-booking/internal/service/payment"
	"github.com/avoronkov/hotel-booking/internal/service/reservation"
	"github.com/avoronkov/hotel-booking/internal/storage/memory"
	"github.com/avoronkov/hotel-booking/internal/storage/postgres"
	"github.com/avoronkov/hotel-booking/internal/version"
)

// RunReservation запускает reservation-сервис: каталог отелей и брони.
func RunReservation(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "reservation-service")

	store, err := openStore(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}

	var hotels domain.HotelRepository
	var reservations domain.ReservationRepository
	if store != nil {
		hotels = postgres.NewHotelRepository(store)
		reservations = postgres.NewReservationRepository(store)
	} else {
		hotels = memory.NewHotelRepository()
		reservations = memory.NewReservationRepository()
	}

	healthHandler := serviceHealth(store)

	e := newEcho(logger)
	handler.NewReservation(reservation.NewService(hotels, reservations, logger), logger).Register(e)
	e.GET("/manage/health", echo.WrapHandler(healthHandler))

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	return serve(ctx, e, cfg.HTTPAddr, logger, func() {
		shutdownHTTP(opsSrv, logger)
		closeStore(store, logger)
	})
}

// RunPayment запускает payment-сервис.
func RunPayment(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "payment-service")

	store, err := openStore(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}

	var payments domain.PaymentRepository
	if store != nil {
		payments = postgres.NewPaymentRepository(store)
	} else {
		payments = memory.NewPaymentRepository()
	}

	healthHandler := serviceHealth(store)

	e := newEcho(logger)
	handler.NewPayment(payment.NewService(payments, logger), logger).Register(e)
	e.GET("/manage/health", echo.WrapHandler(healthHandler))

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	return serve(ctx, e, cfg.HTTPAddr, logger, func() {
		shutdownHTTP(opsSrv, logger)
		closeStore(store, logger)
	})
}

// RunLoyalty запускает loyalty-сервис.
func RunLoyalty(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "loyalty-service")

	store, err := openStore(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return err
	}

	var accounts domain.LoyaltyRepository
	if store != nil {
		accounts = postgres.NewLoyaltyRepository(store)
	} else {
		accounts = memory.NewLoyaltyRepository()
	}

	healthHandler := serviceHealth(store)

	e := newEcho(logger)
	handler.NewLoyalty(loyalty.NewService(accounts, logger), logger).Register(e)
	e.GET("/manage/health", echo.WrapHandler(healthHandler))

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	return serve(ctx, e, cfg.HTTPAddr, logger, func() {
		shutdownHTTP(opsSrv, logger)
		closeStore(store, logger)
	})
}

// serviceHealth собирает health handler сервиса; для in-memory хранилища
// проверок нет и сервис всегда здоров.
func serviceHealth(store *postgres.Store) *healthcheck.Handler {
	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if store != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewStoreChecker("postgres", store.Ping))
	}
	return healthHandler
}
