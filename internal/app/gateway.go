package app

import (
	"context"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/clients"
	"github.com/avoronkov/hotel-booking/internal/handler"
	healthcheck "github.com/avoronkov/hotel-booking/internal/health"
	"github.com/avoronkov/hotel-booking/internal/service/saga"
	"github.com/avoronkov/hotel-booking/internal/version"
)

// RunGateway запускает гейтвей: публичный API поверх оркестратора саги
// и HTTP-клиентов трёх внутренних сервисов.
func RunGateway(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "gateway")

	reservations := clients.NewReservationClient(cfg.ReservationURL, cfg.ClientTimeout, logger)
	payments := clients.NewPaymentClient(cfg.PaymentURL, cfg.ClientTimeout, logger)
	loyalty := clients.NewLoyaltyClient(cfg.LoyaltyURL, cfg.ClientTimeout, logger)

	kafkaProducer := initKafkaProducer(cfg.KafkaBrokers, logger)

	var orchestrator saga.Orchestrator
	if kafkaProducer != nil {
		orchestrator = saga.NewOrchestratorWithKafka(reservations, payments, loyalty, kafkaProducer, logger)
	} else {
		orchestrator = saga.NewOrchestrator(reservations, payments, loyalty, logger)
	}

	// агрегированный health: гейтвей здоров, когда доступны все три сервиса
	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("reservation", healthcheck.NewLedgerChecker("reservation", cfg.ReservationURL, cfg.ClientTimeout))
	healthHandler.RegisterChecker("payment", healthcheck.NewLedgerChecker("payment", cfg.PaymentURL, cfg.ClientTimeout))
	healthHandler.RegisterChecker("loyalty", healthcheck.NewLedgerChecker("loyalty", cfg.LoyaltyURL, cfg.ClientTimeout))

	e := newEcho(logger)
	handler.NewGateway(orchestrator, reservations, logger).Register(e)
	e.GET("/manage/health", echo.WrapHandler(healthHandler))

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	return serve(ctx, e, cfg.HTTPAddr, logger, func() {
		shutdownHTTP(opsSrv, logger)
		closeKafka(kafkaProducer, logger)
	})
}
