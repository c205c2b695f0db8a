package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
	"github.com/avoronkov/hotel-booking/internal/service/loyalty"
)

type adjustLoyaltyRequest struct {
	Delta int `json:"delta"`
}

// Loyalty обслуживает внутренний API loyalty-сервиса.
type Loyalty struct {
	service *loyalty.Service
	logger  *log.Entry
}

func NewLoyalty(service *loyalty.Service, logger *log.Entry) *Loyalty {
	if logger == nil {
		logger = log.WithField("component", "loyalty-handler")
	}
	return &Loyalty{service: service, logger: logger}
}

func (h *Loyalty) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.GET("/loyalty", h.Get)
	g.POST("/loyalty/adjust", h.Adjust)
}

func (h *Loyalty) Get(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	account, err := h.service.Get(user)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, loyaltyFromAccount(account))
}

func (h *Loyalty) Adjust(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req adjustLoyaltyRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.logger, domain.NewValidationError("body", "malformed JSON"))
	}

	account, err := h.service.Adjust(user, req.Delta)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, loyaltyFromAccount(account))
}
