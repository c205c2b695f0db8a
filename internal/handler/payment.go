package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
	"github.com/avoronkov/hotel-booking/internal/service/payment"
)

type createPaymentRequest struct {
	Price int64 `json:"price"`
}

type paymentDetailResponse struct {
	PaymentUID string `json:"paymentUid"`
	Status     string `json:"status"`
	Price      int64  `json:"price"`
}

// Payment обслуживает внутренний API payment-сервиса.
type Payment struct {
	service *payment.Service
	logger  *log.Entry
}

func NewPayment(service *payment.Service, logger *log.Entry) *Payment {
	if logger == nil {
		logger = log.WithField("component", "payment-handler")
	}
	return &Payment{service: service, logger: logger}
}

func (h *Payment) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/payments", h.Create)
	g.GET("/payments/:uid", h.Get)
	g.DELETE("/payments/:uid", h.Cancel)
}

func (h *Payment) Create(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.logger, domain.NewValidationError("body", "malformed JSON"))
	}

	created, err := h.service.Create(req.Price)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, paymentDetail(created))
}

func (h *Payment) Get(c echo.Context) error {
	found, err := h.service.Get(c.Param("uid"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, paymentDetail(found))
}

func (h *Payment) Cancel(c echo.Context) error {
	if err := h.service.Cancel(c.Param("uid")); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func paymentDetail(p domain.Payment) paymentDetailResponse {
	return paymentDetailResponse{
		PaymentUID: p.PaymentUID,
		Status:     string(p.Status),
		Price:      p.Price,
	}
}
