package clients

import (
	"context"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

type paymentDTO struct {
	PaymentUID string `json:"paymentUid"`
	Status     string `json:"status"`
	Price      int64  `json:"price"`
}

type createPaymentDTO struct {
	Price int64 `json:"price"`
}

// PaymentClient — клиент payment-сервиса.
type PaymentClient struct {
	baseClient
}

func NewPaymentClient(baseURL string, timeout time.Duration, logger *log.Entry) *PaymentClient {
	if logger != nil {
		logger = logger.WithField("client", "payment")
	}
	return &PaymentClient{baseClient: newBaseClient(baseURL, timeout, logger)}
}

func (c *PaymentClient) Create(ctx context.Context, price int64) (domain.Payment, error) {
	var dto paymentDTO
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/payments", "", createPaymentDTO{Price: price}, &dto, errorMapping{})
	if err != nil {
		return domain.Payment{}, err
	}
	return paymentFromDTO(dto), nil
}

func (c *PaymentClient) Get(ctx context.Context, paymentUID string) (domain.Payment, error) {
	var dto paymentDTO
	path := "/api/v1/payments/" + url.PathEscape(paymentUID)
	err := c.doJSON(ctx, http.MethodGet, path, "", nil, &dto,
		errorMapping{notFound: domain.ErrPaymentNotFound})
	if err != nil {
		return domain.Payment{}, err
	}
	return paymentFromDTO(dto), nil
}

func (c *PaymentClient) Cancel(ctx context.Context, paymentUID string) error {
	path := "/api/v1/payments/" + url.PathEscape(paymentUID)
	return c.doJSON(ctx, http.MethodDelete, path, "", nil, nil,
		errorMapping{notFound: domain.ErrPaymentNotFound, conflict: domain.ErrPaymentStateConflict})
}

func paymentFromDTO(dto paymentDTO) domain.Payment {
	return domain.Payment{
		PaymentUID: dto.PaymentUID,
		Status:     domain.PaymentStatus(dto.Status),
		Price:      dto.Price,
	}
}

var _ domain.PaymentLedger = (*PaymentClient)(nil)
