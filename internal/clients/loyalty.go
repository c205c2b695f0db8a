package clients

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

type loyaltyDTO struct {
	Status           string `json:"status"`
	Discount         int    `json:"discount"`
	ReservationCount int    `json:"reservationCount"`
}

type adjustLoyaltyDTO struct {
	Delta int `json:"delta"`
}

// LoyaltyClient — клиент loyalty-сервиса.
type LoyaltyClient struct {
	baseClient
}

func NewLoyaltyClient(baseURL string, timeout time.Duration, logger *log.Entry) *LoyaltyClient {
	if logger != nil {
		logger = logger.WithField("client", "loyalty")
	}
	return &LoyaltyClient{baseClient: newBaseClient(baseURL, timeout, logger)}
}

func (c *LoyaltyClient) Get(ctx context.Context, username string) (domain.LoyaltyAccount, error) {
	var dto loyaltyDTO
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/loyalty", username, nil, &dto,
		errorMapping{notFound: domain.ErrLoyaltyNotFound})
	if err != nil {
		return domain.LoyaltyAccount{}, err
	}
	return loyaltyFromDTO(username, dto), nil
}

func (c *LoyaltyClient) Adjust(ctx context.Context, username string, delta int) (domain.LoyaltyAccount, error) {
	var dto loyaltyDTO
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/loyalty/adjust", username, adjustLoyaltyDTO{Delta: delta}, &dto, errorMapping{})
	if err != nil {
		return domain.LoyaltyAccount{}, err
	}
	return loyaltyFromDTO(username, dto), nil
}

func loyaltyFromDTO(username string, dto loyaltyDTO) domain.LoyaltyAccount {
	return domain.LoyaltyAccount{
		Username:         username,
		Status:           domain.LoyaltyLevel(dto.Status),
		Discount:         dto.Discount,
		ReservationCount: dto.ReservationCount,
	}
}

var _ domain.LoyaltyLedger = (*LoyaltyClient)(nil)
