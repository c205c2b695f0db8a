package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

type hotelDTO struct {
	HotelUID string `json:"hotelUid"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Stars    int    `json:"stars"`
	Price    int64  `json:"price"`
}

type hotelPageDTO struct {
	Page          int        `json:"page"`
	PageSize      int        `json:"pageSize"`
	TotalElements int        `json:"totalElements"`
	Items         []hotelDTO `json:"items"`
}

type hotelInfoDTO struct {
	HotelUID    string `json:"hotelUid"`
	Name        string `json:"name"`
	FullAddress string `json:"fullAddress"`
	Stars       int    `json:"stars"`
}

type reservationDTO struct {
	ReservationUID string       `json:"reservationUid"`
	Hotel          hotelInfoDTO `json:"hotel"`
	StartDate      string       `json:"startDate"`
	EndDate        string       `json:"endDate"`
	Status         string       `json:"status"`
	PaymentUID     string       `json:"paymentUid"`
}

type createReservationDTO struct {
	HotelUID   string `json:"hotelUid"`
	PaymentUID string `json:"paymentUid"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
}

// ReservationClient — клиент reservation-сервиса (каталог отелей и брони).
type ReservationClient struct {
	baseClient
}

// NewReservationClient создаёт клиента с базовым URL вида http://host:port.
func NewReservationClient(baseURL string, timeout time.Duration, logger *log.Entry) *ReservationClient {
	if logger != nil {
		logger = logger.WithField("client", "reservation")
	}
	return &ReservationClient{baseClient: newBaseClient(baseURL, timeout, logger)}
}

func (c *ReservationClient) ListHotels(ctx context.Context, page, size int) (domain.HotelPage, error) {
	var dto hotelPageDTO
	path := fmt.Sprintf("/api/v1/hotels?page=%d&size=%d", page, size)
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &dto, errorMapping{}); err != nil {
		return domain.HotelPage{}, err
	}

	items := make([]domain.Hotel, 0, len(dto.Items))
	for _, h := range dto.Items {
		items = append(items, domain.Hotel{
			HotelUID: h.HotelUID,
			Name:     h.Name,
			Country:  h.Country,
			City:     h.City,
			Address:  h.Address,
			Stars:    h.Stars,
			Price:    h.Price,
		})
	}
	return domain.HotelPage{
		Page:          dto.Page,
		PageSize:      dto.PageSize,
		TotalElements: dto.TotalElements,
		Items:         items,
	}, nil
}

func (c *ReservationClient) GetHotel(ctx context.Context, hotelUID string) (domain.Hotel, error) {
	var dto hotelDTO
	path := "/api/v1/hotels/" + url.PathEscape(hotelUID)
	err := c.doJSON(ctx, http.MethodGet, path, "", nil, &dto, errorMapping{notFound: domain.ErrHotelNotFound})
	if err != nil {
		return domain.Hotel{}, err
	}
	return domain.Hotel{
		HotelUID: dto.HotelUID,
		Name:     dto.Name,
		Country:  dto.Country,
		City:     dto.City,
		Address:  dto.Address,
		Stars:    dto.Stars,
		Price:    dto.Price,
	}, nil
}

func (c *ReservationClient) CreateReservation(ctx context.Context, draft domain.ReservationDraft) (domain.ReservationView, error) {
	in := createReservationDTO{
		HotelUID:   draft.HotelUID,
		PaymentUID: draft.PaymentUID,
		StartDate:  draft.StartDate,
		EndDate:    draft.EndDate,
		Status:     string(draft.Status),
	}
	var dto reservationDTO
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/reservations", draft.Username, in, &dto,
		errorMapping{notFound: domain.ErrHotelNotFound})
	if err != nil {
		return domain.ReservationView{}, err
	}
	return viewFromDTO(dto), nil
}

func (c *ReservationClient) GetReservation(ctx context.Context, username, reservationUID string) (domain.ReservationView, error) {
	var dto reservationDTO
	path := "/api/v1/reservations/" + url.PathEscape(reservationUID)
	err := c.doJSON(ctx, http.MethodGet, path, username, nil, &dto,
		errorMapping{notFound: domain.ErrReservationNotFound})
	if err != nil {
		return domain.ReservationView{}, err
	}
	return viewFromDTO(dto), nil
}

func (c *ReservationClient) ListReservations(ctx context.Context, username string) ([]domain.ReservationView, error) {
	var dtos []reservationDTO
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/reservations", username, nil, &dtos, errorMapping{})
	if err != nil {
		return nil, err
	}
	views := make([]domain.ReservationView, 0, len(dtos))
	for _, dto := range dtos {
		views = append(views, viewFromDTO(dto))
	}
	return views, nil
}

func (c *ReservationClient) CancelReservation(ctx context.Context, username, reservationUID string) error {
	path := "/api/v1/reservations/" + url.PathEscape(reservationUID)
	return c.doJSON(ctx, http.MethodDelete, path, username, nil, nil,
		errorMapping{notFound: domain.ErrReservationNotFound})
}

func viewFromDTO(dto reservationDTO) domain.ReservationView {
	return domain.ReservationView{
		ReservationUID: dto.ReservationUID,
		Hotel: domain.HotelInfo{
			HotelUID:    dto.Hotel.HotelUID,
			Name:        dto.Hotel.Name,
			FullAddress: dto.Hotel.FullAddress,
			Stars:       dto.Hotel.Stars,
		},
		StartDate:  dto.StartDate,
		EndDate:    dto.EndDate,
		Status:     domain.ReservationStatus(dto.Status),
		PaymentUID: dto.PaymentUID,
	}
}

var _ domain.ReservationLedger = (*ReservationClient)(nil)
