package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
	"github.com/avoronkov/hotel-booking/internal/service/saga"
)

const (
	defaultPage     = 0
	defaultPageSize = 10
)

type hotelResponse struct {
	HotelUID string `json:"hotelUid"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Stars    int    `json:"stars"`
	Price    int64  `json:"price"`
}

type hotelPageResponse struct {
	Page          int             `json:"page"`
	PageSize      int             `json:"pageSize"`
	TotalElements int             `json:"totalElements"`
	Items         []hotelResponse `json:"items"`
}

type hotelInfoResponse struct {
	HotelUID    string `json:"hotelUid"`
	Name        string `json:"name"`
	FullAddress string `json:"fullAddress"`
	Stars       int    `json:"stars"`
}

type paymentResponse struct {
	Status string `json:"status"`
	Price  int64  `json:"price"`
}

type reservationResponse struct {
	ReservationUID string            `json:"reservationUid"`
	Hotel          hotelInfoResponse `json:"hotel"`
	StartDate      string            `json:"startDate"`
	EndDate        string            `json:"endDate"`
	Status         string            `json:"status"`
	PaymentUID     string            `json:"paymentUid"`
	Payment        *paymentResponse  `json:"payment,omitempty"`
}

type createBookingRequest struct {
	HotelUID  string `json:"hotelUid"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type createBookingResponse struct {
	ReservationUID string          `json:"reservationUid"`
	HotelUID       string          `json:"hotelUid"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	Discount       int             `json:"discount"`
	Status         string          `json:"status"`
	Payment        paymentResponse `json:"payment"`
}

type loyaltyResponse struct {
	Status           string `json:"status"`
	Discount         int    `json:"discount"`
	ReservationCount int    `json:"reservationCount"`
}

type userInfoResponse struct {
	Reservations []reservationResponse `json:"reservations"`
	Loyalty      loyaltyResponse       `json:"loyalty"`
}

// Gateway обслуживает публичный API системы бронирования.
// Каталог отелей проксируется в reservation-сервис напрямую,
// всё остальное идёт через оркестратор саги.
type Gateway struct {
	orchestrator saga.Orchestrator
	reservations domain.ReservationLedger
	logger       *log.Entry
}

// NewGateway конструирует обработчики гейтвея.
func NewGateway(orchestrator saga.Orchestrator, reservations domain.ReservationLedger, logger *log.Entry) *Gateway {
	if logger == nil {
		logger = log.WithField("component", "gateway-handler")
	}
	return &Gateway{
		orchestrator: orchestrator,
		reservations: reservations,
		logger:       logger,
	}
}

// Register вешает маршруты публичного API на echo.
func (h *Gateway) Register(e *echo.Echo) {
	e.GET("/hotels", h.ListHotels)
	e.GET("/me", h.Me)
	e.GET("/reservations", h.ListReservations)
	e.POST("/reservations", h.CreateReservation)
	e.GET("/reservations/:uid", h.GetReservation)
	e.DELETE("/reservations/:uid", h.CancelReservation)
	e.GET("/loyalty", h.Loyalty)
	e.GET("/health", h.Health)
}

func (h *Gateway) ListHotels(c echo.Context) error {
	page := queryInt(c, "page", defaultPage)
	size := queryInt(c, "size", defaultPageSize)

	pageData, err := h.reservations.ListHotels(c.Request().Context(), page, size)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	items := make([]hotelResponse, 0, len(pageData.Items))
	for _, hotel := range pageData.Items {
		items = append(items, hotelResponse{
			HotelUID: hotel.HotelUID,
			Name:     hotel.Name,
			Country:  hotel.Country,
			City:     hotel.City,
			Address:  hotel.Address,
			Stars:    hotel.Stars,
			Price:    hotel.Price,
		})
	}
	return c.JSON(http.StatusOK, hotelPageResponse{
		Page:          pageData.Page,
		PageSize:      pageData.PageSize,
		TotalElements: pageData.TotalElements,
		Items:         items,
	})
}

func (h *Gateway) Me(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	info, err := h.orchestrator.GetUserInfo(c.Request().Context(), user)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	reservations := make([]reservationResponse, 0, len(info.Reservations))
	for _, view := range info.Reservations {
		reservations = append(reservations, reservationFromView(view))
	}
	return c.JSON(http.StatusOK, userInfoResponse{
		Reservations: reservations,
		Loyalty:      loyaltyFromAccount(info.Loyalty),
	})
}

func (h *Gateway) ListReservations(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	views, err := h.orchestrator.ListBookings(c.Request().Context(), user)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	out := make([]reservationResponse, 0, len(views))
	for _, view := range views {
		out = append(out, reservationFromView(view))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Gateway) CreateReservation(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.logger, domain.NewValidationError("body", "malformed JSON"))
	}

	result, err := h.orchestrator.CreateBooking(c.Request().Context(), user, saga.CreateBookingRequest{
		HotelUID:  req.HotelUID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if result.LoyaltyDegraded {
		c.Response().Header().Set(HeaderLoyaltyDegraded, "true")
	}
	return c.JSON(http.StatusOK, createBookingResponse{
		ReservationUID: result.ReservationUID,
		HotelUID:       result.HotelUID,
		StartDate:      result.StartDate,
		EndDate:        result.EndDate,
		Discount:       result.Discount,
		Status:         string(result.Status),
		Payment: paymentResponse{
			Status: string(result.Payment.Status),
			Price:  result.Payment.Price,
		},
	})
}

func (h *Gateway) GetReservation(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	view, err := h.orchestrator.GetBooking(c.Request().Context(), user, c.Param("uid"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, reservationFromView(view))
}

func (h *Gateway) CancelReservation(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if err := h.orchestrator.CancelBooking(c.Request().Context(), user, c.Param("uid")); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Gateway) Loyalty(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	account, err := h.orchestrator.GetLoyalty(c.Request().Context(), user)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, loyaltyFromAccount(account))
}

func (h *Gateway) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func reservationFromView(view domain.ReservationView) reservationResponse {
	out := reservationResponse{
		ReservationUID: view.ReservationUID,
		Hotel: hotelInfoResponse{
			HotelUID:    view.Hotel.HotelUID,
			Name:        view.Hotel.Name,
			FullAddress: view.Hotel.FullAddress,
			Stars:       view.Hotel.Stars,
		},
		StartDate:  view.StartDate,
		EndDate:    view.EndDate,
		Status:     string(view.Status),
		PaymentUID: view.PaymentUID,
	}
	if view.Payment != nil {
		out.Payment = &paymentResponse{
			Status: string(view.Payment.Status),
			Price:  view.Payment.Price,
		}
	}
	return out
}

func loyaltyFromAccount(account domain.LoyaltyAccount) loyaltyResponse {
	return loyaltyResponse{
		Status:           string(account.Status),
		Discount:         account.Discount,
		ReservationCount: account.ReservationCount,
	}
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
