package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/domain"
	"github.com/avoronkov/hotel-booking/internal/service/reservation"
)

type createReservationRequest struct {
	HotelUID   string `json:"hotelUid"`
	PaymentUID string `json:"paymentUid"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
}

// Reservation обслуживает внутренний API reservation-сервиса:
// каталог отелей и брони.
type Reservation struct {
	service *reservation.Service
	logger  *log.Entry
}

func NewReservation(service *reservation.Service, logger *log.Entry) *Reservation {
	if logger == nil {
		logger = log.WithField("component", "reservation-handler")
	}
	return &Reservation{service: service, logger: logger}
}

func (h *Reservation) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.GET("/hotels", h.ListHotels)
	g.GET("/hotels/:hotelUid", h.GetHotel)
	g.POST("/reservations", h.Create)
	g.GET("/reservations", h.List)
	g.GET("/reservations/:uid", h.Get)
	g.DELETE("/reservations/:uid", h.Cancel)
}

func (h *Reservation) ListHotels(c echo.Context) error {
	page := queryInt(c, "page", defaultPage)
	size := queryInt(c, "size", defaultPageSize)

	pageData, err := h.service.ListHotels(page, size)
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

func (h *Reservation) GetHotel(c echo.Context) error {
	hotel, err := h.service.GetHotel(c.Param("hotelUid"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, hotelResponse{
		HotelUID: hotel.HotelUID,
		Name:     hotel.Name,
		Country:  hotel.Country,
		City:     hotel.City,
		Address:  hotel.Address,
		Stars:    hotel.Stars,
		Price:    hotel.Price,
	})
}

func (h *Reservation) Create(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.logger, domain.NewValidationError("body", "malformed JSON"))
	}

	startDate, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return writeError(c, h.logger, domain.NewValidationError("startDate", "must be a date in YYYY-MM-DD format"))
	}
	endDate, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		return writeError(c, h.logger, domain.NewValidationError("endDate", "must be a date in YYYY-MM-DD format"))
	}

	view, err := h.service.CreateReservation(reservation.CreateParams{
		Username:   user,
		HotelUID:   req.HotelUID,
		PaymentUID: req.PaymentUID,
		Status:     domain.ReservationStatus(req.Status),
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		// для вызывающей стороны несуществующий отель — ошибка входных данных
		if domain.IsNotFound(err) {
			return writeError(c, h.logger, domain.NewValidationError("hotelUid", domain.ErrHotelNotFound.Error()))
		}
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, reservationFromView(view))
}

func (h *Reservation) Get(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	view, err := h.service.GetReservation(user, c.Param("uid"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, reservationFromView(view))
}

func (h *Reservation) List(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	views, err := h.service.ListReservations(user)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	out := make([]reservationResponse, 0, len(views))
	for _, view := range views {
		out = append(out, reservationFromView(view))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Reservation) Cancel(c echo.Context) error {
	user, err := username(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if err := h.service.CancelReservation(user, c.Param("uid")); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
