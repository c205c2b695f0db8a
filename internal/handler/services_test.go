package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronkov/hotel-booking/internal/domain"
	"github.com/avoronkov/hotel-booking/internal/service/loyalty"
	"github.com/avoronkov/hotel-booking/internal/service/payment"
	"github.com/avoronkov/hotel-booking/internal/service/reservation"
	"github.com/avoronkov/hotel-booking/internal/storage/memory"
)

func doRequest(e *echo.Echo, method, path, user, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != "" {
		req.Header.Set(HeaderUserName, user)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newReservationEcho(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	hotels := memory.NewHotelRepository()
	hotel, err := hotels.Create(domain.Hotel{
		HotelUID: uuid.NewString(),
		Name:     "Four Seasons",
		Country:  "Россия",
		City:     "Санкт-Петербург",
		Address:  "Вознесенский пр., 1",
		Stars:    5,
		Price:    15000,
	})
	require.NoError(t, err)

	e := echo.New()
	svc := reservation.NewService(hotels, memory.NewReservationRepository(), quietLogger())
	NewReservation(svc, quietLogger()).Register(e)
	return e, hotel.HotelUID
}

func TestReservationHandlerCreateAndGet(t *testing.T) {
	e, hotelUID := newReservationEcho(t)

	paymentUID := uuid.NewString()
	body := `{"hotelUid":"` + hotelUID + `","paymentUid":"` + paymentUID + `","startDate":"2025-10-01","endDate":"2025-10-03","status":"PAID"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/reservations", "alice", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created reservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "PAID", created.Status)
	assert.Equal(t, paymentUID, created.PaymentUID)
	assert.Equal(t, "Россия, Санкт-Петербург, Вознесенский пр., 1", created.Hotel.FullAddress)

	rec = doRequest(e, http.MethodGet, "/api/v1/reservations/"+created.ReservationUID, "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// чужой пользователь бронь не видит
	rec = doRequest(e, http.MethodGet, "/api/v1/reservations/"+created.ReservationUID, "mallory", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReservationHandlerUnknownHotel(t *testing.T) {
	e, _ := newReservationEcho(t)

	body := `{"hotelUid":"` + uuid.NewString() + `","paymentUid":"` + uuid.NewString() + `","startDate":"2025-10-01","endDate":"2025-10-03","status":"PAID"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/reservations", "alice", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "hotelUid", resp.Errors[0].Field)
}

func TestReservationHandlerCancelIsIdempotent(t *testing.T) {
	e, hotelUID := newReservationEcho(t)

	body := `{"hotelUid":"` + hotelUID + `","paymentUid":"` + uuid.NewString() + `","startDate":"2025-10-01","endDate":"2025-10-02","status":"PAID"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/reservations", "alice", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created reservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	for i := 0; i < 2; i++ {
		rec = doRequest(e, http.MethodDelete, "/api/v1/reservations/"+created.ReservationUID, "alice", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestReservationHandlerHotels(t *testing.T) {
	e, hotelUID := newReservationEcho(t)

	rec := doRequest(e, http.MethodGet, "/api/v1/hotels?page=0&size=5", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page hotelPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.TotalElements)

	rec = doRequest(e, http.MethodGet, "/api/v1/hotels/"+hotelUID, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/hotels/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandlerLifecycle(t *testing.T) {
	e := echo.New()
	svc := payment.NewService(memory.NewPaymentRepository(), quietLogger())
	NewPayment(svc, quietLogger()).Register(e)

	rec := doRequest(e, http.MethodPost, "/api/v1/payments", "", `{"price":2700}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created paymentDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "PAID", created.Status)
	assert.Equal(t, int64(2700), created.Price)

	rec = doRequest(e, http.MethodGet, "/api/v1/payments/"+created.PaymentUID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// отмена идемпотентна
	for i := 0; i < 2; i++ {
		rec = doRequest(e, http.MethodDelete, "/api/v1/payments/"+created.PaymentUID, "", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/payments/"+uuid.NewString(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandlerRejectsNegativePrice(t *testing.T) {
	e := echo.New()
	svc := payment.NewService(memory.NewPaymentRepository(), quietLogger())
	NewPayment(svc, quietLogger()).Register(e)

	rec := doRequest(e, http.MethodPost, "/api/v1/payments", "", `{"price":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentHandlerCancelReversedConflict(t *testing.T) {
	payments := memory.NewPaymentRepository()
	reversed, err := payments.Create(domain.Payment{
		PaymentUID: uuid.NewString(),
		Status:     domain.PaymentStatusReversed,
		Price:      100,
	})
	require.NoError(t, err)

	e := echo.New()
	NewPayment(payment.NewService(payments, quietLogger()), quietLogger()).Register(e)

	rec := doRequest(e, http.MethodDelete, "/api/v1/payments/"+reversed.PaymentUID, "", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoyaltyHandler(t *testing.T) {
	e := echo.New()
	svc := loyalty.NewService(memory.NewLoyaltyRepository(), quietLogger())
	NewLoyalty(svc, quietLogger()).Register(e)

	// пока пользователь не бронировал, аккаунта нет
	rec := doRequest(e, http.MethodGet, "/api/v1/loyalty", "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/loyalty/adjust", "alice", `{"delta":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var account loyaltyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "SILVER", account.Status)
	assert.Equal(t, 5, account.Discount)
	assert.Equal(t, 10, account.ReservationCount)

	rec = doRequest(e, http.MethodGet, "/api/v1/loyalty", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// заголовок обязателен
	rec = doRequest(e, http.MethodGet, "/api/v1/loyalty", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
