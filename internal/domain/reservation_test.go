package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

// helper для создания валидной брони на три ночи.
func makeReservation() domain.Reservation {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	return domain.Reservation{
		ReservationUID: "res-1",
		Username:       "user-1",
		PaymentUID:     "pay-1",
		HotelID:        1,
		Status:         domain.ReservationStatusPaid,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 3),
	}
}

func TestReservationValidate_Ok(t *testing.T) {
	r := makeReservation()
	if errs := r.Validate(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestReservationValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(r *domain.Reservation)
		want error
	}{
		{
			name: "no username",
			mut:  func(r *domain.Reservation) { r.Username = "" },
			want: domain.ErrUsernameRequired,
		},
		{
			name: "no payment uid",
			mut:  func(r *domain.Reservation) { r.PaymentUID = "" },
			want: domain.ErrPaymentUIDRequired,
		},
		{
			name: "end equals start",
			mut:  func(r *domain.Reservation) { r.EndDate = r.StartDate },
			want: domain.ErrDateOrder,
		},
		{
			name: "end before start",
			mut:  func(r *domain.Reservation) { r.EndDate = r.StartDate.AddDate(0, 0, -1) },
			want: domain.ErrDateOrder,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := makeReservation()
			tc.mut(&r)

			errs := r.Validate()
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, err := range errs {
				if errors.Is(err, tc.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %v in %v", tc.want, errs)
			}
		})
	}
}

func TestReservationNights(t *testing.T) {
	r := makeReservation()
	if n := r.Nights(); n != 3 {
		t.Fatalf("expected 3 nights, got %d", n)
	}
}

func TestReservationCanCancel(t *testing.T) {
	r := makeReservation()

	for _, status := range []domain.ReservationStatus{domain.ReservationStatusReserved, domain.ReservationStatusPaid} {
		r.Status = status
		if !r.CanCancel() {
			t.Errorf("expected %s to be cancelable", status)
		}
	}

	r.Status = domain.ReservationStatusCanceled
	if r.CanCancel() {
		t.Error("CANCELED reservation must not be cancelable again")
	}
}
