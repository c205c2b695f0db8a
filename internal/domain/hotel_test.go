package domain_test

import (
	"testing"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

func TestHotelFullAddress(t *testing.T) {
	h := domain.Hotel{Country: "Россия", City: "Москва", Address: "ул. Ленина, 2"}
	if got := h.FullAddress(); got != "Россия, Москва, ул. Ленина, 2" {
		t.Fatalf("unexpected full address: %q", got)
	}
}

func TestHotelValidate(t *testing.T) {
	h := domain.Hotel{HotelUID: "hotel-1", Price: 1000}
	if errs := h.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	h.Price = 0
	h.HotelUID = ""
	if errs := h.Validate(); len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}
