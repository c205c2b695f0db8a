package payment

import (
	"errors"
	"testing"

	"github.com/avoronkov/hotel-booking/internal/domain"
	"github.com/avoronkov/hotel-booking/internal/storage/memory"
)

func newService() *Service {
	return NewService(memory.NewPaymentRepository(), nil)
}

func TestCreate_StartsPaid(t *testing.T) {
	svc := newService()

	p, err := svc.Create(2700)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != domain.PaymentStatusPaid {
		t.Fatalf("expected PAID, got %s", p.Status)
	}
	if p.PaymentUID == "" {
		t.Fatal("expected payment uid to be generated")
	}

	got, err := svc.Get(p.PaymentUID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Price != 2700 {
		t.Fatalf("expected price 2700, got %d", got.Price)
	}
}

func TestCreate_NegativePrice(t *testing.T) {
	svc := newService()

	_, err := svc.Create(-1)
	if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	svc := newService()
	p, err := svc.Create(1000)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Cancel(p.PaymentUID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	// Повторная отмена не должна возвращать ошибку.
	if err := svc.Cancel(p.PaymentUID); err != nil {
		t.Fatalf("second cancel: %v", err)
	}

	got, _ := svc.Get(p.PaymentUID)
	if got.Status != domain.PaymentStatusCanceled {
		t.Fatalf("expected CANCELED, got %s", got.Status)
	}
}

func TestCancel_Unknown(t *testing.T) {
	svc := newService()
	if err := svc.Cancel("missing"); !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestCancel_ReversedConflicts(t *testing.T) {
	repo := memory.NewPaymentRepository()
	svc := NewService(repo, nil)

	created, err := repo.Create(domain.Payment{PaymentUID: "pay-1", Status: domain.PaymentStatusReversed, Price: 100})
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	if err := svc.Cancel(created.PaymentUID); !errors.Is(err, domain.ErrPaymentStateConflict) {
		t.Fatalf("expected ErrPaymentStateConflict, got %v", err)
	}
}
