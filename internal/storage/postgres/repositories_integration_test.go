package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/avoronkov/hotel-booking/internal/domain"
)

func seedHotelForIntegrationTest(t *testing.T, hotels domain.HotelRepository) domain.Hotel {
	t.Helper()

	hotel, err := hotels.Create(domain.Hotel{
		HotelUID: uuid.NewString(),
		Name:     "Ararat Park Hyatt Moscow",
		Country:  "Россия",
		City:     "Москва",
		Address:  "Неглинная ул., 4",
		Stars:    5,
		Price:    10000,
	})
	if err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	return hotel
}

func TestHotelRepositoryIntegration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	hotels := NewHotelRepository(store)

	created := seedHotelForIntegrationTest(t, hotels)
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	byUID, err := hotels.GetByUID(created.HotelUID)
	if err != nil {
		t.Fatalf("get hotel by uid: %v", err)
	}
	if byUID.FullAddress() != "Россия, Москва, Неглинная ул., 4" {
		t.Errorf("full address = %q", byUID.FullAddress())
	}

	byID, err := hotels.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get hotel by id: %v", err)
	}
	if byID.HotelUID != created.HotelUID {
		t.Errorf("hotel uid mismatch: %s vs %s", byID.HotelUID, created.HotelUID)
	}

	items, total, err := hotels.List(0, 10)
	if err != nil {
		t.Fatalf("list hotels: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("total = %d, len(items) = %d, want 1/1", total, len(items))
	}

	if _, err := hotels.GetByUID(uuid.NewString()); err != domain.ErrHotelNotFound {
		t.Errorf("err = %v, want ErrHotelNotFound", err)
	}
}

func TestReservationRepositoryIntegration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	hotels := NewHotelRepository(store)
	reservations := NewReservationRepository(store)

	hotel := seedHotelForIntegrationTest(t, hotels)

	created, err := reservations.Create(domain.Reservation{
		ReservationUID: uuid.NewString(),
		Username:       "alice",
		PaymentUID:     uuid.NewString(),
		HotelID:        hotel.ID,
		Status:         domain.ReservationStatusPaid,
		StartDate:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	loaded, err := reservations.GetByUID(created.ReservationUID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if loaded.Status != domain.ReservationStatusPaid {
		t.Errorf("status = %s, want PAID", loaded.Status)
	}
	if loaded.Nights() != 3 {
		t.Errorf("nights = %d, want 3", loaded.Nights())
	}

	list, err := reservations.ListByUsername("alice")
	if err != nil {
		t.Fatalf("list reservations: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}

	if err := reservations.UpdateStatus(created.ReservationUID, domain.ReservationStatusCanceled); err != nil {
		t.Fatalf("update status: %v", err)
	}
	loaded, err = reservations.GetByUID(created.ReservationUID)
	if err != nil {
		t.Fatalf("get reservation after cancel: %v", err)
	}
	if loaded.Status != domain.ReservationStatusCanceled {
		t.Errorf("status = %s, want CANCELED", loaded.Status)
	}

	if err := reservations.UpdateStatus(uuid.NewString(), domain.ReservationStatusCanceled); err != domain.ErrReservationNotFound {
		t.Errorf("err = %v, want ErrReservationNotFound", err)
	}
}

func TestPaymentRepositoryIntegration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	payments := NewPaymentRepository(store)

	created, err := payments.Create(domain.Payment{
		PaymentUID: uuid.NewString(),
		Status:     domain.PaymentStatusPaid,
		Price:      2700,
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	loaded, err := payments.GetByUID(created.PaymentUID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if loaded.Price != 2700 || loaded.Status != domain.PaymentStatusPaid {
		t.Errorf("payment = %+v", loaded)
	}

	if err := payments.UpdateStatus(created.PaymentUID, domain.PaymentStatusCanceled); err != nil {
		t.Fatalf("update payment status: %v", err)
	}
	loaded, err = payments.GetByUID(created.PaymentUID)
	if err != nil {
		t.Fatalf("get payment after cancel: %v", err)
	}
	if loaded.Status != domain.PaymentStatusCanceled {
		t.Errorf("status = %s, want CANCELED", loaded.Status)
	}

	if _, err := payments.GetByUID(uuid.NewString()); err != domain.ErrPaymentNotFound {
		t.Errorf("err = %v, want ErrPaymentNotFound", err)
	}
}

func TestLoyaltyRepositoryIntegration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	accounts := NewLoyaltyRepository(store)

	if _, err := accounts.GetByUsername("alice"); err != domain.ErrLoyaltyNotFound {
		t.Fatalf("err = %v, want ErrLoyaltyNotFound", err)
	}

	saved, err := accounts.ApplyDelta("alice", 10)
	if err != nil {
		t.Fatalf("apply loyalty delta: %v", err)
	}
	if saved.Status != domain.LoyaltyLevelSilver || saved.Discount != 5 {
		t.Errorf("account = %+v, want SILVER/5", saved)
	}

	// повторная дельта — upsert той же строки
	updated, err := accounts.ApplyDelta("alice", 10)
	if err != nil {
		t.Fatalf("apply loyalty delta again: %v", err)
	}
	if updated.ID != saved.ID {
		t.Errorf("id changed on upsert: %d vs %d", updated.ID, saved.ID)
	}
	if updated.Status != domain.LoyaltyLevelGold {
		t.Errorf("status = %s, want GOLD", updated.Status)
	}

	// отсечка в нуле
	clamped, err := accounts.ApplyDelta("alice", -100)
	if err != nil {
		t.Fatalf("apply negative delta: %v", err)
	}
	if clamped.ReservationCount != 0 || clamped.Status != domain.LoyaltyLevelBronze {
		t.Errorf("account = %+v, want BRONZE/0", clamped)
	}

	loaded, err := accounts.GetByUsername("alice")
	if err != nil {
		t.Fatalf("get loyalty account: %v", err)
	}
	if loaded.ReservationCount != 0 {
		t.Errorf("count = %d, want 0", loaded.ReservationCount)
	}
}

func TestLoyaltyRepositoryConcurrentAdjustIntegration(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	accounts := NewLoyaltyRepository(store)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := accounts.ApplyDelta("bob", 1); err != nil {
				t.Errorf("apply delta: %v", err)
			}
		}()
	}
	wg.Wait()

	loaded, err := accounts.GetByUsername("bob")
	if err != nil {
		t.Fatalf("get loyalty account: %v", err)
	}
	if loaded.ReservationCount != workers {
		t.Errorf("count = %d, want %d (lost increments)", loaded.ReservationCount, workers)
	}
	if loaded.Status != domain.LoyaltyLevelGold {
		t.Errorf("status = %s, want GOLD", loaded.Status)
	}
}

func TestMigrationFlowIntegration(t *testing.T) {
	store := openRawPostgresStoreForIntegrationTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status: %v", err)
	}
	if version == 0 || count == 0 {
		t.Fatalf("version = %d, count = %d, want applied migrations", version, count)
	}

	// сид отелей должен быть на месте
	var seeded int
	if err := store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&seeded); err != nil {
		t.Fatalf("count seeded hotels: %v", err)
	}
	if seeded == 0 {
		t.Error("expected seeded hotels after migrations")
	}

	if err := store.MigrateDown(ctx, 1); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	downVersion, _, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status after down: %v", err)
	}
	if downVersion >= version {
		t.Errorf("version after down = %d, want < %d", downVersion, version)
	}

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}
}
