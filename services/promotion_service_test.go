package services

import (
	"errors"
	"math"
	"sync"
	"testing"

	"train-booking/domain"
	"train-booking/notify"
)

type recipientSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *recipientSender) Send(recipient string, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, recipient)
	return nil
}

func (s *recipientSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	copy(out, s.sent)
	return out
}

func newPromotionFixture(t *testing.T) (*PromotionService, *TripRegistry, *CustomerRegistry, *memoryStore, *recipientSender, *notify.Dispatcher) {
	t.Helper()
	store := newMemoryStore()
	trips := NewTripRegistry()
	customers := NewCustomerRegistry()
	sender := &recipientSender{}
	dispatcher := notify.NewDispatcher(sender, 64)
	svc := NewPromotionService(store, store, trips, customers, dispatcher)
	return svc, trips, customers, store, sender, dispatcher
}

func TestPromotionServiceCreate(t *testing.T) {
	svc, _, _, store, _, _ := newPromotionFixture(t)

	p, err := svc.Create("Summer Sale", 20, domain.PromotionStandard)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := store.promotions[p.ID]; !ok {
		t.Error("created promotion should be persisted")
	}

	got, err := svc.Get(p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Summer Sale" || got.DiscountPercent != 20 {
		t.Errorf("Get = %+v", got)
	}
}

func TestPromotionServiceDuplicateName(t *testing.T) {
	svc, _, _, _, _, _ := newPromotionFixture(t)

	if _, err := svc.Create("Summer Sale", 20, domain.PromotionStandard); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create("Summer Sale", 10, domain.PromotionLoyaltyOnly); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("duplicate name = %v, want ErrDuplicate", err)
	}
}

func TestPromotionServiceApply(t *testing.T) {
	svc, trips, _, store, _, _ := newPromotionFixture(t)
	trip := newServiceTrip(t, 10)
	trips.Put(trip)

	p, err := svc.Create("Summer Sale", 20, domain.PromotionStandard)
	if err != nil {
		t.Fatal(err)
	}

	price, err := svc.Apply(p.ID, trip.ID())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if math.Abs(price-80) > 1e-9 {
		t.Errorf("price = %.4f, want 80", price)
	}
	state, ok := store.trips[trip.ID()]
	if !ok {
		t.Fatal("discounted trip should be persisted")
	}
	if math.Abs(state.Price-80) > 1e-9 {
		t.Errorf("persisted price = %.4f, want 80", state.Price)
	}

	// Applying again compounds.
	price, err = svc.Apply(p.ID, trip.ID())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(price-64) > 1e-9 {
		t.Errorf("price after second application = %.4f, want 64", price)
	}
}

func TestPromotionServiceApplyUnknown(t *testing.T) {
	svc, trips, _, _, _, _ := newPromotionFixture(t)
	trip := newServiceTrip(t, 10)
	trips.Put(trip)

	if _, err := svc.Apply("missing-id", trip.ID()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown promotion = %v, want ErrNotFound", err)
	}

	p, err := svc.Create("Summer Sale", 20, domain.PromotionStandard)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Apply(p.ID, "TRP_99999999"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown trip = %v, want ErrNotFound", err)
	}
}

func TestPromotionServiceRestore(t *testing.T) {
	svc, _, _, store, _, _ := newPromotionFixture(t)

	p, err := domain.RehydratePromotion("PRM-stored", "Winter Sale", 25, domain.PromotionStandard)
	if err != nil {
		t.Fatal(err)
	}
	svc.Restore(p)

	got, err := svc.Get("PRM-stored")
	if err != nil {
		t.Fatalf("Get after Restore: %v", err)
	}
	if got.Name != "Winter Sale" {
		t.Errorf("restored promotion = %+v", got)
	}
	if len(store.promotions) != 0 {
		t.Error("Restore must not persist again")
	}
}

func TestPromotionServiceBroadcastFiltersLoyalty(t *testing.T) {
	svc, _, customers, _, sender, dispatcher := newPromotionFixture(t)
	registerTestCustomer(t, customers, "loyal@example.com", true)
	registerTestCustomer(t, customers, "casual@example.com", false)
	dispatcher.Start()

	loyalty, err := svc.Create("Loyalty Bonus", 15, domain.PromotionLoyaltyOnly)
	if err != nil {
		t.Fatal(err)
	}
	queued, err := svc.Broadcast(loyalty.ID)
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if queued != 1 {
		t.Errorf("loyalty broadcast queued %d, want 1", queued)
	}

	everyone, err := svc.Create("Summer Sale", 20, domain.PromotionStandard)
	if err != nil {
		t.Fatal(err)
	}
	queued, err = svc.Broadcast(everyone.ID)
	if err != nil {
		t.Fatal(err)
	}
	if queued != 2 {
		t.Errorf("standard broadcast queued %d, want 2", queued)
	}

	dispatcher.Stop()

	got := sender.recipients()
	if len(got) != 3 {
		t.Fatalf("delivered %d notifications, want 3", len(got))
	}
	if got[0] != "loyal@example.com" {
		t.Errorf("loyalty announcement went to %q", got[0])
	}
}
