package services

import (
	"fmt"
	"log"
	"sync"

	"train-booking/domain"
	"train-booking/notify"
)

// PromotionService creates promotions, applies them to trips and broadcasts
// announcements. Promotions are not trip-scoped, so announcements go straight
// through the dispatcher per recipient rather than through trip observers.
type PromotionService struct {
	mu         sync.RWMutex
	promotions map[string]domain.Promotion
	byName     map[string]string

	store      PromotionStore
	trips      TripStore
	registry   *TripRegistry
	customers  *CustomerRegistry
	dispatcher *notify.Dispatcher
}

func NewPromotionService(store PromotionStore, trips TripStore, registry *TripRegistry, customers *CustomerRegistry, dispatcher *notify.Dispatcher) *PromotionService {
	return &PromotionService{
		promotions: make(map[string]domain.Promotion),
		byName:     make(map[string]string),
		store:      store,
		trips:      trips,
		registry:   registry,
		customers:  customers,
		dispatcher: dispatcher,
	}
}

// Create validates and stores a promotion. Names are unique; a repeat yields
// ErrDuplicate.
func (s *PromotionService) Create(name string, discountPercent float64, kind domain.PromotionKind) (domain.Promotion, error) {
	p, err := domain.NewPromotion(name, discountPercent, kind)
	if err != nil {
		return domain.Promotion{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[p.Name]; exists {
		return domain.Promotion{}, fmt.Errorf("promotion %q: %w", p.Name, domain.ErrDuplicate)
	}
	if err := s.store.SavePromotion(p); err != nil {
		return domain.Promotion{}, fmt.Errorf("persist promotion %q: %w", p.Name, err)
	}
	s.promotions[p.ID] = p
	s.byName[p.Name] = p.ID
	log.Printf("Promotion created: %s (%.1f%%, %s)", p.Name, p.DiscountPercent, p.Kind)
	return p, nil
}

// Restore registers a rehydrated promotion without persisting it again.
func (s *PromotionService) Restore(p domain.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promotions[p.ID] = p
	s.byName[p.Name] = p.ID
}

// Get returns the promotion for an id.
func (s *PromotionService) Get(id string) (domain.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.promotions[id]
	if !ok {
		return domain.Promotion{}, fmt.Errorf("promotion %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// Apply discounts a trip's price by the promotion and persists the new price.
// Repeated applications compound multiplicatively.
func (s *PromotionService) Apply(promotionID, tripID string) (float64, error) {
	p, err := s.Get(promotionID)
	if err != nil {
		return 0, err
	}
	trip, ok := s.registry.Get(tripID)
	if !ok {
		return 0, fmt.Errorf("trip %s: %w", tripID, domain.ErrNotFound)
	}
	if err := p.ApplyTo(trip); err != nil {
		return 0, err
	}
	if err := s.trips.SaveTrip(trip); err != nil {
		return 0, fmt.Errorf("persist discounted trip %s: %w", tripID, err)
	}
	price := trip.Price()
	log.Printf("Promotion %s applied to trip %s, price now %.2f", p.Name, tripID, price)
	return price, nil
}

// Broadcast announces a promotion to every eligible customer: everyone for a
// standard promotion, loyalty members only for a loyalty one. Returns the
// number of recipients queued.
func (s *PromotionService) Broadcast(promotionID string) (int, error) {
	p, err := s.Get(promotionID)
	if err != nil {
		return 0, err
	}

	n := domain.Notification{
		Kind:    domain.NotifyPromotionAnnounced,
		Message: fmt.Sprintf("Promotion %s: %.1f%% off", p.Name, p.DiscountPercent),
	}

	queued := 0
	for _, c := range s.customers.All() {
		if p.Kind == domain.PromotionLoyaltyOnly && !c.LoyaltyMember {
			continue
		}
		if err := s.dispatcher.Enqueue(c.Email, n); err != nil {
			log.Printf("Promotion broadcast: %v", err)
			continue
		}
		queued++
	}
	log.Printf("Promotion %s announced to %d customer(s)", p.Name, queued)
	return queued, nil
}
