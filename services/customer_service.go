package services

import (
	"fmt"
	"log"
	"strings"

	"train-booking/domain"
)

// CustomerService manages customer accounts. Uniqueness is keyed by email
// alone; the registry check happens here, before the core is touched.
type CustomerService struct {
	registry *CustomerRegistry
	store    CustomerStore
}

func NewCustomerService(registry *CustomerRegistry, store CustomerStore) *CustomerService {
	return &CustomerService{registry: registry, store: store}
}

// Register validates and creates a customer account. A repeated email yields
// ErrDuplicate.
func (s *CustomerService) Register(email, password, name string, loyaltyMember bool) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(email, password, name, loyaltyMember)
	if err != nil {
		return nil, err
	}
	if _, exists := s.registry.Get(customer.Email); exists {
		return nil, fmt.Errorf("customer %s: %w", customer.Email, domain.ErrDuplicate)
	}
	if err := s.store.SaveCustomer(customer); err != nil {
		return nil, fmt.Errorf("persist customer %s: %w", customer.Email, err)
	}
	s.registry.Put(customer)
	log.Printf("Customer registered: %s (loyalty=%t)", customer.Email, customer.LoyaltyMember)
	return customer, nil
}

// Get returns the customer for an email.
func (s *CustomerService) Get(email string) (*domain.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	customer, ok := s.registry.Get(email)
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", email, domain.ErrNotFound)
	}
	return customer, nil
}
