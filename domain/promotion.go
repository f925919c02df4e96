package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PromotionKind restricts who a promotion is announced to. The promotion
// itself has no customer awareness: eligibility filtering happens when the
// caller enumerates recipients, never at application time.
type PromotionKind string

const (
	PromotionStandard    PromotionKind = "standard"
	PromotionLoyaltyOnly PromotionKind = "loyalty_only"
)

// Valid reports whether k is a known promotion kind.
func (k PromotionKind) Valid() bool {
	return k == PromotionStandard || k == PromotionLoyaltyOnly
}

// ParsePromotionKind resolves a promotion kind name, case-insensitively.
func ParsePromotionKind(name string) (PromotionKind, error) {
	k := PromotionKind(strings.ToLower(strings.TrimSpace(name)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown promotion kind %q: %w", name, ErrValidation)
	}
	return k, nil
}

// Promotion is a percentage discount on a trip's price.
type Promotion struct {
	ID              string
	Name            string
	DiscountPercent float64
	Kind            PromotionKind
}

// NewPromotion validates and builds a promotion with a fresh id.
func NewPromotion(name string, discountPercent float64, kind PromotionKind) (Promotion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Promotion{}, fmt.Errorf("promotion name must not be blank: %w", ErrValidation)
	}
	if discountPercent <= 0 || discountPercent > 100 {
		return Promotion{}, fmt.Errorf("discount %.2f%% outside (0,100]: %w", discountPercent, ErrValidation)
	}
	if !kind.Valid() {
		return Promotion{}, fmt.Errorf("unknown promotion kind %q: %w", kind, ErrValidation)
	}
	return Promotion{
		ID:              uuid.NewString(),
		Name:            name,
		DiscountPercent: discountPercent,
		Kind:            kind,
	}, nil
}

// RehydratePromotion rebuilds a persisted promotion keeping its id.
func RehydratePromotion(id, name string, discountPercent float64, kind PromotionKind) (Promotion, error) {
	p, err := NewPromotion(name, discountPercent, kind)
	if err != nil {
		return Promotion{}, err
	}
	if id == "" {
		return Promotion{}, fmt.Errorf("promotion id must not be blank: %w", ErrValidation)
	}
	p.ID = id
	return p, nil
}

// ApplyTo multiplies the trip's current price by (1 - discount/100).
// Applying twice compounds multiplicatively.
func (p Promotion) ApplyTo(t *Trip) error {
	if t == nil {
		return fmt.Errorf("apply promotion %s: trip is required: %w", p.Name, ErrValidation)
	}
	t.discountPrice(1 - p.DiscountPercent/100)
	return nil
}
