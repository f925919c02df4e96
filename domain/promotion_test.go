package domain

import (
	"errors"
	"math"
	"testing"
)

func TestNewPromotionValidation(t *testing.T) {
	tests := []struct {
		name    string
		promo   string
		percent float64
		kind    PromotionKind
		wantErr bool
	}{
		{"valid standard", "Summer Sale", 20, PromotionStandard, false},
		{"valid loyalty at full discount", "Free Ride", 100, PromotionLoyaltyOnly, false},
		{"zero percent", "Nothing", 0, PromotionStandard, true},
		{"negative percent", "Surcharge", -5, PromotionStandard, true},
		{"over hundred", "Too Good", 100.5, PromotionStandard, true},
		{"blank name", "  ", 20, PromotionStandard, true},
		{"unknown kind", "Mystery", 20, PromotionKind("vip"), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPromotion(tc.promo, tc.percent, tc.kind)
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("NewPromotion = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPromotion: %v", err)
			}
			if p.ID == "" {
				t.Error("promotion should get a fresh id")
			}
		})
	}
}

func TestPromotionIDsUnique(t *testing.T) {
	a, err := NewPromotion("Summer Sale", 20, PromotionStandard)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewPromotion("Summer Sale", 20, PromotionStandard)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Errorf("two promotions share id %q", a.ID)
	}
}

func TestRehydratePromotionKeepsID(t *testing.T) {
	p, err := RehydratePromotion("PRM-fixed", "Summer Sale", 20, PromotionStandard)
	if err != nil {
		t.Fatalf("RehydratePromotion: %v", err)
	}
	if p.ID != "PRM-fixed" {
		t.Errorf("id = %q, want stored value", p.ID)
	}
	if _, err := RehydratePromotion("", "Summer Sale", 20, PromotionStandard); !errors.Is(err, ErrValidation) {
		t.Errorf("blank id = %v, want ErrValidation", err)
	}
}

func TestApplyToCompoundsMultiplicatively(t *testing.T) {
	trip := newTestTrip(t, 10)

	twenty, err := NewPromotion("Summer Sale", 20, PromotionStandard)
	if err != nil {
		t.Fatal(err)
	}
	fifteen, err := NewPromotion("Loyalty Bonus", 15, PromotionLoyaltyOnly)
	if err != nil {
		t.Fatal(err)
	}

	if err := twenty.ApplyTo(trip); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if got := trip.Price(); math.Abs(got-80) > 1e-9 {
		t.Errorf("price after 20%% = %.4f, want 80", got)
	}

	if err := fifteen.ApplyTo(trip); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if got := trip.Price(); math.Abs(got-68) > 1e-9 {
		t.Errorf("price after 20%% then 15%% = %.4f, want 68", got)
	}
}

func TestApplyToNilTrip(t *testing.T) {
	p, err := NewPromotion("Summer Sale", 20, PromotionStandard)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.ApplyTo(nil); !errors.Is(err, ErrValidation) {
		t.Errorf("ApplyTo(nil) = %v, want ErrValidation", err)
	}
}

func TestParsePromotionKind(t *testing.T) {
	if k, err := ParsePromotionKind(" Loyalty_Only "); err != nil || k != PromotionLoyaltyOnly {
		t.Errorf("ParsePromotionKind = %v, %v", k, err)
	}
	if _, err := ParsePromotionKind("flash"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown kind = %v, want ErrValidation", err)
	}
}
