package models

import "train-booking/domain"

// PromotionRequest creates a promotion.
type PromotionRequest struct {
	Name            string  `json:"name" binding:"required"`
	DiscountPercent float64 `json:"discount_percent" binding:"required,gt=0,lte=100"`
	Kind            string  `json:"kind" binding:"required"`
}

// PromotionView is the wire view of a promotion.
type PromotionView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DiscountPercent float64 `json:"discount_percent"`
	Kind            string  `json:"kind"`
}

// ViewFromPromotion converts a promotion into its wire view.
func ViewFromPromotion(p domain.Promotion) PromotionView {
	return PromotionView{
		ID:              p.ID,
		Name:            p.Name,
		DiscountPercent: p.DiscountPercent,
		Kind:            string(p.Kind),
	}
}
