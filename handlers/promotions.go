package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-booking/domain"
	"train-booking/models"
	"train-booking/services"
)

// PromotionHandler serves promotion creation, application and broadcast.
type PromotionHandler struct {
	Promotions *services.PromotionService
}

// Create registers a new promotion.
func (h *PromotionHandler) Create(c *gin.Context) {
	var req models.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, err := domain.ParsePromotionKind(req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}
	p, err := h.Promotions.Create(req.Name, req.DiscountPercent, kind)
	if err != nil {
		log.Printf("Error creating promotion: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ViewFromPromotion(p))
}

// Apply discounts a trip's price by a promotion.
func (h *PromotionHandler) Apply(c *gin.Context) {
	price, err := h.Promotions.Apply(c.Param("id"), c.Param("tripID"))
	if err != nil {
		log.Printf("Error applying promotion: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "price": price})
}

// Broadcast announces a promotion to every eligible customer.
func (h *PromotionHandler) Broadcast(c *gin.Context) {
	recipients, err := h.Promotions.Broadcast(c.Param("id"))
	if err != nil {
		log.Printf("Error broadcasting promotion: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "recipients": recipients})
}
