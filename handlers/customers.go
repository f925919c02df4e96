package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-booking/models"
	"train-booking/services"
)

// CustomerHandler serves account registration and profile reads.
type CustomerHandler struct {
	Customers *services.CustomerService
}

// Register creates a customer account.
func (h *CustomerHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.Customers.Register(req.Email, req.Password, req.Name, req.LoyaltyMember)
	if err != nil {
		log.Printf("Error registering customer: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ProfileFromCustomer(customer))
}

// Get returns a customer profile with the ticket ledger.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.Customers.Get(c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProfileFromCustomer(customer))
}
