package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"train-booking/domain"
)

// respondError maps domain sentinels onto HTTP statuses and writes the error
// body the way every endpoint does.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrNoSeats):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
