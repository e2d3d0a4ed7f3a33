package api

import (
	"errors"
	"net/http"

	"bookswap/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// respondUsecaseError maps usecase sentinel errors onto HTTP statuses. Every
// handler funnels its error paths through here so the API surface stays
// consistent.
func respondUsecaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
	case errors.Is(err, errs.ErrExchangeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Exchange not found"})
	case errors.Is(err, errs.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, errs.ErrRewardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reward not found"})
	case errors.Is(err, errs.ErrBookAlreadyInExchange):
		c.JSON(http.StatusConflict, gin.H{"error": "Book already has an active exchange"})
	case errors.Is(err, errs.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation not allowed in current state"})
	case errors.Is(err, errs.ErrPaymentNotSettled):
		c.JSON(http.StatusConflict, gin.H{"error": "Payment must be settled before confirmation"})
	case errors.Is(err, errs.ErrConfirmationToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Confirmation token rejected"})
	case errors.Is(err, errs.ErrInsufficientPoints):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient points"})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
