package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"hospital-management-server/internal/services"
	"hospital-management-server/internal/utils"
)

// respondServiceError maps service-layer sentinel errors onto HTTP
// responses. Unknown errors are infrastructure faults and become 500s.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInsufficientQuantity):
		utils.BadRequest(c, "Insufficient quantity")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicatePayment):
		utils.Conflict(c, "Payment with this idempotency key was already applied")
	default:
		utils.InternalServerError(c, err.Error())
	}
}
