// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RitikChahar/RoomSpa/internal/modules/earnings"
	"github.com/RitikChahar/RoomSpa/internal/modules/matching"
	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/modules/therapist"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeServiceError maps domain errors to HTTP statuses. NotFound and
// Conflict both answer 404 so callers cannot probe the state of bookings
// they do not own.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrBadRequest),
		errors.Is(err, therapist.ErrBadRequest),
		errors.Is(err, matching.ErrBadRequest),
		errors.Is(err, earnings.ErrBadPeriod):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, order.ErrConflict),
		errors.Is(err, therapist.ErrNotFound):
		writeError(c, http.StatusNotFound, "not found")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
