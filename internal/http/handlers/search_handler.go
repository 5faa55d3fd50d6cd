// README: Nearby-therapist search handler.
package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RitikChahar/RoomSpa/internal/modules/matching"
	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

type SearchHandler struct {
	matching *matching.Service
}

func NewSearchHandler(svc *matching.Service) *SearchHandler {
	return &SearchHandler{matching: svc}
}

type matchView struct {
	TherapistID types.ID `json:"id"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Address     string   `json:"address,omitempty"`
	DistanceKm  float64  `json:"distance"`
	Services    []string `json:"services"`
}

// Nearby ranks eligible therapists by distance from the given point.
// Distances are rounded to 2 decimals for display only; ranking uses the
// unrounded values.
func (h *SearchHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid latitude")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid longitude")
		return
	}
	codes, err := service.ParseList(c.Query("services"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	var radius float64
	if raw := c.Query("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius < 0 {
			writeError(c, http.StatusBadRequest, "invalid radius")
			return
		}
	}

	matches, err := h.matching.FindNearby(c.Request.Context(), matching.Query{
		Origin:   types.Point{Lat: lat, Lng: lng},
		Services: codes,
		RadiusKm: radius,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	views := make([]matchView, len(matches))
	for i, m := range matches {
		views[i] = matchView{
			TherapistID: m.TherapistID,
			Name:        m.Name,
			Email:       m.Email,
			Address:     m.Address,
			DistanceKm:  math.Round(m.DistanceKm*100) / 100,
			Services:    service.Strings(m.Offered),
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"therapists": views})
}
