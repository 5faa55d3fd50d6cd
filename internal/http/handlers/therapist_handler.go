// README: Therapist self-service handlers (location, services, profile).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RitikChahar/RoomSpa/internal/modules/service"
	"github.com/RitikChahar/RoomSpa/internal/modules/therapist"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

type TherapistHandler struct {
	therapist *therapist.Service
}

func NewTherapistHandler(svc *therapist.Service) *TherapistHandler {
	return &TherapistHandler{therapist: svc}
}

type locationReq struct {
	Address       string   `json:"address"`
	ServiceRadius float64  `json:"service_radius"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

type locationView struct {
	TherapistID   types.ID     `json:"therapist_id"`
	Address       string       `json:"address"`
	ServiceRadius float64      `json:"service_radius"`
	Position      *types.Point `json:"position,omitempty"`
}

func locationViewOf(l *therapist.Location) locationView {
	return locationView{
		TherapistID:   l.TherapistID,
		Address:       l.Address,
		ServiceRadius: l.ServiceRadius,
		Position:      l.Position,
	}
}

// SetLocation upserts the caller's address and service radius. Coordinates
// are optional together: a therapist without a geocoded point is simply
// invisible to proximity search.
func (h *TherapistHandler) SetLocation(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	var pos *types.Point
	if req.Latitude != nil && req.Longitude != nil {
		pos = &types.Point{Lat: *req.Latitude, Lng: *req.Longitude}
	} else if req.Latitude != nil || req.Longitude != nil {
		writeError(c, http.StatusBadRequest, "latitude and longitude must be given together")
		return
	}
	loc, err := h.therapist.SetLocation(c.Request.Context(), therapist.LocationUpdate{
		TherapistID:   callerID(c),
		Address:       req.Address,
		ServiceRadius: req.ServiceRadius,
		Position:      pos,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, locationViewOf(loc))
}

func (h *TherapistHandler) GetLocation(c *gin.Context) {
	loc, err := h.therapist.GetLocation(c.Request.Context(), callerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, locationViewOf(loc))
}

type servicesReq struct {
	Services []string `json:"services"`
}

func (h *TherapistHandler) SetServices(c *gin.Context) {
	var req servicesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sv, err := h.therapist.SetServices(c.Request.Context(), callerID(c), req.Services)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"therapist_id": sv.TherapistID, "services": service.Strings(sv.Offered)})
}

func (h *TherapistHandler) GetServices(c *gin.Context) {
	sv, err := h.therapist.GetServices(c.Request.Context(), callerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"therapist_id": sv.TherapistID, "services": service.Strings(sv.Offered)})
}

func (h *TherapistHandler) Profile(c *gin.Context) {
	p, err := h.therapist.Profile(c.Request.Context(), callerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	view := gin.H{}
	if p.Summary != nil {
		view["name"] = p.Summary.Name
		view["email"] = p.Summary.Email
	}
	if p.Location != nil {
		view["location"] = locationViewOf(p.Location)
	}
	if p.Services != nil {
		view["services"] = service.Strings(p.Services.Offered)
	}
	writeJSON(c, http.StatusOK, view)
}
