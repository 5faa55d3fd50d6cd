// README: Booking handlers: create, lifecycle transitions, listing, review.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RitikChahar/RoomSpa/internal/http/middleware"
	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

type OrderHandler struct {
	order *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{order: svc}
}

type createOrderReq struct {
	TherapistID string  `json:"therapist_id"`
	Service     string  `json:"service"`
	Price       string  `json:"price"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type orderView struct {
	ID           types.ID    `json:"id"`
	CustomerID   types.ID    `json:"customer_id"`
	TherapistID  *types.ID   `json:"therapist_id,omitempty"`
	Service      string      `json:"service"`
	Price        types.Money `json:"price"`
	Status       string      `json:"status"`
	Address      string      `json:"address"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	CreatedAt    time.Time   `json:"created_at"`
	AcceptedAt   *time.Time  `json:"accepted_at,omitempty"`
	StartedAt    *time.Time  `json:"started_at,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	CancelledAt  *time.Time  `json:"cancelled_at,omitempty"`
	CancelReason *string     `json:"cancellation_reason,omitempty"`
	Rating       *int        `json:"rating,omitempty"`
	Review       *string     `json:"review,omitempty"`
}

func viewOf(o *order.Order) orderView {
	return orderView{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		TherapistID:  o.TherapistID,
		Service:      string(o.Service),
		Price:        o.Price,
		Status:       string(o.Status),
		Address:      o.Address,
		Latitude:     o.Position.Lat,
		Longitude:    o.Position.Lng,
		CreatedAt:    o.CreatedAt,
		AcceptedAt:   o.AcceptedAt,
		StartedAt:    o.StartedAt,
		CompletedAt:  o.CompletedAt,
		CancelledAt:  o.CancelledAt,
		CancelReason: o.CancelReason,
		Rating:       o.Rating,
		Review:       o.Review,
	}
}

func viewsOf(orders []*order.Order) []orderView {
	out := make([]orderView, len(orders))
	for i, o := range orders {
		out[i] = viewOf(o)
	}
	return out
}

func callerID(c *gin.Context) types.ID {
	return types.ID(c.GetString(middleware.KeyUserID))
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	price, err := types.ParseMoney(req.Price)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid price")
		return
	}
	o, err := h.order.Create(c.Request.Context(), order.CreateCommand{
		CustomerID:  callerID(c),
		TherapistID: types.ID(req.TherapistID),
		Service:     req.Service,
		Price:       price,
		Address:     req.Address,
		Position:    types.Point{Lat: req.Latitude, Lng: req.Longitude},
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, viewOf(o))
}

// Get returns a booking to its customer or its assigned therapist; anyone
// else sees 404.
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.order.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	caller := callerID(c)
	switch c.GetString(middleware.KeyUserRole) {
	case middleware.RoleCustomer:
		if o.CustomerID != caller {
			writeError(c, http.StatusNotFound, "not found")
			return
		}
	case middleware.RoleTherapist:
		assigned := o.TherapistID != nil && *o.TherapistID == caller
		if !assigned && o.Status != order.StatusPending {
			writeError(c, http.StatusNotFound, "not found")
			return
		}
	}
	writeJSON(c, http.StatusOK, viewOf(o))
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.order.ListByCustomer(c.Request.Context(), callerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"bookings": viewsOf(orders)})
}

func (h *OrderHandler) ListIncoming(c *gin.Context) {
	orders, err := h.order.ListIncoming(c.Request.Context(), callerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"bookings": viewsOf(orders)})
}

func (h *OrderHandler) Accept(c *gin.Context) {
	o, err := h.order.Accept(c.Request.Context(), order.AcceptCommand{
		OrderID:     types.ID(c.Param("id")),
		TherapistID: callerID(c),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOf(o))
}

func (h *OrderHandler) Start(c *gin.Context) {
	o, err := h.order.Start(c.Request.Context(), order.StartCommand{
		OrderID:     types.ID(c.Param("id")),
		TherapistID: callerID(c),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOf(o))
}

func (h *OrderHandler) Complete(c *gin.Context) {
	o, err := h.order.Complete(c.Request.Context(), order.CompleteCommand{
		OrderID:     types.ID(c.Param("id")),
		TherapistID: callerID(c),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOf(o))
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	var req cancelReq
	_ = c.ShouldBindJSON(&req) // body is optional

	cmd := order.CancelCommand{OrderID: types.ID(c.Param("id")), Reason: req.Reason}
	if c.GetString(middleware.KeyUserRole) == middleware.RoleCustomer {
		cmd.CustomerID = callerID(c)
	} else {
		cmd.TherapistID = callerID(c)
	}
	o, err := h.order.Cancel(c.Request.Context(), cmd)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOf(o))
}

type reviewReq struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (h *OrderHandler) Review(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := h.order.SetReview(c.Request.Context(), order.ReviewCommand{
		OrderID:    types.ID(c.Param("id")),
		CustomerID: callerID(c),
		Rating:     req.Rating,
		Review:     req.Review,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, viewOf(o))
}
