// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RitikChahar/RoomSpa/internal/http/handlers"
	"github.com/RitikChahar/RoomSpa/internal/http/middleware"
	"github.com/RitikChahar/RoomSpa/internal/modules/earnings"
	"github.com/RitikChahar/RoomSpa/internal/modules/matching"
	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/modules/therapist"
)

func NewRouter(
	orderService *order.Service,
	matchingService *matching.Service,
	therapistService *therapist.Service,
	earningsService *earnings.Service,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	orderHandler := handlers.NewOrderHandler(orderService)
	searchHandler := handlers.NewSearchHandler(matchingService)
	therapistHandler := handlers.NewTherapistHandler(therapistService)
	earningsHandler := handlers.NewEarningsHandler(earningsService)

	api := r.Group("/api", middleware.Identity())

	customer := api.Group("", middleware.RequireRole(middleware.RoleCustomer))
	customer.POST("/bookings", orderHandler.Create)
	customer.GET("/bookings", orderHandler.ListMine)
	customer.POST("/bookings/:id/review", orderHandler.Review)
	customer.GET("/therapists/nearby", searchHandler.Nearby)

	// detail and cancel are shared: the handler decides by role
	api.GET("/bookings/:id", orderHandler.Get)
	api.POST("/bookings/:id/cancel", orderHandler.Cancel)

	me := api.Group("/therapist", middleware.RequireRole(middleware.RoleTherapist))
	me.GET("/bookings", orderHandler.ListIncoming)
	me.POST("/bookings/:id/accept", orderHandler.Accept)
	me.POST("/bookings/:id/start", orderHandler.Start)
	me.POST("/bookings/:id/complete", orderHandler.Complete)
	me.PUT("/location", therapistHandler.SetLocation)
	me.GET("/location", therapistHandler.GetLocation)
	me.PUT("/services", therapistHandler.SetServices)
	me.GET("/services", therapistHandler.GetServices)
	me.GET("/profile", therapistHandler.Profile)
	me.GET("/earnings", earningsHandler.Summary)

	return r
}
