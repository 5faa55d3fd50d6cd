// README: Earnings summary handler.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RitikChahar/RoomSpa/internal/modules/earnings"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

type EarningsHandler struct {
	earnings *earnings.Service
}

func NewEarningsHandler(svc *earnings.Service) *EarningsHandler {
	return &EarningsHandler{earnings: svc}
}

type bucketView struct {
	Start time.Time   `json:"start"`
	Net   types.Money `json:"net"`
}

type summaryView struct {
	Period    string       `json:"period"`
	Gross     types.Money  `json:"gross"`
	Fees      types.Money  `json:"fees"`
	Net       types.Money  `json:"net"`
	PaidNet   types.Money  `json:"paid_net"`
	UnpaidNet types.Money  `json:"unpaid_net"`
	Count     int          `json:"count"`
	Series    []bucketView `json:"series"`
}

// Summary answers GET ?period=day|week|month (default week).
func (h *EarningsHandler) Summary(c *gin.Context) {
	period := c.DefaultQuery("period", "week")
	sum, err := h.earnings.Summarize(c.Request.Context(), callerID(c), period)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	series := make([]bucketView, len(sum.Series))
	for i, b := range sum.Series {
		series[i] = bucketView{Start: b.Start, Net: b.Net}
	}
	writeJSON(c, http.StatusOK, summaryView{
		Period:    sum.Period,
		Gross:     sum.Gross,
		Fees:      sum.Fees,
		Net:       sum.Net,
		PaidNet:   sum.PaidNet,
		UnpaidNet: sum.UnpaidNet,
		Count:     sum.Count,
		Series:    series,
	})
}
