// README: Immutable payout entries derived from completed bookings.
package earnings

import (
	"time"

	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/types"
)

// Entry is the payout record written when a booking completes. Amount
// fields never change after creation; only Paid flips false to true when an
// external payout process settles it.
type Entry struct {
	ID          int64
	TherapistID types.ID
	OrderID     types.ID
	Gross       types.Money
	PlatformFee types.Money
	Net         types.Money
	Paid        bool
	CreatedAt   time.Time
}

// NewEntry derives the ledger entry for a completion. PlatformFee + Net ==
// Gross holds exactly because the split is integer cent arithmetic.
func NewEntry(c order.Completion, feePercent int) *Entry {
	fee, net := c.Gross.SplitFee(feePercent)
	return &Entry{
		TherapistID: c.TherapistID,
		OrderID:     c.OrderID,
		Gross:       c.Gross,
		PlatformFee: fee,
		Net:         net,
		CreatedAt:   c.CompletedAt,
	}
}

// Summary aggregates a therapist's ledger over a period, with a
// time-bucketed series for charting.
type Summary struct {
	Period    string
	Gross     types.Money
	Fees      types.Money
	Net       types.Money
	PaidNet   types.Money
	UnpaidNet types.Money
	Count     int
	Series    []Bucket
}

type Bucket struct {
	Start time.Time
	Net   types.Money
}
