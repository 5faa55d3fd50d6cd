// README: Realtime push to per-therapist channels over Redis Pub/Sub.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/RitikChahar/RoomSpa/internal/types"
)

// Pusher delivers a payload to a single therapist's realtime channel.
// Delivery is fire-and-forget; subscribers that are offline miss the
// message and recover from the incoming-bookings endpoint instead.
type Pusher interface {
	PushToTherapist(ctx context.Context, therapistID types.ID, payload any) error
}

// ChannelFor names the Pub/Sub channel a therapist's client subscribes to.
func ChannelFor(therapistID types.ID) string {
	return fmt.Sprintf("therapist_%s", therapistID)
}

type RedisPusher struct {
	rdb *redis.Client
}

func NewRedisPusher(rdb *redis.Client) *RedisPusher {
	return &RedisPusher{rdb: rdb}
}

func (p *RedisPusher) PushToTherapist(ctx context.Context, therapistID types.ID, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}
	return p.rdb.Publish(ctx, ChannelFor(therapistID), body).Err()
}
