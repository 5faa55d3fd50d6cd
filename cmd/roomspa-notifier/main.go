// README: Entry point for the dispatch consumer; relays booking requests to therapists.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/RitikChahar/RoomSpa/internal/config"
	"github.com/RitikChahar/RoomSpa/internal/dispatch"
	"github.com/RitikChahar/RoomSpa/internal/infra"
	"github.com/RitikChahar/RoomSpa/internal/modules/matching"
	"github.com/RitikChahar/RoomSpa/internal/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer func() { _ = redisClient.Close() }()

	matchingSvc := matching.NewService(matching.NewStore(dbPool))
	pusher := realtime.NewRedisPusher(redisClient)

	consumer := dispatch.NewConsumer(cfg.Broker.URL, matchingSvc, pusher)
	log.Printf("roomspa-notifier: consuming %s", dispatch.QueueName)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
