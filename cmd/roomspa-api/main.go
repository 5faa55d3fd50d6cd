// README: Entry point; loads config, wires services, starts HTTP server and background sweeps.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RitikChahar/RoomSpa/internal/config"
	"github.com/RitikChahar/RoomSpa/internal/dispatch"
	httptransport "github.com/RitikChahar/RoomSpa/internal/http"
	"github.com/RitikChahar/RoomSpa/internal/infra"
	"github.com/RitikChahar/RoomSpa/internal/modules/earnings"
	"github.com/RitikChahar/RoomSpa/internal/modules/matching"
	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/modules/therapist"
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

	publisher := dispatch.NewPublisher(cfg.Broker.URL)
	defer publisher.Close()

	earningsStore := earnings.NewStore(dbPool, cfg.Earnings.FeePercent)
	earningsSvc := earnings.NewService(earningsStore)

	orderStore := order.NewStore(dbPool)
	orderSvc := order.NewService(orderStore, earningsStore, publisher)

	matchingStore := matching.NewStore(dbPool)
	matchingSvc := matching.NewService(matchingStore)

	therapistStore := therapist.NewStore(dbPool)
	therapistSvc := therapist.NewService(therapistStore)

	handler := httptransport.NewRouter(orderSvc, matchingSvc, therapistSvc, earningsSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go orderSvc.RunPendingSweep(ctx, time.Duration(cfg.Orders.PendingTTLMin)*time.Minute)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("roomspa-api: listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
