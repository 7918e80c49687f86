package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cartify/cartify/internal/config"
	"github.com/cartify/cartify/internal/httpx"
	kafkax "github.com/cartify/cartify/internal/kafka"
	"github.com/cartify/cartify/internal/ws"
	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	// Consume the storefront event stream and push each envelope to
	// every connected client as-is.
	group := getenv("RELAY_GROUP", "relay-gw")
	workers := mustAtoi(os.Getenv("RELAY_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, cfg.EventTopic, workers, log)

	go func() {
		log.Info("relay consumer started",
			zap.String("group", group),
			zap.String("topic", cfg.EventTopic),
			zap.Int("workers", workers))
		if err := cons.Start(ctx, func(_ context.Context, m kafkago.Message) error {
			hub.Broadcast(m.Value)
			return nil
		}); err != nil {
			log.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	router := httpx.NewRouter(log)
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, log, w, r)
	})

	srv := &http.Server{Addr: cfg.RelayAddr, Handler: router}
	go func() {
		log.Info("relay listening", zap.String("addr", cfg.RelayAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down relay")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel()
	time.Sleep(500 * time.Millisecond)
}
