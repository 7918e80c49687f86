package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cartify/cartify/internal/auth"
	"github.com/cartify/cartify/internal/catalog"
	"github.com/cartify/cartify/internal/checkout"
	"github.com/cartify/cartify/internal/config"
	"github.com/cartify/cartify/internal/httpx"
	kafkax "github.com/cartify/cartify/internal/kafka"
	"github.com/cartify/cartify/internal/notify"
	"github.com/cartify/cartify/internal/orders"
	"github.com/cartify/cartify/internal/postgres"
	"github.com/cartify/cartify/internal/redisx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

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

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal("db migrate", zap.Error(err))
	}
	if cfg.Seed {
		if err := postgres.Seed(ctx, db); err != nil {
			log.Fatal("db seed", zap.Error(err))
		}
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer feeding the relay
	prod := kafkax.NewProducer(cfg.KafkaBrokers, cfg.EventTopic, 1024)
	prod.Start(ctx)
	notifier := &notify.KafkaNotifier{Producer: prod}

	// Stores & workflow
	catalogRepo := &catalog.Repo{DB: db}
	orderRepo := &orders.Repo{DB: db}
	workflow := &checkout.Service{
		Catalog:  catalogRepo,
		Orders:   orderRepo,
		Notifier: notifier,
		Log:      log,
		Producer: cfg.ServiceName,
	}

	// Auth
	tokens := &auth.Tokens{Secret: []byte(cfg.JWTSecret)}
	authed := auth.Middleware(tokens)

	// Router & handlers
	router := httpx.NewRouter(log)
	(&httpx.AuthHandler{Tokens: tokens, Log: log}).Register(router)
	(&httpx.ProductsHandler{
		Store: catalogRepo, Redis: rdb, Notifier: notifier, Log: log, Service: cfg.ServiceName,
	}).Register(router, authed, auth.RequireAdmin)
	(&httpx.OrdersHandler{
		Checkout: workflow, Store: orderRepo, Redis: rdb, Notifier: notifier, Log: log, Service: cfg.ServiceName,
	}).Register(router, authed, auth.RequireAdmin)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // flush & close writer
	prod.WaitClosed()
	cancel()
}
