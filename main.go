package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/GEDDY90/wadoo-backend/configs"
	"github.com/GEDDY90/wadoo-backend/events"
	"github.com/GEDDY90/wadoo-backend/middlewares"
	"github.com/GEDDY90/wadoo-backend/repository"
	"github.com/GEDDY90/wadoo-backend/routes"
	"github.com/GEDDY90/wadoo-backend/services"
)

func main() {
	cfg := configs.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := configs.ConnectDB(cfg.DBSource)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := configs.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(db); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	// Events: the hub feeds local websocket clients. With Redis configured,
	// the service publishes through Redis and a relay feeds the hub, so every
	// instance sees every event exactly once.
	hub := events.NewHub()
	var pub events.Publisher = hub
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pub = events.NewRedisPublisher(rdb)
		go func() {
			if err := events.Relay(ctx, rdb, hub); err != nil && ctx.Err() == nil {
				log.Printf("event relay stopped: %v", err)
			}
		}()
	}

	// Promotion sweeper
	paySvc := services.NewPaymentService(db, repository.NewPaymentRepository(db), repository.NewRestaurantRepository(db))
	go paySvc.RunPromotionSweeper(ctx, time.Minute)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, db, cfg, hub, pub)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
