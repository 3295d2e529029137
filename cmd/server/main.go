package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/booking"
	"github.com/iliyamo/cinema-ticket-booking/internal/config"
	"github.com/iliyamo/cinema-ticket-booking/internal/database"
	"github.com/iliyamo/cinema-ticket-booking/internal/handler"
	"github.com/iliyamo/cinema-ticket-booking/internal/pricing"
	"github.com/iliyamo/cinema-ticket-booking/internal/queue"
	"github.com/iliyamo/cinema-ticket-booking/internal/repository"
	"github.com/iliyamo/cinema-ticket-booking/internal/router"
	"github.com/iliyamo/cinema-ticket-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable

	txm := repository.NewTxManager(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	holdRepo := repository.NewSeatHoldRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	prices, err := pricing.NewResolverFromSource(ctx, repository.NewPricingRepo(db), pricing.Surcharges{
		EveningCents:    uint32(cfg.EveningSurchargeCents),
		EveningFromHour: cfg.EveningFromHour,
		WeekendCents:    uint32(cfg.WeekendSurchargeCents),
	})
	cancel()
	if err != nil {
		log.Fatalf("load pricing rules: %v", err)
	}

	svc := booking.NewService(txm, showtimeRepo, roomRepo, holdRepo, bookingRepo, prices, booking.Config{
		HoldTTL:            cfg.HoldTTL,
		PaymentTTL:         cfg.PaymentTTL,
		MaxSeatsPerBooking: cfg.MaxSeatsPerBooking,
	})

	publisher := service.NewEventPublisher(queue.BrokerURL())

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterBrowse(e, handler.NewBrowseHandler(showtimeRepo, roomRepo, svc), cfg.JWTSecret, config.LoadCacheConfig(), rdb)
	router.RegisterBooking(e, handler.NewBookingHandler(svc, publisher), cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

	sweep := handler.NewSweepHandler(svc, publisher)
	router.RegisterInternal(e, sweep, cfg.JWTSecret)

	// Consume lifecycle events in the background; the consumer keeps
	// reconnecting on its own.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	// Periodic expiry sweep.  Disabled when SWEEP_INTERVAL_MIN is 0;
	// the /internal/sweep endpoint remains available either way.
	if cfg.SweepInterval > 0 {
		go func() {
			t := time.NewTicker(cfg.SweepInterval)
			defer t.Stop()
			for range t.C {
				swept, err := svc.SweepExpired(context.Background())
				if err != nil {
					log.Printf("sweep: %v", err)
					continue
				}
				for i := range swept {
					if err := publisher.PublishBookingExpired(&swept[i]); err != nil {
						log.Printf("sweep: publish booking.expired: %v", err)
					}
				}
				if len(swept) > 0 {
					log.Printf("sweep: expired %d bookings", len(swept))
				}
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
