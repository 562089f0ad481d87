package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/mobembo/bus-ticket-reservation/internal/config"
	"github.com/mobembo/bus-ticket-reservation/internal/database"
	"github.com/mobembo/bus-ticket-reservation/internal/handler"
	"github.com/mobembo/bus-ticket-reservation/internal/middleware"
	"github.com/mobembo/bus-ticket-reservation/internal/payment"
	"github.com/mobembo/bus-ticket-reservation/internal/queue"
	"github.com/mobembo/bus-ticket-reservation/internal/repository"
	"github.com/mobembo/bus-ticket-reservation/internal/router"
	queue_publisher "github.com/mobembo/bus-ticket-reservation/internal/service"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	companyRepo := repository.NewCompanyRepo(db)
	busRepo := repository.NewBusRepo(db)
	routeRepo := repository.NewRouteRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	// Handlers
	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicH := &handler.PublicHandler{
		CompanyRepo:  companyRepo,
		RouteRepo:    routeRepo,
		ScheduleRepo: scheduleRepo,
	}
	adminH := handler.NewAdminHandler(companyRepo, busRepo, routeRepo, scheduleRepo, bookingRepo)
	bookingH := handler.NewBookingHandler(scheduleRepo, bookingRepo)
	paymentH := handler.NewPaymentHandler(bookingRepo, paymentRepo, scheduleRepo, payment.NewSimulatedGateway())
	paymentH.PublishConfirmed = queue_publisher.PublishBookingConfirmed

	e := echo.New()

	// Redis-backed rate limiting across the API and a response cache on
	// the public browse routes. Both degrade to no-ops when Redis is
	// unreachable.
	var cacheMW echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	} else {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	// Routes
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	if cacheMW != nil {
		router.RegisterPublic(e, publicH, cacheMW)
	} else {
		router.RegisterPublic(e, publicH)
	}
	router.RegisterClient(e, bookingH, paymentH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// Background consumer writes confirmed-booking audit lines.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
