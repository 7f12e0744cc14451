package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/stayloop/hotel-booking/internal/config"
	"github.com/stayloop/hotel-booking/internal/database"
	"github.com/stayloop/hotel-booking/internal/handler"
	"github.com/stayloop/hotel-booking/internal/middleware"
	"github.com/stayloop/hotel-booking/internal/observability"
	"github.com/stayloop/hotel-booking/internal/queue"
	"github.com/stayloop/hotel-booking/internal/repository"
	"github.com/stayloop/hotel-booking/internal/router"
	"github.com/stayloop/hotel-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)
	reg := observability.InitRegistry()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("open database failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, response cache and rate limiting disabled")
	}

	publisher := service.NewPublisher(cfg.AMQPURL, log)
	if publisher == nil {
		log.Warn().Msg("AMQP_URL not set, booking events disabled")
	} else {
		go func() {
			if err := queue.StartBookingConsumer(cfg.AMQPURL, log); err != nil {
				log.Error().Err(err).Msg("booking consumer stopped")
			}
		}()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	bookings := repository.NewBookingRepo(db)
	favorites := repository.NewFavoriteRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(hotels)
	operatorH := handler.NewOperatorHandler(hotels)
	bookingH := handler.NewBookingHandler(bookings, hotels, publisher, log)
	favoritesH := handler.NewFavoritesHandler(favorites, hotels)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e, reg)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, rdb)
	router.RegisterUser(e, bookingH, favoritesH, cfg.JWTSecret)
	router.RegisterOperator(e, operatorH, bookingH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
