package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nkhangg/gostore/internal/config"
	"github.com/nkhangg/gostore/internal/es"
	"github.com/nkhangg/gostore/internal/events"
	"github.com/nkhangg/gostore/internal/httpserver"
	"github.com/nkhangg/gostore/internal/logging"
	"github.com/nkhangg/gostore/internal/repo"
	"github.com/nkhangg/gostore/internal/service"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	producer := events.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}
	productIndex := es.NewProductIndex(esClient, "products")

	jwtSecret := []byte(configuration.JWT_SECRET)
	repository := repo.NewGormRepo(db)

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHandler{
			Svc:      service.NewAuthService(repository, jwtSecret),
			Producer: producer,
		},
		ProductHandler: &httpserver.ProductHandler{
			Svc:      service.NewCatalogService(repository),
			Producer: producer,
			Index:    productIndex,
		},
		CartHandler: &httpserver.CartHandler{
			Svc: service.NewCartService(repository),
		},
		OrderHandler: &httpserver.OrderHandler{
			Svc:      service.NewOrderService(repository),
			Producer: producer,
		},
		SearchHandler: &httpserver.SearchHandler{Index: productIndex},
		JWTSecret:     jwtSecret,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(httpserver.RequestLogger(logger))

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
