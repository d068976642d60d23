package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LavaJover/shvark-escrow-service/internal/app/background"
	"github.com/LavaJover/shvark-escrow-service/internal/app/setup"
	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/migrate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}

	if cfg.EscrowDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(deps.DB, cfg.EscrowDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	useCases, err := setup.InitializeUseCases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	router := mux.NewRouter()
	dealHandler := handlers.NewDealHandler(useCases.DealUsecase)
	dealHandler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	tasks := background.NewBackgroundTasks(
		useCases.DealUsecase,
		deps.DealPublisher,
		deps.Metrics,
		cfg.KafkaService.Topic,
	)
	tasks.StartAll(context.Background())

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
