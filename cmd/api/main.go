package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/jwalitptl/patient-api/internal/config"
	"github.com/jwalitptl/patient-api/internal/handler"
	catalogHandler "github.com/jwalitptl/patient-api/internal/handler/catalog"
	insuranceHandler "github.com/jwalitptl/patient-api/internal/handler/insurance"
	patientHandler "github.com/jwalitptl/patient-api/internal/handler/patient"
	providerHandler "github.com/jwalitptl/patient-api/internal/handler/provider"
	"github.com/jwalitptl/patient-api/internal/middleware"
	"github.com/jwalitptl/patient-api/internal/repository/postgres"
	"github.com/jwalitptl/patient-api/internal/router"
	catalogService "github.com/jwalitptl/patient-api/internal/service/catalog"
	insuranceService "github.com/jwalitptl/patient-api/internal/service/insurance"
	patientService "github.com/jwalitptl/patient-api/internal/service/patient"
	providerService "github.com/jwalitptl/patient-api/internal/service/provider"
	"github.com/jwalitptl/patient-api/internal/worker"
	"github.com/jwalitptl/patient-api/pkg/logger"
	"github.com/jwalitptl/patient-api/pkg/metrics"
)

func main() {
	appLog := logger.NewLogger(nil)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		appLog.Fatal(err, "failed to load configuration")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLog.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	patientRepo := postgres.NewPatientRepository(db)
	contactRepo := postgres.NewEmergencyContactRepository(db)
	policyRepo := postgres.NewInsurancePolicyRepository(db)
	providerRepo := postgres.NewInsuranceProviderRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)

	// Initialize services
	catalogSvc := catalogService.NewService(catalogRepo)
	patientSvc := patientService.NewService(patientRepo, contactRepo, catalogSvc)
	insuranceSvc := insuranceService.NewService(policyRepo, providerRepo, patientRepo, catalogSvc)
	providerSvc := providerService.NewService(providerRepo, policyRepo)

	// Initialize metrics
	m := metrics.NewMetrics("patient_api", "api")

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	patientH := patientHandler.NewHandler(patientSvc, m)
	insuranceH := insuranceHandler.NewHandler(insuranceSvc, m)
	providerH := providerHandler.NewHandler(providerSvc)
	catalogH := catalogHandler.NewHandler(catalogSvc)

	// Setup router
	r := router.NewRouter(router.Config{
		RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:     cfg.RateLimit.Burst,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "patient_api",
	}, patientH, insuranceH, providerH, catalogH)
	r.Setup()
	healthHandler.RegisterRoutes(r.Engine().Group(""))

	// Create server
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start expiry sweep alongside the server
	sweeper := worker.NewPolicyExpiryWorker(policyRepo, cfg.Worker.SweepInterval, m)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweeper.Start(sweepCtx)

	// Start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(err, "failed to start server")
		}
	}()
	appLog.Info("server listening", "port", cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Fatal(err, "server forced to shutdown")
	}

	appLog.Info("server exited properly")
}
