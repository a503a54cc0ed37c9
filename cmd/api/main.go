package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ordinacija/patients-api/config"
	"github.com/ordinacija/patients-api/internal/handler"
	imageHandler "github.com/ordinacija/patients-api/internal/handler/image"
	patientHandler "github.com/ordinacija/patients-api/internal/handler/patient"
	prescriptionHandler "github.com/ordinacija/patients-api/internal/handler/prescription"
	visitHandler "github.com/ordinacija/patients-api/internal/handler/visit"
	"github.com/ordinacija/patients-api/internal/middleware"
	"github.com/ordinacija/patients-api/internal/repository/postgres"
	"github.com/ordinacija/patients-api/internal/router"
	imageService "github.com/ordinacija/patients-api/internal/service/image"
	patientService "github.com/ordinacija/patients-api/internal/service/patient"
	prescriptionService "github.com/ordinacija/patients-api/internal/service/prescription"
	visitService "github.com/ordinacija/patients-api/internal/service/visit"
	"github.com/ordinacija/patients-api/pkg/blobstore"
	"github.com/ordinacija/patients-api/pkg/logger"
	"github.com/ordinacija/patients-api/pkg/metrics"
)

func main() {
	lg := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		lg.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		lg.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("patients_api")

	store, err := blobstore.NewMinioStore(context.Background(), cfg.Storage)
	if err != nil {
		lg.Fatal(err, "failed to connect to blob storage")
	}
	instrumented := blobstore.NewInstrumentedStore(store, m)

	patientRepo := postgres.NewPatientRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	visitRepo := postgres.NewVisitRepository(db)
	imageRepo := postgres.NewImageRepository(db)

	patientSvc := patientService.NewService(patientRepo)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo)
	visitSvc := visitService.NewService(visitRepo)
	imageSvc := imageService.NewService(imageRepo, instrumented)

	r := router.NewRouter(m, router.Config{
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
		CORSConfig:     middleware.DefaultCORSConfig(),
	},
		handler.NewHealthHandler(db),
		patientHandler.NewHandler(patientSvc),
		prescriptionHandler.NewHandler(prescriptionSvc),
		visitHandler.NewHandler(visitSvc),
		imageHandler.NewHandler(imageSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		lg.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Fatal(err, "server forced to shutdown")
	}

	lg.Info("server exited properly")
}
