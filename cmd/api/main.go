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

	"github.com/agendasalud/clinic-api/internal/config"
	"github.com/agendasalud/clinic-api/internal/email"
	"github.com/agendasalud/clinic-api/internal/handler"
	administratorHandler "github.com/agendasalud/clinic-api/internal/handler/administrator"
	appointmentHandler "github.com/agendasalud/clinic-api/internal/handler/appointment"
	assistantHandler "github.com/agendasalud/clinic-api/internal/handler/assistant"
	authHandler "github.com/agendasalud/clinic-api/internal/handler/auth"
	chatHandler "github.com/agendasalud/clinic-api/internal/handler/chat"
	patientHandler "github.com/agendasalud/clinic-api/internal/handler/patient"
	physicianHandler "github.com/agendasalud/clinic-api/internal/handler/physician"
	reportHandler "github.com/agendasalud/clinic-api/internal/handler/report"
	"github.com/agendasalud/clinic-api/internal/middleware"
	"github.com/agendasalud/clinic-api/internal/model"
	"github.com/agendasalud/clinic-api/internal/repository/postgres"
	"github.com/agendasalud/clinic-api/internal/router"
	appointmentService "github.com/agendasalud/clinic-api/internal/service/appointment"
	authService "github.com/agendasalud/clinic-api/internal/service/auth"
	chatService "github.com/agendasalud/clinic-api/internal/service/chat"
	directoryService "github.com/agendasalud/clinic-api/internal/service/directory"
	patientService "github.com/agendasalud/clinic-api/internal/service/patient"
	reportService "github.com/agendasalud/clinic-api/internal/service/report"
	"github.com/agendasalud/clinic-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})

	model.RegisterValidators()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	physicianRepo := postgres.NewPhysicianRepository(db)
	assistantRepo := postgres.NewAssistantRepository(db)
	administratorRepo := postgres.NewAdministratorRepository(db)
	authRepo := postgres.NewAuthRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	notifier := email.NewNotifier(cfg.SMTP)

	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, notifier, log)
	directorySvc := directoryService.NewService(physicianRepo, assistantRepo, administratorRepo)
	authSvc := authService.NewService(authRepo)
	reportSvc := reportService.NewService(reportRepo, cfg.Reports.Dir, log)
	chatSvc := chatService.NewService(cfg.Gemini)

	r := router.New(log, handler.NewHandler(db), router.Config{
		RateLimit:     rate.Limit(cfg.Server.RateRPS),
		RateBurst:     cfg.Server.RateBurst,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "clinic_api",
	},
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		physicianHandler.NewHandler(directorySvc),
		assistantHandler.NewHandler(directorySvc),
		administratorHandler.NewHandler(directorySvc),
		authHandler.NewHandler(authSvc),
		reportHandler.NewHandler(reportSvc),
		chatHandler.NewHandler(chatSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
