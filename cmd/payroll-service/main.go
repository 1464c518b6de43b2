package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/paygrid/payroll-backend/internal/payroll/events"
	"github.com/paygrid/payroll-backend/internal/payroll/handler"
	"github.com/paygrid/payroll-backend/internal/payroll/repository"
	"github.com/paygrid/payroll-backend/internal/payroll/service"
	"github.com/paygrid/payroll-backend/internal/payroll/store"
	"github.com/paygrid/payroll-backend/pkg/config"
	"github.com/paygrid/payroll-backend/pkg/httputil"
	"github.com/paygrid/payroll-backend/pkg/logger"
	"github.com/paygrid/payroll-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("payroll-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("payroll-service", cfg.Server.Environment)
	log.Info().Msg("starting Payroll Service")

	// Connect to RabbitMQ. The service is read-only against the record
	// store, so a missing broker only disables summary events.
	var rmq *messaging.RabbitMQ
	var publisher service.SummaryEventPublisher
	if cfg.RabbitMQ.URL != "" {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, summary events disabled")
		} else {
			defer rmq.Close()
			p, err := events.NewPayrollEventPublisher(rmq, log)
			if err != nil {
				log.Warn().Err(err).Msg("failed to create event publisher, summary events disabled")
			} else {
				publisher = p
			}
		}
	}

	// Initialize record store client and repositories
	storeClient := store.NewClient(&cfg.Fillout, log)
	payPeriodRepo := repository.NewPayPeriodRepository(storeClient, cfg.Fillout.Tables.PayPeriods)
	timeCardRepo := repository.NewTimeCardRepository(storeClient, cfg.Fillout.Tables.TimeCards)
	punchRepo := repository.NewPunchRepository(storeClient, cfg.Fillout.Tables.Punches)
	employeeRepo := repository.NewEmployeeRepository(storeClient, cfg.Fillout.Tables.Employees)

	// Initialize services
	summaryService := service.NewSummaryService(
		payPeriodRepo,
		timeCardRepo,
		punchRepo,
		service.NewLinkageResolver(log),
		service.NewRosterCompleter(employeeRepo, log),
		service.NewDurationCalculator(log),
		publisher,
		log,
	)
	payPeriodService := service.NewPayPeriodService(payPeriodRepo, log)

	// Initialize handlers
	payPeriodHandler := handler.NewPayPeriodHandler(summaryService, payPeriodService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":  "healthy",
			"service": "payroll-service",
		}
		if rmq != nil {
			health["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// API routes
	r.Route("/api/v1/payroll", func(r chi.Router) {
		r.Route("/pay-periods", func(r chi.Router) {
			r.Get("/", payPeriodHandler.List)
			r.Get("/{id}/summary", payPeriodHandler.GetSummary)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
