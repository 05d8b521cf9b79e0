package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application Layer
	appService "nailstudio/internal/application/service"

	// Infrastructure Layer
	"nailstudio/internal/infrastructure/database"
	lineClient "nailstudio/internal/infrastructure/line"
	"nailstudio/internal/infrastructure/scheduler"
	"nailstudio/internal/infrastructure/supabase"

	// Interfaces Layer
	"nailstudio/internal/interfaces/api/handler"
	"nailstudio/internal/interfaces/api/router"

	// Packages
	"nailstudio/internal/pkg/config"
	appLogger "nailstudio/internal/pkg/logger"
	"nailstudio/internal/pkg/metrics"
	"nailstudio/internal/pkg/validate"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

func gracefulShutdown(apiServer *http.Server, schedulerService appService.SchedulerService, db *gorm.DB, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first
	log.Println("Stopping scheduler...")
	schedulerService.Stop()
	log.Println("Scheduler stopped.")

	// Shutdown HTTP server
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	if err := database.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := appLogger.New(cfg.LogLevel)
	appLog.Info("Logger initialized.")

	// Missing secrets do not stop the server; the affected endpoints answer 500.
	if err := cfg.LoginReady(); err != nil {
		appLog.Warn(fmt.Sprintf("LINE login disabled until configured: %v", err))
	}
	if err := cfg.MessagingReady(); err != nil {
		appLog.Warn(fmt.Sprintf("Confirmation push disabled until configured: %v", err))
	}

	// --- Infrastructure ---
	db, err := database.Open(cfg.Database, appLog)
	if err != nil {
		appLog.Error("Failed to open database", err)
		os.Exit(1)
	}
	appointmentRepo := database.NewAppointmentRepository(db)
	stateRepo := database.NewOAuthStateRepository(db)
	lineAccountRepo := database.NewLineAccountRepository(db)
	appLog.Info("Database and repositories initialized.")

	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, appLog)
	loginProvider := lineClient.NewLoginProvider(lineClient.LoginConfig{
		ChannelID:     cfg.Line.ChannelID,
		ChannelSecret: cfg.Line.ChannelSecret,
		RedirectURI:   cfg.Line.LoginRedirectURI,
		AuthBaseURL:   cfg.Line.AuthBaseURL,
		APIBaseURL:    cfg.Line.APIBaseURL,
	})

	var pusher appService.MessagePusher
	if cfg.MessagingReady() == nil {
		bot, err := lineClient.NewClient(cfg.Line.MessagingChannelSecret, cfg.Line.ChannelAccessToken, cfg.Line.APIBaseURL, appLog)
		if err != nil {
			appLog.Error("Failed to create LINE messaging client", err)
		} else {
			pusher = bot
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(reg)

	cronScheduler := scheduler.NewScheduler(appLog)

	// --- Application Services ---
	identitySvc := appService.NewIdentityService(supabaseClient, lineAccountRepo, cfg.IdentityListPageSize, appLog)
	authSvc := appService.NewAuthService(
		appService.AuthConfig{
			Ready:                cfg.LoginReady,
			PostLoginRedirectURL: cfg.PostLoginRedirectURL,
			StateTTL:             cfg.OAuthStateTTL,
		},
		loginProvider,
		stateRepo,
		identitySvc,
		supabaseClient,
		recorder,
		appLog,
	)
	notificationSvc := appService.NewNotificationService(cfg.MessagingReady, appointmentRepo, supabaseClient, pusher, recorder, appLog)
	appointmentSvc := appService.NewAppointmentService(appointmentRepo, validate.New(), recorder, appLog)
	schedulerSvc := appService.NewSchedulerService(cronScheduler, stateRepo, cfg.StateCleanupSchedule, recorder, appLog)
	appLog.Info("Application services initialized.")

	// --- Initialize Schedules ---
	if err := schedulerSvc.InitializeSchedules(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to initialize schedules on startup", err)
	}

	// --- API Handlers ---
	authHandler := handler.NewAuthHandler(authSvc, appLog)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, appLog)
	appointmentHandler := handler.NewAppointmentHandler(appointmentSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		AuthHandler:          authHandler,
		NotificationHandler:  notificationHandler,
		AppointmentHandler:   appointmentHandler,
		MetricsHandler:       metrics.Handler(reg),
		AdminAPIKey:          cfg.AdminAPIKey,
		ReservationRateLimit: cfg.ReservationRateLimit,
		Logger:               appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, db, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", cfg.Port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
