package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"sixspa/config"
	emailadapter "sixspa/internal/adapters/email"
	httpdelivery "sixspa/internal/delivery/http"
	"sixspa/internal/delivery/http/controllers"
	"sixspa/internal/delivery/http/middleware"
	"sixspa/internal/repository/postgres"
	"sixspa/internal/services"
)

const (
	serviceTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:        cfg.Email.Provider,
		FromAddress:     cfg.Email.FromAddress,
		FromName:        cfg.Email.FromName,
		Region:          cfg.Email.Region,
		AccessKeyID:     cfg.Email.EmailUser,
		SecretAccessKey: cfg.Email.EmailPass,
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	bookingRepo := postgres.NewBookingRepository(db)
	bookingService := services.NewBookingService(bookingRepo, emailService, serviceTimeout)

	bookingController := controllers.NewBookingController(logger, bookingService)
	adminController := controllers.NewAdminController(logger, bookingService)

	if cfg.AdminKey == "" {
		logger.Warn("ADMIN_KEY is not set; admin endpoints will reject all requests")
	}

	mux := httpdelivery.NewRouter(bookingController, adminController, cfg.AdminKey)
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.CORSAllowedOrigins,
			metrics.Middleware(mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment, "email_provider", cfg.Email.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}
	logger.Info("server stopped")
}
