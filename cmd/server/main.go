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

	"kgtransfer/config"
	"kgtransfer/internal/database"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/router"
	"kgtransfer/pkg/cloudinary"
	"kgtransfer/pkg/mailer"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logg, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	if err := database.Seed(ctx, db); err != nil {
		log.Fatalf("seed settings: %v", err)
	}
	if err := database.SeedBenefits(ctx, db); err != nil {
		log.Fatalf("seed benefits: %v", err)
	}

	var mail mailer.Mailer
	if cfg.SMTP.Enabled() {
		mail = mailer.NewSMTP(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		logg.Info("email notifications enabled", "host", cfg.SMTP.Host, "to", cfg.SMTP.To)
	} else {
		logg.Warn("email notifications disabled: set SMTP_HOST and SMTP_TO to enable")
	}

	var cloud cloudinary.Client
	if cfg.Cloudinary.Enabled() {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
	} else {
		logg.Warn("media uploads disabled: set CLOUDINARY_* to enable")
	}

	app := router.Setup(cfg, db, logg, mail, cloud)
	created, err := app.Auth.SeedAdmin(ctx)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if created {
		logg.Info("initial admin account created", "email", cfg.Admin.Email)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logg.Info("server listening", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown", "error", err)
	}
	app.Close()
	logg.Info("server stopped")
}
