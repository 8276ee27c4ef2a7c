package main

import (
	"context"
	"log"
	"os"

	"log/slog"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/config"
	apphttp "github.com/gregbolastig/short-courses-sub001/internal/http"
	"github.com/gregbolastig/short-courses-sub001/internal/mailer"
	"github.com/gregbolastig/short-courses-sub001/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	store, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("failed to configure storage: %v", err)
	}
	logger.Info("storage_ready", "driver", store.Driver)

	var mail mailer.Service
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
	} else {
		// no SMTP configured (dev): captured in memory, visible in logs
		logger.Warn("smtp not configured; decision emails will not be delivered")
		mail = &mailer.Mock{}
	}

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:  logger,
		DB:      db,
		Cfg:     cfg,
		Storage: store,
		Mailer:  mail,
	})

	logger.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
