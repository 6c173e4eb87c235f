package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/app"
)

// setupLogger настраивает формат и уровень логирования сессии.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if v := os.Getenv("LAREK_LOG_LEVEL"); v != "" {
		if level, err := log.ParseLevel(v); err == nil {
			log.SetLevel(level)
		}
	}
}

// readConfig формирует конфигурацию витрины, позволяя переопределить адреса
// через переменные окружения.
func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("LAREK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("LAREK_CDN_URL"); v != "" {
		cfg.CDNBaseURL = v
	}
	if v := os.Getenv("LAREK_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.WithField("component", "storefront")
	logger.WithField("api_url", cfg.APIBaseURL).Info("запускаем витрину")

	session, err := app.New(cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		log.WithError(err).Fatal("не удалось собрать витрину")
	}

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("сессия завершилась с ошибкой")
	}

	logger.Info("витрина остановлена")
}
