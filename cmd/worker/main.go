package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/metroticket/config"
	"github.com/Domenick1991/metroticket/internal/kafka"
	"github.com/Domenick1991/metroticket/internal/logging"
	"github.com/Domenick1991/metroticket/internal/notify"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.NewLogger(cfg.Log).Named("worker")
	defer logger.Sync()

	if !cfg.Kafka.Enabled() || cfg.Kafka.NotificationsTopic == "" {
		logger.Fatal("worker needs kafka brokers and a notifications topic")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
	defer consumer.Close()

	sender := notify.NewSender(logger, map[string]string{
		cfg.Auth.DemoUserID: cfg.Auth.DemoUserPhone,
	})

	logger.Info("consuming notifications",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.NotificationsTopic),
		zap.String("group_id", cfg.Kafka.GroupID),
	)

	err = consumer.Consume(ctx, kafka.TicketEventHandler(logger, sender.Send))
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", zap.Error(err))
		return
	}
	logger.Info("received signal, shutting down")
}
