package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/plotline/internal/queue"
	"github.com/OFFIS-RIT/plotline/internal/setup"
	"github.com/OFFIS-RIT/plotline/internal/storage"
	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/logger"
	"github.com/OFFIS-RIT/plotline/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
		JSON:  util.GetEnvBool("LOG_JSON", false),
	})
	logger.Init(consoleLogger)

	analyzer, err := setup.Analyzer(setup.Overrides{})
	if err != nil {
		logger.Fatal("Failed to set up analyzer", "err", err)
	}
	loaders, err := setup.Loaders(ctx, false)
	if err != nil {
		logger.Fatal("Failed to set up text loaders", "err", err)
	}

	// Optional result bucket
	var store queue.ResultStore
	if bucket := util.GetEnv("AWS_RESULT_BUCKET"); bucket != "" {
		client, err := storage.NewS3Client(ctx)
		if err != nil {
			logger.Fatal("Failed to create s3 client", "err", err)
		}
		store = storage.NewResultStore(storage.NewResultStoreParams{
			Client:         client,
			Bucket:         bucket,
			PublicEndpoint: util.GetEnv("AWS_PUBLIC_ENDPOINT"),
			LinkExpiry:     util.GetEnvMinutes("RESULT_LINK_EXPIRY_MINUTES", 15),
		})
	}

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.AnalyzeQueue}); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	// One delivery at a time
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	if err := consumerCh.Qos(1, 0, false); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := consumerCh.Consume(
		queue.AnalyzeQueue,
		queue.AnalyzeQueue+"_consumer",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.AnalyzeQueue, "err", err)
	}

	processor := queue.NewProcessor(queue.NewProcessorParams{
		Analyzer: analyzer,
		Loaders:  loaders,
		Store:    store,
		Channel:  ch,
	})
	maxRetries := util.GetEnvInt("QUEUE_MAX_RETRIES", queue.DefaultMaxRetries)

	logger.Info("Listening for messages", "queue", queue.AnalyzeQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Info("Message channel closed", "queue", queue.AnalyzeQueue)
					stop()
					return
				}

				startTime := time.Now()
				logger.Info("Received message", "queue", queue.AnalyzeQueue)

				if err := processor.Process(ctx, msg.Body); err != nil {
					logger.Error("Error processing message", "queue", queue.AnalyzeQueue, "err", err)
					permanent := errors.Is(err, queue.ErrInvalidMessage)
					deadLettered := queue.HandleProcessingError(ctx, ch, msg, queue.AnalyzeQueue, maxRetries, permanent)
					if deadLettered && !permanent {
						processor.PublishFailure(ctx, msg.Body, err)
					}
				} else {
					if err := msg.Ack(false); err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
					logger.Info("Message processed successfully", "queue", queue.AnalyzeQueue)
				}

				d := time.Since(startTime)
				logger.Info(
					"Processing time",
					"duration", fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60),
				)
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}
