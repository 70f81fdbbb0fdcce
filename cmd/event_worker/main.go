package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/config"
	"github.com/oksasatya/exercise-tracker/internal/infrastructure/search"
	"github.com/oksasatya/exercise-tracker/pkg/events"
	"github.com/oksasatya/exercise-tracker/pkg/helpers"
)

// event_worker consumes creation events and indexes them into Elasticsearch.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch client: %v", err)
	}
	if es == nil {
		log.Fatal("Elasticsearch not configured")
	}
	index := search.NewIndex(es, cfg.ESUsersIndex, cfg.ESExercisesIndex)

	conn, ch, err := helpers.OpenQueue(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			handle(context.Background(), index, logger, msg)
		}
		close(done)
	}()

	logger.Infof("event worker listening on queue=%s", cfg.RabbitMQEventsQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// indexer is the part of search.Index the worker needs.
type indexer interface {
	Apply(ctx context.Context, ev events.Event) error
}

// handle acks indexed events, drops malformed ones and requeues on index errors.
func handle(ctx context.Context, idx indexer, logger *logrus.Logger, msg amqp.Delivery) {
	var ev events.Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		logger.WithError(err).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := idx.Apply(c, ev); err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"type": ev.Type, "user_id": ev.UserID}).Warn("index failed")
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}
	_ = msg.Ack(false)
}
