package queue

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	// AnalyzeQueue receives AnalyzeMsg jobs.
	AnalyzeQueue = "analyze_queue"
	// TopicExchange carries finished analyses under "analysis.<job id>".
	TopicExchange = "pubsub_exchange"

	retryDelayMs = 10000
)

// Channel is the subset of *amqp091.Channel used for declaring and
// publishing.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// ConnURL builds the broker URL. Credentials are escaped.
func ConnURL(user, pass, host, port string) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(user, pass),
		Host:   host + ":" + port,
		Path:   "/",
	}
	return u.String()
}

func Init() *amqp091.Connection {
	connURL := ConnURL(
		util.GetEnv("RABBITMQ_USER"),
		util.GetEnv("RABBITMQ_PASSWORD"),
		util.GetEnvString("RABBITMQ_HOST", "localhost"),
		util.GetEnvString("RABBITMQ_PORT", "5672"),
	)

	conn, err := amqp091.Dial(connURL)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", "err", err)
	}

	return conn
}

// AnalysisTopic is the routing key under which a job result is published.
func AnalysisTopic(jobID string) string {
	return "analysis." + jobID
}

// SetupQueues declares the topic exchange and, for every name, the work
// queue plus its _dlq and _retry companions. Retried messages return to
// the work queue after a fixed delay.
func SetupQueues(ch Channel, queueNames []string) error {
	err := ch.ExchangeDeclare(
		TopicExchange, // name
		"topic",       // type
		false,
		true,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", TopicExchange, err)
	}

	for _, name := range queueNames {
		_, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", name, err)
		}

		dlqName := name + "_dlq"
		_, err = ch.QueueDeclare(
			dlqName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", dlqName, err)
		}

		retryName := name + "_retry"
		_, err = ch.QueueDeclare(
			retryName,
			true,
			false,
			false,
			false,
			amqp091.Table{
				"x-message-ttl":             int32(retryDelayMs),
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": name,
			},
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", retryName, err)
		}
	}

	return nil
}

func PublishFIFO(ctx context.Context, ch Channel, queueName string, data []byte) error {
	q, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	return util.RetryErrWithBackoff(ctx, 3, 200*time.Millisecond, func(ctx context.Context) error {
		return ch.PublishWithContext(ctx, "", q.Name, false, false, publishing)
	})
}

func PublishTopic(ctx context.Context, ch Channel, topic string, data []byte) error {
	err := ch.ExchangeDeclare(
		TopicExchange,
		"topic",
		false,
		true,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	return util.RetryErrWithBackoff(ctx, 3, 200*time.Millisecond, func(ctx context.Context) error {
		return ch.PublishWithContext(ctx, TopicExchange, topic, false, false, publishing)
	})
}
