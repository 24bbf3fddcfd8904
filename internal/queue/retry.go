package queue

import (
	"context"

	"github.com/OFFIS-RIT/plotline/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// DefaultMaxRetries is the number of trips through the retry queue before
// a message is dead-lettered.
const DefaultMaxRetries = 10

const retriesHeader = "x-retries"

// Retries returns the retry count carried in the message headers.
func Retries(headers amqp091.Table) int {
	switch v := headers[retriesHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// HandleProcessingError moves a failed delivery to queueName's retry
// queue, or to its dead-letter queue once maxRetries is reached or when
// permanent is set. The original delivery is acked after a successful
// republish and requeued otherwise. It reports whether the message was
// dead-lettered.
func HandleProcessingError(ctx context.Context, ch Channel, msg amqp091.Delivery, queueName string, maxRetries int, permanent bool) bool {
	retries := Retries(msg.Headers)

	if permanent || retries >= maxRetries {
		dlqName := queueName + "_dlq"
		logger.Info("[Queue] Sending message to DLQ", "dlq", dlqName, "retries", retries)
		pubErr := ch.PublishWithContext(
			ctx,
			"",
			dlqName,
			false,
			false,
			amqp091.Publishing{
				ContentType: msg.ContentType,
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("[Queue] Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			_ = msg.Nack(false, true)
			return false
		}
		_ = msg.Ack(false)
		return true
	}

	retryName := queueName + "_retry"
	headers := amqp091.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[retriesHeader] = int32(retries + 1)

	pubErr := ch.PublishWithContext(
		ctx,
		"",
		retryName,
		false,
		false,
		amqp091.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("[Queue] Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		_ = msg.Nack(false, true)
		return false
	}
	_ = msg.Ack(false)
	return false
}
