// Package queue publishes order notifications after an order has committed.
// Publishing is strictly best-effort: the order workflow logs a failure and
// moves on, it never rolls back or fails the order. Two backends: a RabbitMQ
// broker for local development and SQS+SNS for cloud deployments.
package queue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/duallane/go-shop-api/internal/config"
)

type OrderItemMessage struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

// OrderMessage is the machine-readable order summary sent to the queue. The
// topic additionally receives a short human-readable notification.
type OrderMessage struct {
	OrderID     int64              `json:"orderId"`
	UserID      int64              `json:"userId"`
	UserEmail   string             `json:"userEmail"`
	UserName    string             `json:"userName"`
	Items       []OrderItemMessage `json:"items"`
	TotalAmount int64              `json:"totalAmount"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type Notifier interface {
	OrderCreated(ctx context.Context, msg OrderMessage) error
	Close() error
}

// closeInOrder closes every closer and returns the first error; a failure
// never stops the remaining closers from being closed.
func closeInOrder(closers ...io.Closer) error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func New(ctx context.Context, cfg config.QueueConfig, log *slog.Logger) (Notifier, error) {
	switch cfg.Backend {
	case config.QueueBackendAMQP:
		return newAMQPNotifier(cfg.AMQPURL, log)
	case config.QueueBackendSQS:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		log.Info("sqs notifier ready", "queue", cfg.QueueURL, "topic", cfg.TopicARN)
		return newSQSNotifier(sqs.NewFromConfig(awsCfg), sns.NewFromConfig(awsCfg), cfg.QueueURL, cfg.TopicARN), nil
	default:
		return nil, fmt.Errorf("unsupported QUEUE_BACKEND %q", cfg.Backend)
	}
}
