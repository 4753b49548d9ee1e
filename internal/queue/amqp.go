package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	orderQueueName       = "orders"
	notificationExchange = "order.notifications"
)

// amqpNotifier publishes the order summary to a durable queue and a
// human-readable line to a fanout exchange, mirroring the SQS/SNS pair.
type amqpNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func newAMQPNotifier(url string, log *slog.Logger) (*amqpNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(orderQueueName, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare order queue: %w", err)
	}
	if err := ch.ExchangeDeclare(notificationExchange, "fanout", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare notification exchange: %w", err)
	}

	log.Info("connected to rabbitmq")
	return &amqpNotifier{conn: conn, channel: ch}, nil
}

func (n *amqpNotifier) OrderCreated(ctx context.Context, msg OrderMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}

	if err := n.channel.PublishWithContext(ctx, "", orderQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}); err != nil {
		return fmt.Errorf("publish order message: %w", err)
	}

	notice := fmt.Sprintf("New order #%d by %s: %d item(s), total %d",
		msg.OrderID, msg.UserName, len(msg.Items), msg.TotalAmount)
	if err := n.channel.PublishWithContext(ctx, notificationExchange, "", false, false, amqp.Publishing{
		ContentType: "text/plain",
		Body:        []byte(notice),
	}); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Close closes the channel and then the connection; a channel error must not
// leave the connection open.
func (n *amqpNotifier) Close() error {
	return closeInOrder(n.channel, n.conn)
}
