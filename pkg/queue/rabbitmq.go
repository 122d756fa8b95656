package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"asme-site/pkg/config"
	"asme-site/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	MediaCleanupQueueName  = "media_cleanup"
	MediaCleanupExchange   = "media"
	MediaCleanupRoutingKey = "orphaned_object"
)

// MediaCleanupTask describes a storage object whose record row was deleted but
// whose removal from the bucket failed.
type MediaCleanupTask struct {
	Collection string    `json:"collection"`
	RecordID   string    `json:"recordId"`
	Bucket     string    `json:"bucket"`
	Key        string    `json:"key"`
	Attempt    int       `json:"attempt"`
	Reason     string    `json:"reason,omitempty"`
	QueuedAt   time.Time `json:"queuedAt"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		MediaCleanupExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		MediaCleanupQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		MediaCleanupQueueName,  // queue name
		MediaCleanupRoutingKey, // routing key
		MediaCleanupExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishMediaCleanup queues an orphaned object for a later delete attempt.
func (c *Client) PublishMediaCleanup(ctx context.Context, task MediaCleanupTask) error {
	if task.QueuedAt.IsZero() {
		task.QueuedAt = time.Now()
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.PublishWithContext(
		ctx,
		MediaCleanupExchange,   // exchange
		MediaCleanupRoutingKey, // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    task.QueuedAt,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish cleanup task bucket=%s key=%s: %v", task.Bucket, task.Key, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Queued media cleanup bucket=%s key=%s attempt=%d", task.Bucket, task.Key, task.Attempt)
	return nil
}

// ConsumeMediaCleanup delivers tasks to handler until ctx is done. A task is
// acked when handler succeeds; otherwise it is republished with Attempt+1
// until maxAttempts, after which it is dropped and logged.
func (c *Client) ConsumeMediaCleanup(ctx context.Context, maxAttempts int, handler func(ctx context.Context, task MediaCleanupTask) error) error {
	msgs, err := c.channel.Consume(
		MediaCleanupQueueName, // queue
		"",                    // consumer
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from queue: %s", MediaCleanupQueueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			var task MediaCleanupTask
			if err := json.Unmarshal(msg.Body, &task); err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal cleanup task: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(ctx, task); err != nil {
				task.Attempt++
				task.Reason = err.Error()
				if task.Attempt >= maxAttempts {
					c.logger.Error("[RABBITMQ] Giving up on bucket=%s key=%s after %d attempts: %v", task.Bucket, task.Key, task.Attempt, err)
					msg.Ack(false)
					continue
				}
				if pubErr := c.PublishMediaCleanup(ctx, task); pubErr != nil {
					msg.Nack(false, true)
					continue
				}
				msg.Ack(false)
				continue
			}

			msg.Ack(false)
			c.logger.Info("[RABBITMQ] Cleaned up bucket=%s key=%s", task.Bucket, task.Key)
		}
	}
}

// QueueLength returns the number of pending cleanup tasks.
func (c *Client) QueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(MediaCleanupQueueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
