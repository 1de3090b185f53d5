package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes roster solve events.
type Publisher interface {
	PublishSolveRequested(ctx context.Context, event SolveRequestedEvent) error
	PublishSolved(ctx context.Context, event SolvedEvent) error
	PublishProgress(ctx context.Context, event ProgressEvent) error
	Close() error
}

// RabbitMQPublisher publishes roster events to the roster.events exchange.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewRabbitMQPublisher dials url and declares the roster.events exchange.
func NewRabbitMQPublisher(url string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("eventbus: connecting to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("eventbus: opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("eventbus: declaring exchange: %w", err)
	}

	logger.Info("rabbitmq publisher connected", "exchange", ExchangeName)
	return &RabbitMQPublisher{conn: conn, channel: ch, logger: logger}, nil
}

// PublishSolveRequested implements Publisher.
func (p *RabbitMQPublisher) PublishSolveRequested(ctx context.Context, event SolveRequestedEvent) error {
	body, err := marshalEvent(event)
	if err != nil {
		return fmt.Errorf("eventbus: marshaling solve_requested: %w", err)
	}
	return p.publish(ctx, SolveRequestedRoutingKey, body)
}

// PublishSolved implements Publisher.
func (p *RabbitMQPublisher) PublishSolved(ctx context.Context, event SolvedEvent) error {
	body, err := marshalEvent(event)
	if err != nil {
		return fmt.Errorf("eventbus: marshaling solved: %w", err)
	}
	return p.publish(ctx, SolvedRoutingKey, body)
}

// PublishProgress implements Publisher.
func (p *RabbitMQPublisher) PublishProgress(ctx context.Context, event ProgressEvent) error {
	body, err := marshalEvent(event)
	if err != nil {
		return fmt.Errorf("eventbus: marshaling solve_progress: %w", err)
	}
	return p.publish(ctx, ProgressRoutingKey, body)
}

func (p *RabbitMQPublisher) publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.logger.Error("failed to publish event", "routing_key", routingKey, "error", err)
		return err
	}
	return nil
}

// Close closes the publisher's connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Warn("error closing channel", "error", err)
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// SolveRequestHandler processes one SolveRequestedEvent, returning the
// SolvedEvent to publish back.
type SolveRequestHandler func(ctx context.Context, event SolveRequestedEvent) (SolvedEvent, error)

// RabbitMQConsumer consumes roster.solve_requested messages and invokes a
// SolveRequestHandler for each, publishing the resulting SolvedEvent.
// Single-purpose: this domain has exactly one request event type, so
// there is no handler registry to dispatch through.
type RabbitMQConsumer struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queue     string
	publisher Publisher
	handler   SolveRequestHandler
	logger    *slog.Logger
}

// RabbitMQConsumerConfig configures the worker's queue consumer.
type RabbitMQConsumerConfig struct {
	URL       string
	QueueName string
	Publisher Publisher
	Handler   SolveRequestHandler
	Logger    *slog.Logger
}

// NewRabbitMQConsumer dials cfg.URL, declares the exchange/queue, and binds
// the queue to SolveRequestedRoutingKey.
func NewRabbitMQConsumer(cfg RabbitMQConsumerConfig) (*RabbitMQConsumer, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.QueueName == "" {
		cfg.QueueName = "roster.worker"
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("eventbus: connecting to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("eventbus: opening channel: %w", err)
	}
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("eventbus: declaring exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("eventbus: declaring queue: %w", err)
	}
	if err := ch.QueueBind(cfg.QueueName, SolveRequestedRoutingKey, ExchangeName, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("eventbus: binding queue: %w", err)
	}

	cfg.Logger.Info("rabbitmq consumer connected", "queue", cfg.QueueName)
	return &RabbitMQConsumer{
		conn:      conn,
		channel:   ch,
		queue:     cfg.QueueName,
		publisher: cfg.Publisher,
		handler:   cfg.Handler,
		logger:    cfg.Logger,
	}, nil
}

// Start blocks, consuming messages until ctx is cancelled.
func (c *RabbitMQConsumer) Start(ctx context.Context) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("eventbus: setting qos: %w", err)
	}

	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("eventbus: starting consume: %w", err)
	}

	c.logger.Info("consuming solve requests", "queue", c.queue)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("eventbus: delivery channel closed")
			}
			c.process(ctx, msg)
		}
	}
}

func (c *RabbitMQConsumer) process(ctx context.Context, msg amqp.Delivery) {
	var event SolveRequestedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.logger.Error("failed to unmarshal solve_requested", "error", err)
		_ = msg.Ack(false)
		return
	}

	solved, err := c.handler(ctx, event)
	if err != nil {
		c.logger.Error("solve handler failed", "run_id", event.RunID, "error", err)
		_ = msg.Nack(false, true)
		return
	}

	if c.publisher != nil {
		if err := c.publisher.PublishSolved(ctx, solved); err != nil {
			c.logger.Error("failed to publish solved event", "run_id", event.RunID, "error", err)
		}
	}
	_ = msg.Ack(false)
}

// Close closes the consumer's connection.
func (c *RabbitMQConsumer) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn("error closing channel", "error", err)
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
