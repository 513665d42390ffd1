package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lslops/checklist-management/internal/core/events"
)

// QueuePublisher routes non-compliance events to a durable broker queue so
// alert delivery survives a restart of the API process. Every other event
// type stays on the in-process bus.
type QueuePublisher struct {
	url    string
	queue  string
	bus    *events.EventBus
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewQueuePublisher(url, queue string, bus *events.EventBus, logger *slog.Logger) *QueuePublisher {
	return &QueuePublisher{
		url:    url,
		queue:  queue,
		bus:    bus,
		logger: logger,
	}
}

func (p *QueuePublisher) Publish(ctx context.Context, event events.Event) error {
	if event.EventType() != events.EventTypeChecklistNonCompliant {
		return p.bus.Publish(ctx, event)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return fmt.Errorf("broker channel: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.Info("event queued for alert worker",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"queue", p.queue)
	return nil
}

func (p *QueuePublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	p.conn = conn
	p.ch = ch
	return ch, nil
}

func (p *QueuePublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *QueuePublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}

// Consumer runs the alert worker side of the queue: it reads non-compliance
// events, hands them to the dispatcher, and acks only after a successful
// dispatch. Connection problems trigger a capped exponential backoff.
type Consumer struct {
	url        string
	queue      string
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewConsumer(url, queue string, dispatcher *Dispatcher, logger *slog.Logger) *Consumer {
	return &Consumer{
		url:        url,
		queue:      queue,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run blocks until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Error("alert worker: failed to dial broker",
				"error", err,
				"retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			if errors.Is(err, context.Canceled) {
				conn.Close()
				return err
			}
			c.logger.Error("alert worker: consume loop ended, reconnecting", "error", err)
			conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(10, 0, false); err != nil {
		c.logger.Warn("alert worker: set QoS failed", "error", err)
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleDelivery(ctx, d.Body); err != nil {
				c.logger.Error("alert worker: handling delivery failed", "error", err)
				// reject without requeue so a poison message cannot loop
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, body []byte) error {
	var event events.ChecklistNonCompliantEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	return c.dispatcher.Dispatch(ctx, &event)
}
