package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"news_portal/internal/domain"
)

// RabbitMQ announces article, video and e-paper changes made through the
// admin API. Events go to a durable topic exchange keyed
// <prefix>.<kind>.<action>, so a consumer that only cares about, say,
// deleted videos binds to "content.video.delete".
type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	prefix   string
	logger   *slog.Logger
}

type Config struct {
	URL      string
	Exchange string
	// RoutingKey is the prefix of every event key.
	RoutingKey string
	// QueueName is a durable queue bound to every content event, so nothing
	// is lost while downstream consumers are offline. Empty skips it.
	QueueName string
}

// NewRabbitMQ dials the broker and declares the content exchange, plus the
// catch-all queue when one is configured.
func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareContentTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger = logger.With("component", "events")
	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey+".#",
	)

	return &RabbitMQ{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		prefix:   cfg.RoutingKey,
		logger:   logger,
	}, nil
}

func declareContentTopology(ch *amqp.Channel, cfg Config) error {
	// durable, not auto-deleted
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare content exchange %q: %w", cfg.Exchange, err)
	}
	if cfg.QueueName == "" {
		return nil
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare content queue %q: %w", cfg.QueueName, err)
	}
	if err := ch.QueueBind(q.Name, cfg.RoutingKey+".#", cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind content queue %q: %w", q.Name, err)
	}
	return nil
}

// RoutingKey is the key an event is published under.
func RoutingKey(prefix string, event domain.ContentEvent) string {
	return fmt.Sprintf("%s.%s.%s", prefix, event.Kind, event.Action)
}

// messageID identifies one change to one record, letting consumers drop
// redeliveries.
func messageID(event domain.ContentEvent) string {
	return fmt.Sprintf("%s-%d-%s-%d", event.Kind, event.ID, event.Action, event.Timestamp.UnixNano())
}

func (r *RabbitMQ) Publish(ctx context.Context, event domain.ContentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	key := RoutingKey(r.prefix, event)
	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		key,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    messageID(event),
			Type:         string(event.Kind) + "." + string(event.Action),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	r.logger.Debug("published content event",
		"routing_key", key,
		"kind", event.Kind,
		"id", event.ID,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
