package amqpbus

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/streadway/amqp"
)

// Bus implements port.EventBus on RabbitMQ. Each topic maps to a
// durable queue and events are published as persistent JSON messages,
// so an indexer or notification worker can consume them at its own
// pace. The amqp.Channel is not safe for concurrent publishing, hence
// the mutex.
type Bus struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	mu       sync.Mutex
	declared map[string]bool
}

// Dial connects to the broker and opens a publishing channel.
func Dial(addr string) (*Bus, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Bus{conn: conn, ch: ch, declared: make(map[string]bool)}, nil
}

// Publish marshals the event and sends it to the topic's queue,
// declaring the queue on first use.
func (b *Bus) Publish(ctx context.Context, topic string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.declared[topic] {
		if _, err = b.ch.QueueDeclare(
			topic,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		); err != nil {
			return err
		}
		b.declared[topic] = true
	}

	return b.ch.Publish(
		"",    // default exchange
		topic, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
}

// Close releases the channel and the connection.
func (b *Bus) Close() error {
	if err := b.ch.Close(); err != nil {
		b.conn.Close()
		return err
	}
	return b.conn.Close()
}
