package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// amqpChannel is the subset of *amqp.Channel used by AMQPClient.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// AMQPClient publishes and consumes analysis messages on a RabbitMQ queue.
type AMQPClient struct {
	conn  *amqp.Connection
	queue string

	mu sync.Mutex
	ch amqpChannel
}

// NewAMQPClient dials the broker and declares a durable queue.
func NewAMQPClient(url, queueName string) (*AMQPClient, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("amqp url is required")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	client, err := newAMQPClientWithChannel(ch, queueName)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	client.conn = conn
	return client, nil
}

func newAMQPClientWithChannel(ch amqpChannel, queueName string) (*AMQPClient, error) {
	queueName = strings.TrimSpace(queueName)
	if queueName == "" {
		return nil, fmt.Errorf("amqp queue name is required")
	}
	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}
	return &AMQPClient{ch: ch, queue: queueName}, nil
}

// Send publishes a persistent message to the default exchange.
func (c *AMQPClient) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode amqp message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.ch.Publish("", c.queue, false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     msg.AnalysisID,
		CorrelationId: msg.RequestID,
		Timestamp:     time.Now().UTC(),
		Body:          payload,
	})
	if err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Consume starts a manual-ack consumer with the given prefetch.
func (c *AMQPClient) Consume(consumerTag string, prefetch int) (<-chan amqp.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prefetch > 0 {
		if err := c.ch.Qos(prefetch, 0, false); err != nil {
			return nil, fmt.Errorf("amqp qos: %w", err)
		}
	}
	deliveries, err := c.ch.Consume(
		c.queue,
		consumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("amqp consume: %w", err)
	}
	return deliveries, nil
}

// Close releases the channel and connection.
func (c *AMQPClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.ch.Close()
	if c.conn != nil {
		if cerr := c.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

var _ Client = (*AMQPClient)(nil)
