package rabbitmq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "direct"

//go:generate mockery --name Channel --filename channel.go

// Channel is subset of amqp channel used for commands transport.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// HandlerFunc is function which handles messages.
type HandlerFunc func(ctx context.Context, message []byte) error

// RabbitMQ consumes and publishes amqp messages.
type RabbitMQ struct {
	channel   Channel
	exchange  string
	isRunning chan struct{}
}

// NewRabbitMQ opens channel on connection and returns new RabbitMQ.
func NewRabbitMQ(connection *amqp.Connection, exchange string) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}

	return NewRabbitMQWithChannel(channel, exchange), nil
}

// NewRabbitMQWithChannel returns new RabbitMQ working on already opened channel.
func NewRabbitMQWithChannel(channel Channel, exchange string) *RabbitMQ {
	return &RabbitMQ{
		channel:   channel,
		exchange:  exchange,
		isRunning: closedChan(),
	}
}

// Declare declares durable exchange and queue and binds queue to exchange with routing key.
func (mq *RabbitMQ) Declare(queue, routingKey string) error {
	if err := mq.channel.ExchangeDeclare(mq.exchange, exchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare exchange %s: %w", mq.exchange, err)
	}

	if _, err := mq.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare queue %s: %w", queue, err)
	}

	if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
		return fmt.Errorf("can't bind queue %s: %w", queue, err)
	}

	return nil
}

// Publish publishes message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         message,
	}

	if err := mq.channel.PublishWithContext(ctx, mq.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("can't publish message: %w", err)
	}

	return nil
}

// Consume consumes messages from queue and passes deliveries to provided handler function.
// It returns channel with errors from handler function and consuming process.
// Messages are consumed in background until context is closed or deliveries channel is closed.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.Consume(
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		defer close(consumingErrors)
		mq.consumeMessages(ctx, deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for {
		var delivery amqp.Delivery
		var ok bool
		select {
		case <-ctx.Done():
			return
		case delivery, ok = <-deliveries:
			if !ok {
				return
			}
		}

		if err := handler(ctx, delivery.Body); err != nil {
			if pushErr := pushError(ctx, err, consumingErrors); pushErr != nil {
				return
			}
			if err := mq.nackMessage(ctx, &delivery, consumingErrors); err != nil {
				return
			}
			continue
		}
		if err := mq.ackMessage(ctx, &delivery, consumingErrors); err != nil {
			return
		}
	}
}

func (mq *RabbitMQ) ackMessage(
	ctx context.Context,
	delivery *amqp.Delivery,
	consumingErrors chan error,
) error {
	if err := delivery.Ack(false); err != nil {
		if pushErr := pushError(ctx, fmt.Errorf("can't ack message: %w", err), consumingErrors); pushErr != nil {
			return pushErr
		}
	}
	return nil
}

// nackMessage rejects message without requeue, failed commands are not retried.
func (mq *RabbitMQ) nackMessage(
	ctx context.Context,
	delivery *amqp.Delivery,
	consumingErrors chan error,
) error {
	if err := delivery.Nack(false, false); err != nil {
		if pushErr := pushError(ctx, fmt.Errorf("can't nack message: %w", err), consumingErrors); pushErr != nil {
			return pushErr
		}
	}
	return nil
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() <-chan struct{} {
	return mq.isRunning
}

// Close closes channel.
func (mq *RabbitMQ) Close() error {
	if err := mq.channel.Close(); err != nil {
		return fmt.Errorf("can't close channel: %w", err)
	}
	return nil
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
