package rabbitmq_test

import (
	"context"
	"sync"
	"testing"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/rabbitmq/mocks"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	exchange   = "feedsync-ex"
	queue      = "feedsync.commands"
	routingKey = "feedsync"
)

type acknowledger struct {
	mu     sync.Mutex
	acked  []uint64
	nacked []uint64
}

func (a *acknowledger) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *acknowledger) Nack(tag uint64, _, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked = append(a.nacked, tag)
	return nil
}

func (a *acknowledger) Reject(tag uint64, _ bool) error {
	return nil
}

func TestUnitDeclare(t *testing.T) {
	tests := map[string]struct {
		exchangeErr error
		queueErr    error
		bindErr     error
		wantErr     error
	}{
		"ok": {},
		"exchange error": {
			exchangeErr: assert.AnError,
			wantErr:     assert.AnError,
		},
		"queue error": {
			queueErr: assert.AnError,
			wantErr:  assert.AnError,
		},
		"bind error": {
			bindErr: assert.AnError,
			wantErr: assert.AnError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			channel := mocks.NewChannel(t)
			channel.On("ExchangeDeclare", exchange, "direct", true, false, false, false, mock.Anything).
				Return(tt.exchangeErr)
			if tt.exchangeErr == nil {
				channel.On("QueueDeclare", queue, true, false, false, false, mock.Anything).
					Return(amqp.Queue{Name: queue}, tt.queueErr)
			}
			if tt.exchangeErr == nil && tt.queueErr == nil {
				channel.On("QueueBind", queue, routingKey, exchange, false, mock.Anything).Return(tt.bindErr)
			}

			err := rabbitmq.NewRabbitMQWithChannel(channel, exchange).Declare(queue, routingKey)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitPublish(t *testing.T) {
	body := []byte(`{"command":"sync"}`)

	channel := mocks.NewChannel(t)
	channel.On("PublishWithContext", mock.Anything, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}).Return(nil).Once()

	err := rabbitmq.NewRabbitMQWithChannel(channel, exchange).Publish(context.TODO(), routingKey, body)

	require.NoError(t, err)
}

func TestUnitConsume(t *testing.T) {
	ack := &acknowledger{}
	deliveries := make(chan amqp.Delivery, 3)
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte("ok")}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("bad")}
	deliveries <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: []byte("ok")}
	close(deliveries)

	channel := mocks.NewChannel(t)
	channel.On("Consume", queue, mock.AnythingOfType("string"), false, false, false, false, mock.Anything).
		Return((<-chan amqp.Delivery)(deliveries), nil).Once()

	mq := rabbitmq.NewRabbitMQWithChannel(channel, exchange)

	var handled []string
	errs, err := mq.Consume(context.Background(), queue, func(_ context.Context, message []byte) error {
		handled = append(handled, string(message))
		if string(message) == "bad" {
			return assert.AnError
		}
		return nil
	})
	require.NoError(t, err)

	consumingErrors := []error{}
	for err := range errs {
		consumingErrors = append(consumingErrors, err)
	}
	<-mq.Done()

	assert.Equal(t, []string{"ok", "bad", "ok"}, handled)
	require.Len(t, consumingErrors, 1)
	assert.ErrorIs(t, consumingErrors[0], assert.AnError)
	assert.Equal(t, []uint64{1, 3}, ack.acked)
	assert.Equal(t, []uint64{2}, ack.nacked)
}

func TestUnitConsumeError(t *testing.T) {
	channel := mocks.NewChannel(t)
	channel.On("Consume", queue, mock.AnythingOfType("string"), false, false, false, false, mock.Anything).
		Return(nil, assert.AnError).Once()

	mq := rabbitmq.NewRabbitMQWithChannel(channel, exchange)
	_, err := mq.Consume(context.Background(), queue, func(context.Context, []byte) error { return nil })

	require.ErrorIs(t, err, assert.AnError)

	select {
	case <-mq.Done():
	default:
		t.Fatal("done channel should be closed when consuming never started")
	}
}

func TestUnitConsumeCanceled(t *testing.T) {
	deliveries := make(chan amqp.Delivery)

	channel := mocks.NewChannel(t)
	channel.On("Consume", queue, mock.AnythingOfType("string"), false, false, false, false, mock.Anything).
		Return((<-chan amqp.Delivery)(deliveries), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	mq := rabbitmq.NewRabbitMQWithChannel(channel, exchange)
	errs, err := mq.Consume(ctx, queue, func(context.Context, []byte) error { return nil })
	require.NoError(t, err)

	cancel()
	<-mq.Done()

	_, open := <-errs
	assert.False(t, open, "errors channel should be closed")
}
