package commander

import "context"

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// RabbitMQPublisher is RabbitMQ messages publisher.
type RabbitMQPublisher interface {
	Publish(context.Context, string, []byte) error
}

// RabbitMQSender publishes commands to syncer's routing key.
type RabbitMQSender struct {
	publisher  RabbitMQPublisher
	routingKey string
}

// NewRabbitMQSender returns new RabbitMQSender publishing to routingKey.
func NewRabbitMQSender(publisher RabbitMQPublisher, routingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// Send publishes message to routing key.
func (s RabbitMQSender) Send(ctx context.Context, msg []byte) error {
	return s.publisher.Publish(ctx, s.routingKey, msg)
}
