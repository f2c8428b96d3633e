package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ is the broker-backed SearchSync: mirror writes become persistent
// messages applied to the index by the indexer process.
type RabbitMQ interface {
	SearchSync
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
