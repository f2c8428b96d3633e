package rmqconsumer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"userinfo-service/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// ErrReject marks a message that can never be processed; it is dropped
// instead of being requeued.
var ErrReject = errors.New("message rejected")

// Handler processes one delivery. A nil error acks the message, an error
// wrapping ErrReject nacks it without requeue, any other error requeues it.
type Handler func(ctx context.Context, routingKey string, body []byte) error

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	keys       []string
	handle     Handler
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, keys []string, handle Handler) *Consumer {
	return &Consumer{
		cfg:    cfg,
		log:    logger,
		keys:   keys,
		handle: handle,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range c.keys {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed by broker")
				return
			}
			if err := c.delivery(ctx, msg); err != nil {
				// alert
				c.log.Error("mq settle message error", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// delivery runs the handler and settles the message with the broker.
func (c *Consumer) delivery(ctx context.Context, msg amqp091.Delivery) error {
	err := c.handle(ctx, msg.RoutingKey, msg.Body)
	switch {
	case err == nil:
		return msg.Ack(false)
	case errors.Is(err, ErrReject):
		c.log.Warn("dropping message",
			zap.String("message_id", msg.MessageId),
			zap.String("routing_key", msg.RoutingKey),
			zap.Error(err),
		)
		return msg.Nack(false, false)
	default:
		c.log.Error("message handling failed, requeueing",
			zap.String("message_id", msg.MessageId),
			zap.String("routing_key", msg.RoutingKey),
			zap.Error(err),
		)
		return msg.Nack(false, true)
	}
}

func (c *Consumer) Close() {
	if c.chConsume != nil {
		_ = c.chConsume.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
