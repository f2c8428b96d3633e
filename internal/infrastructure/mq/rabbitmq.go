package mq

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"userinfo-service/config"
	"userinfo-service/internal/domain/userinfo"
	dto "userinfo-service/internal/interface/api/rest/dto/userinfo"
)

// Routing keys: an upsert is published as PUT, a removal as DELETE.
var routingKeys = []string{http.MethodPut, http.MethodDelete}

type (
	InputCh  = chan Event
	RabbitMQ struct {
		cfg     config.MQ
		log     *zap.Logger
		conn    *amqp091.Connection
		pubCh   *amqp091.Channel
		in      InputCh
		done    chan struct{}
		gauge   prometheus.Gauge
		mu      sync.RWMutex
		stopped bool
		pending atomic.Int64
	}
	Event struct {
		Id       uuid.UUID    `json:"event_id"`
		TS       time.Time    `json:"time_stamp"`
		Method   string       `json:"event_action"`
		EntityID int64        `json:"entity_id"`
		Payload  *dto.UserInfo `json:"payload,omitempty"`
	}
)

func New(cfg config.MQ, logger *zap.Logger, gauge prometheus.Gauge, bufferSize int) *RabbitMQ {
	return &RabbitMQ{
		cfg:   cfg,
		log:   logger,
		in:    make(chan Event, bufferSize),
		done:  make(chan struct{}),
		gauge: gauge,
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "userinfo-api",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return nil
}

func (r *RabbitMQ) Init() error {
	if err := declareTopology(r.pubCh, r.cfg); err != nil {
		return err
	}

	// events are published mandatory; the broker hands back any it cannot route
	go r.logReturns(r.pubCh.NotifyReturn(make(chan amqp091.Return, 16)))

	return nil
}

// logReturns runs until the channel is closed by amqp091 on shutdown.
func (r *RabbitMQ) logReturns(returns <-chan amqp091.Return) {
	for ret := range returns {
		// alert
		r.log.Error("mq message returned unroutable",
			zap.Uint16("reply_code", ret.ReplyCode),
			zap.String("reply_text", ret.ReplyText),
			zap.String("exchange", ret.Exchange),
			zap.String("routing_key", ret.RoutingKey),
			zap.String("message_id", ret.MessageId),
		)
	}
}

// RoutingKeys lists every key a mirror event is published with.
func RoutingKeys() []string { return append([]string(nil), routingKeys...) }

func declareTopology(ch *amqp091.Channel, cfg config.MQ) error {
	if err := ch.ExchangeDeclare(
		cfg.Exchange,
		cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range routingKeys {
		if err = ch.QueueBind(q.Name, rk, cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

func (r *RabbitMQ) Index(ctx context.Context, u *userinfo.UserInfo) {
	if !u.HasID() {
		return
	}
	payload := dto.ToResponseUserInfo(*u)
	r.enqueue(ctx, newEvent(http.MethodPut, u.ID, &payload))
}

func (r *RabbitMQ) Remove(ctx context.Context, id userinfo.ID) {
	r.enqueue(ctx, newEvent(http.MethodDelete, id, nil))
}

func (r *RabbitMQ) Pending() int64 { return r.pending.Load() }

func newEvent(method string, id userinfo.ID, payload *dto.UserInfo) Event {
	return Event{
		Id:       uuid.New(),
		TS:       time.Now().UTC(),
		Method:   method,
		EntityID: id,
		Payload:  payload,
	}
}

// enqueue holds the read lock across the send so that the shutdown flush
// cannot start while a send is in flight.
func (r *RabbitMQ) enqueue(ctx context.Context, e Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		r.log.Warn("publisher stopped, dropping mirror event", zap.Int64("id", e.EntityID))
		return
	}

	r.track(1)
	select {
	case r.in <- e:
	case <-r.done:
		r.track(-1)
		r.log.Warn("publisher stopped, dropping mirror event", zap.Int64("id", e.EntityID))
	case <-ctx.Done():
		r.track(-1)
		r.log.Warn("mirror event enqueue abandoned", zap.Int64("id", e.EntityID), zap.Error(ctx.Err()))
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			r.send(ctx, e)
		case <-ctx.Done():
			r.stop()
			r.flush()
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

func (r *RabbitMQ) stop() {
	close(r.done)
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
}

// flush publishes whatever was queued before shutdown.
func (r *RabbitMQ) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		select {
		case e := <-r.in:
			r.send(ctx, e)
		default:
			return
		}
	}
}

func (r *RabbitMQ) send(ctx context.Context, e Event) {
	defer r.track(-1)
	if err := r.publish(ctx, e); err != nil {
		// alert
		r.log.Error("mq publish error", zap.Int64("id", e.EntityID), zap.Error(err))
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         e.Method,
		Body:         b,
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		e.Method,
		true,
		false,
		pub,
	)
}

func (r *RabbitMQ) track(delta int64) {
	r.pending.Add(delta)
	if r.gauge != nil {
		r.gauge.Add(float64(delta))
	}
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
