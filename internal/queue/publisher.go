package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/planner"
)

// publishFunc sends one encoded event; swapped out in tests.
type publishFunc func(ctx context.Context, body []byte) error

// Publisher forwards planner change events to a durable RabbitMQ queue. The
// planner-facing Listener only enqueues; Run does the network work on its own
// goroutine so a slow or absent broker never delays a mutation.
type Publisher struct {
	url       string
	queueName string
	events    chan PlannerChangedEvent
	log       *zap.Logger
	publish   publishFunc

	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher returns a publisher for queueName on the broker at url. buffer
// is how many events may wait for the broker before new ones are dropped.
func NewPublisher(url, queueName string, buffer int, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	if buffer < 1 {
		buffer = 1
	}
	p := &Publisher{
		url:       url,
		queueName: queueName,
		events:    make(chan PlannerChangedEvent, buffer),
		log:       log,
	}
	p.publish = p.publishAMQP
	return p
}

// Listener returns the planner listener feeding this publisher.
func (p *Publisher) Listener() planner.Listener {
	return func(ev planner.Event) {
		select {
		case p.events <- NewPlannerChangedEvent(ev):
		default:
			p.log.Warn("rabbitmq: publish buffer full, dropping change event",
				zap.String("event_id", ev.ID))
		}
	}
}

// Run publishes queued events until ctx is done. Errors are logged and the
// event is dropped; the next event retries the connection.
func (p *Publisher) Run(ctx context.Context) {
	defer p.close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-p.events:
			body, err := json.Marshal(ev)
			if err != nil {
				p.log.Error("rabbitmq: marshal event failed", zap.Error(err))
				continue
			}
			pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = p.publish(pubCtx, body)
			cancel()
			if err != nil {
				p.log.Warn("rabbitmq: publish failed",
					zap.String("event_id", ev.EventID),
					zap.Error(err))
			}
		}
	}
}

// publishAMQP sends body as a persistent message, dialing on first use and
// again after any failure.
func (p *Publisher) publishAMQP(ctx context.Context, body []byte) error {
	if err := p.ensureChannel(); err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		p.close()
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.close()
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("channel open: %w", err)
	}
	// durable so events survive broker restarts
	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) close() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
