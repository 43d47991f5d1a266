package queue

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// dialTimeout bounds how long a request can wait on an unreachable broker.
const dialTimeout = 2 * time.Second

// redialAfter is how long publishing fails fast after a failed dial.
const redialAfter = 5 * time.Second

// ErrBrokerUnavailable is returned while a failed dial is cooling down.
var ErrBrokerUnavailable = errors.New("broker unavailable")

// Publisher sends listing events.  Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, ev ListingEvent) error
}

// NopPublisher discards every event.  It is used when events are
// disabled.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, ListingEvent) error { return nil }

// AMQPPublisher publishes events as persistent JSON messages to a durable
// queue through the default exchange.  The connection is opened lazily
// and reopened after the broker drops it.  Dialing happens outside the
// lock, so one slow dial does not queue up other requests behind it.
type AMQPPublisher struct {
	url   string
	queue string
	dial  func(ctx context.Context, url string) (*amqp.Connection, error)

	mu      sync.Mutex
	conn    *amqp.Connection
	retryAt time.Time
}

// NewAMQPPublisher returns a publisher for queue on the broker at url.
// No connection is made until the first Publish.
func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue, dial: dialBroker}
}

// dialBroker connects within dialTimeout or until ctx is done, whichever
// comes first.
func dialBroker(ctx context.Context, url string) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			d := net.Dialer{Timeout: dialTimeout}
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			// Bounds the AMQP handshake; the client clears it once open.
			if err := conn.SetDeadline(time.Now().Add(dialTimeout)); err != nil {
				_ = conn.Close()
				return nil, err
			}
			return conn, nil
		},
	})
}

func (p *AMQPPublisher) connection(ctx context.Context) (*amqp.Connection, error) {
	p.mu.Lock()
	if p.conn != nil && !p.conn.IsClosed() {
		conn := p.conn
		p.mu.Unlock()
		return conn, nil
	}
	if time.Now().Before(p.retryAt) {
		p.mu.Unlock()
		return nil, ErrBrokerUnavailable
	}
	p.mu.Unlock()

	conn, err := p.dial(ctx, p.url)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.retryAt = time.Now().Add(redialAfter)
		return nil, errors.Wrap(err, "dial broker")
	}
	if p.conn != nil && !p.conn.IsClosed() {
		// Another request connected first.
		_ = conn.Close()
		return p.conn, nil
	}
	p.conn = conn
	return conn, nil
}

// Publish implements Publisher.
func (p *AMQPPublisher) Publish(ctx context.Context, ev ListingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	conn, err := p.connection(ctx)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "open channel")
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "declare queue")
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return errors.Wrap(err, "publish event")
	}
	log.Ctx(ctx).Debug().Str("type", ev.Type).Uint64("entity_id", ev.EntityID).Msg("event published")
	return nil
}

// Close releases the broker connection, if any.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}
