package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const maxBackoff = 30 * time.Second

// StartActivityConsumer connects to the broker at url, declares queue
// (durable) and appends one line per listing event to logPath.  It
// reconnects with exponential backoff and returns only when ctx is
// cancelled.  Malformed messages are rejected without requeue so a bad
// payload cannot loop forever.
func StartActivityConsumer(ctx context.Context, url, queue, logPath string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", backoff).Msg("activity consumer: dial failed")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, queue, logPath)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Msg("activity consumer: consume loop ended, reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, queue, logPath string) error {
	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "open channel")
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn().Err(err).Msg("activity consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "declare queue")
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "consume")
	}
	log.Info().Str("queue", queue).Str("log", logPath).Msg("activity consumer: listening")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(logPath, d.Body); err != nil {
				log.Error().Err(err).Msg("activity consumer: handle message failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(logPath string, body []byte) error {
	var ev ListingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open activity log")
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(ev)); err != nil {
		return errors.Wrap(err, "write activity log")
	}
	return nil
}

func formatLine(ev ListingEvent) string {
	return fmt.Sprintf("[%s] %s | id=%d | name=%q\n",
		ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.EntityID, ev.Name)
}
