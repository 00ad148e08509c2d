// Package kafka provides the Kafka-backed implementation of the notification
// dispatcher port. Notifications are fire-and-forget: messages are queued to
// an in-process inbox and written to the broker by a background goroutine, so
// a slow or unavailable broker never blocks a business transaction.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	kafkago "github.com/segmentio/kafka-go"
)

// NotificationMessage is the wire payload published to the notifications
// topic. Consumed by the downstream notification service (email, in-app).
type NotificationMessage struct {
	UserID   string    `json:"user_id"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Category string    `json:"category"`
	SentAt   time.Time `json:"sent_at"`
}

// NotificationDispatcher publishes user notifications to a Kafka topic.
// Implements ports.NotificationDispatcher.
//
// Messages are keyed by user ID so that one user's notifications stay ordered
// within a partition. Delivery failures are logged and dropped; notifications
// carry no business state and the system stays correct without them.
type NotificationDispatcher struct {
	writer  *kafkago.Writer
	inbox   chan kafkago.Message
	closeCh chan struct{}
	logger  *slog.Logger
}

// NewNotificationDispatcher creates a dispatcher writing to the given brokers
// and topic. Start must be called before the first Notify.
func NewNotificationDispatcher(
	brokers []string,
	topic string,
	bufferSize int,
	logger *slog.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
		},
		inbox:   make(chan kafkago.Message, bufferSize),
		closeCh: make(chan struct{}),
		logger:  logger.With("component", "kafka_dispatcher"),
	}
}

// Start launches the background writer goroutine. On context cancellation the
// queued messages are flushed and the writer closed. The inbox channel itself
// is never closed, so a Notify racing with shutdown enqueues or drops but
// cannot panic.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	go func() {
		defer close(d.closeCh)
		defer d.closeWriter()

		for {
			select {
			case <-ctx.Done():
				d.flush()
				return
			case m := <-d.inbox:
				d.write(m)
			}
		}
	}()
}

// Notify queues one notification for publication. Never blocks on the broker;
// if the inbox is full the notification is dropped and logged.
func (d *NotificationDispatcher) Notify(
	_ context.Context,
	userID kernel.UUID,
	title, message, category string,
) {
	payload, err := json.Marshal(NotificationMessage{
		UserID:   userID.String(),
		Title:    title,
		Message:  message,
		Category: category,
		SentAt:   time.Now().UTC(),
	})
	if err != nil {
		d.logger.Error("failed to marshal notification", "error", err)
		return
	}

	msg := kafkago.Message{
		Key:   []byte(userID.String()),
		Value: payload,
		Time:  time.Now(),
	}

	select {
	case d.inbox <- msg:
	default:
		d.logger.Warn("notification inbox full, dropping message",
			"user_id", userID.String(),
			"category", category,
		)
	}
}

// WaitClosed blocks until the writer goroutine has flushed the inbox and
// exited. Call after cancelling the context passed to Start.
func (d *NotificationDispatcher) WaitClosed() {
	<-d.closeCh
}

func (d *NotificationDispatcher) write(m kafkago.Message) {
	if err := d.writer.WriteMessages(context.Background(), m); err != nil {
		d.logger.Error("failed to publish notification", "error", err)
	}
}

// flush writes whatever is queued at shutdown without blocking on producers.
func (d *NotificationDispatcher) flush() {
	for {
		select {
		case m := <-d.inbox:
			d.write(m)
		default:
			return
		}
	}
}

func (d *NotificationDispatcher) closeWriter() {
	if err := d.writer.Close(); err != nil {
		d.logger.Error("failed to close kafka writer", "error", err)
	}
}
