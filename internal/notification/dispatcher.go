package notification

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"sangha/internal/queue"
)

var eventsHandled = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "sangha_events_handled_total",
	Help: "Domain events turned into notifications, by type and outcome.",
}, []string{"type", "outcome"})

func init() {
	prometheus.MustRegister(eventsHandled)
}

// Creator is what the dispatcher needs to post a notification.
type Creator interface {
	Create(ctx context.Context, n Notification) (Notification, error)
}

// Dispatcher turns domain events from the queue into notifications.
type Dispatcher struct {
	notes Creator
	log   *zap.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(notes Creator, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{notes: notes, log: log}
}

// Run consumes q until ctx is cancelled or the queue closes.
func (d *Dispatcher) Run(ctx context.Context, q queue.Queue) error {
	msgs, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	for msg := range msgs {
		if err := d.Handle(ctx, msg); err != nil {
			d.log.Error("event handling failed", zap.String("type", msg.Type), zap.Error(err))
		}
	}
	return ctx.Err()
}

// Handle converts one message. Unknown types are skipped.
func (d *Dispatcher) Handle(ctx context.Context, msg queue.Message) error {
	n, ok, err := Render(msg)
	if err != nil {
		eventsHandled.WithLabelValues(msg.Type, "malformed").Inc()
		return err
	}
	if !ok {
		eventsHandled.WithLabelValues(msg.Type, "skipped").Inc()
		d.log.Debug("skipping event", zap.String("type", msg.Type))
		return nil
	}
	if _, err := d.notes.Create(ctx, n); err != nil {
		eventsHandled.WithLabelValues(msg.Type, "failed").Inc()
		return err
	}
	eventsHandled.WithLabelValues(msg.Type, "created").Inc()
	return nil
}

// Render maps an event to the notification it produces.
func Render(msg queue.Message) (Notification, bool, error) {
	var tag, title string
	switch msg.Type {
	case queue.TypeSessionCreated:
		tag, title = "session", "New session: %s"
	case queue.TypeHomeworkCreated:
		tag, title = "homework", "New homework: %s"
	case queue.TypeQuizCreated:
		tag, title = "quiz", "New quiz: %s"
	case queue.TypeResourceCreated:
		tag, title = "resource", "New resource: %s"
	case queue.TypeMentorshipRequested, queue.TypeMentorshipDecided:
		tag, title = "mentorship", "%s"
	default:
		return Notification{}, false, nil
	}
	var ev queue.Event
	if err := msg.Decode(&ev); err != nil {
		return Notification{}, false, fmt.Errorf("decode %s: %w", msg.Type, err)
	}
	return Notification{
		Title:   fmt.Sprintf(title, ev.Title),
		Message: ev.Detail,
		Type:    &tag,
	}, true, nil
}
