package notification

import (
	"context"
	"log/slog"
	"sync"
)

// Queue buffers outbound events between the services and the sinks.
// Enqueue never blocks; when the buffer is full the event is dropped with a
// warning, which is acceptable for best-effort delivery.
type Queue struct {
	ch    chan Event
	sinks []Notifier
	log   *slog.Logger
	wg    sync.WaitGroup
}

func NewQueue(buffer int, log *slog.Logger, sinks ...Notifier) *Queue {
	if buffer <= 0 {
		buffer = 256
	}
	return &Queue{
		ch:    make(chan Event, buffer),
		sinks: sinks,
		log:   log,
	}
}

func (q *Queue) Enqueue(ev Event) {
	select {
	case q.ch <- ev:
	default:
		q.log.Warn("notification queue full, dropping event",
			"to", ev.Recipient, "subject", ev.Subject)
	}
}

// Start runs the dispatcher until ctx is cancelled. Sink failures are
// logged and never reach the caller that enqueued the event.
func (q *Queue) Start(ctx context.Context) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-q.ch:
				q.dispatch(ctx, ev)
			}
		}
	}()
}

func (q *Queue) dispatch(ctx context.Context, ev Event) {
	for _, s := range q.sinks {
		if err := s.Notify(ctx, ev); err != nil {
			q.log.Error("notification delivery failed",
				"err", err, "to", ev.Recipient, "subject", ev.Subject)
		}
	}
}

// Drain delivers everything still buffered, for shutdown and tests.
func (q *Queue) Drain(ctx context.Context) {
	for {
		select {
		case ev := <-q.ch:
			q.dispatch(ctx, ev)
		default:
			return
		}
	}
}

func (q *Queue) Stop() { q.wg.Wait() }
