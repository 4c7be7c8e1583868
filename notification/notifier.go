// Package notification decouples reservation-flow side effects from the
// business logic: services append events to a Queue and a dispatcher
// goroutine fans them out to sinks. Delivery is best-effort; a failed sink
// never fails the transition that produced the event.
package notification

import (
	"context"
	"log/slog"

	"github.com/kotresh75/Aws-Project/model"
	notificationrepo "github.com/kotresh75/Aws-Project/repository/notification"
)

// Event is one outbound notification.
type Event struct {
	Recipient string
	Subject   string
	Body      string
	RequestID int64
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// LogNotifier writes the event to the log, standing in for real email
// delivery in local development.
type LogNotifier struct {
	Log *slog.Logger
}

func (n *LogNotifier) Notify(_ context.Context, ev Event) error {
	n.Log.Info("mock email",
		"to", ev.Recipient,
		"subject", ev.Subject,
		"body", ev.Body,
		"request_id", ev.RequestID,
	)
	return nil
}

// StoreNotifier persists events as the recipient's in-app feed.
type StoreNotifier struct {
	Repo notificationrepo.Repo
}

func (n *StoreNotifier) Notify(ctx context.Context, ev Event) error {
	return n.Repo.Insert(ctx, &model.Notification{
		Recipient: ev.Recipient,
		Subject:   ev.Subject,
		Body:      ev.Body,
		RequestID: ev.RequestID,
	})
}
