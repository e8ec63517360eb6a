package worker

import (
	"context"
	"log"

	"webgestor/store"
	"webgestor/utils"
)

// NotificationMailWorker forwards in-app notifications to email. It is
// best effort: a failed send is logged and the notification stays
// available in the app.
type NotificationMailWorker struct {
	Store  *store.Store
	Mailer *utils.Mailer
	Logger *log.Logger
}

func NewNotificationMailWorker(s *store.Store, mailer *utils.Mailer, logger *log.Logger) *NotificationMailWorker {
	return &NotificationMailWorker{
		Store:  s,
		Mailer: mailer,
		Logger: logger,
	}
}

func (nw *NotificationMailWorker) Start(ctx context.Context) {
	if nw.Mailer == nil || !nw.Mailer.Enabled() {
		nw.Logger.Println("Notification mail worker disabled: SMTP not configured")
		return
	}

	id, events := nw.Store.Hub().Subscribe()
	defer nw.Store.Hub().Unsubscribe(id)

	nw.Logger.Println("Notification mail worker started")

	for {
		select {
		case <-ctx.Done():
			nw.Logger.Println("Notification mail worker shutting down...")
			return
		case n, ok := <-events:
			if !ok {
				return
			}

			recipient, found := nw.Store.UserByID(n.UserID)
			if !found || recipient.Email == "" {
				continue
			}

			if err := nw.Mailer.SendNotificationEmail(recipient.Email, recipient.Name, n); err != nil {
				nw.Logger.Printf("Error sending notification email to %s: %v", recipient.Email, err)
			}
		}
	}
}
