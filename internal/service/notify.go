package service

import (
	"context"
	"log"
)

// Notifier posts a short markdown message to an external channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string) error { return nil }

func orNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

// notify is best effort; a failed post never fails the operation.
func notify(ctx context.Context, n Notifier, message string) {
	if err := n.Notify(ctx, message); err != nil {
		log.Printf("ERROR notify: %v", err)
	}
}
