package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Registration is what gets announced when someone registers for an event.
type Registration struct {
	PageID     string
	EventID    string
	EventTitle string
	At         time.Time
}

func (r Registration) Message() string {
	return fmt.Sprintf("You have registered for: %s", r.EventTitle)
}

type Notifier interface {
	Notify(ctx context.Context, reg Registration) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, reg Registration) error

func (f NotifierFunc) Notify(ctx context.Context, reg Registration) error {
	return f(ctx, reg)
}

// Multi notifies every target and joins their errors; one failing target does not stop the rest.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, reg Registration) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, reg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nop struct{}

func (nop) Notify(context.Context, Registration) error { return nil }

// Nop discards registrations.
var Nop Notifier = nop{}
