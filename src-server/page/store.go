package page

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"evboard/src-server/model"
)

// EventStore is the ordered event sequence owned by one page.
type EventStore interface {
	Append(ctx context.Context, e *model.Event) error
	List(ctx context.Context) ([]model.Event, error)
	Get(ctx context.Context, id string) (*model.Event, error)
	Len(ctx context.Context) (int, error)
	Drop(ctx context.Context) error
}

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrEventExpired  = errors.New("event expired")
	ErrEventNotFound = errors.New("event not found")
	ErrUnknownField  = errors.New("unknown form field")
)

type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// Observer receives counts for metrics.
type Observer interface {
	EventAdded()
	FormRejected()
	Registered(ok bool)
	PagesActive(n int)
}

type nopObserver struct{}

func (nopObserver) EventAdded()     {}
func (nopObserver) FormRejected()   {}
func (nopObserver) Registered(bool) {}
func (nopObserver) PagesActive(int) {}
