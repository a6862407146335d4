package page

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"evboard/src-server/model"
	"evboard/src-server/notify"
)

const AlertMissingFields = "Please fill out all fields."

// EventPage owns every piece of mutable state of one page: the event
// sequence, the add-event form, the modal flag and the pending alert.
type EventPage struct {
	mu sync.Mutex

	id       string
	store    EventStore
	form     *AddEventForm
	notifier notify.Notifier
	observer Observer
	now      func() time.Time

	modalOpen bool
	alert     string
}

func NewEventPage(id string, store EventStore, form *AddEventForm, notifier notify.Notifier, observer Observer) *EventPage {
	if notifier == nil {
		notifier = notify.Nop
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &EventPage{
		id:       id,
		store:    store,
		form:     form,
		notifier: notifier,
		observer: observer,
		now:      time.Now,
	}
}

func (p *EventPage) ID() string {
	return p.id
}

// AddEvent appends candidate as a non-expired event.
func (p *EventPage) AddEvent(ctx context.Context, candidate model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.addEvent(ctx, candidate)
}

func (p *EventPage) addEvent(ctx context.Context, candidate model.Event) error {
	candidate.ID = ""
	candidate.IsExpired = false
	if err := p.store.Append(ctx, &candidate); err != nil {
		return fmt.Errorf("(*EventPage).AddEvent: %w", err)
	}
	p.observer.EventAdded()
	slog.Debug("event added", "page", p.id, "event", candidate.ID, "title", candidate.Title)
	return nil
}

// RegisterFor announces a registration for title. It never fails: notifier
// errors are logged.
func (p *EventPage) RegisterFor(ctx context.Context, title string) {
	p.mu.Lock()
	reg := p.registered("", title)
	p.mu.Unlock()
	p.notify(ctx, reg)
}

// Register goes through the event's card, so an expired event cannot be registered for.
func (p *EventPage) Register(ctx context.Context, eventID string) error {
	p.mu.Lock()
	event, err := p.store.Get(ctx, eventID)
	if err != nil {
		p.mu.Unlock()
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return fmt.Errorf("(*EventPage).Register: %w", err)
	}

	var reg notify.Registration
	card := NewEventCard(*event, func() {
		reg = p.registered(event.ID, event.Title)
	})
	ok := card.Register()
	p.mu.Unlock()

	if !ok {
		p.observer.Registered(false)
		return ErrEventExpired
	}
	p.notify(ctx, reg)
	return nil
}

// caller holds p.mu
func (p *EventPage) registered(eventID, title string) notify.Registration {
	reg := notify.Registration{
		PageID:     p.id,
		EventID:    eventID,
		EventTitle: title,
		At:         p.now(),
	}
	p.alert = reg.Message()
	return reg
}

func (p *EventPage) notify(ctx context.Context, reg notify.Registration) {
	p.observer.Registered(true)
	if err := p.notifier.Notify(ctx, reg); err != nil {
		slog.Warn("can't deliver registration notification", "page", p.id, "title", reg.EventTitle, "error", err)
	}
}

func (p *EventPage) OpenModal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modalOpen = true
}

// CancelModal only hides the modal; typed input survives for the next open.
func (p *EventPage) CancelModal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modalOpen = false
}

func (p *EventPage) ModalOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modalOpen
}

// Fill applies text values and an optional image file to the form.
func (p *EventPage) Fill(values map[string]string, image io.Reader, imageContentType string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, value := range values {
		if err := p.form.Set(name, value); err != nil {
			return err
		}
	}
	if image != nil {
		if err := p.form.AttachImage(image, imageContentType); err != nil {
			return err
		}
	}
	return nil
}

func (p *EventPage) Form() Fields {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form.Fields()
}

// SubmitForm adds the form's event and closes the modal. With required fields
// missing it sets the alert, keeps the modal open and returns a *MissingFieldsError.
func (p *EventPage) SubmitForm(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.form.Submit(func(candidate model.Event) error {
		return p.addEvent(ctx, candidate)
	})
	switch {
	case errors.Is(err, ErrMissingFields):
		p.alert = AlertMissingFields
		p.modalOpen = true
		p.observer.FormRejected()
		return err
	case err != nil:
		return err
	}
	p.modalOpen = false
	return nil
}

func (p *EventPage) Len(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Len(ctx)
}

type View struct {
	PageID    string
	Cards     []EventCard
	ModalOpen bool
	Form      Fields
	Alert     string
}

// View snapshots the page for rendering and consumes the pending alert.
func (p *EventPage) View(ctx context.Context) (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	events, err := p.store.List(ctx)
	if err != nil {
		return View{}, fmt.Errorf("(*EventPage).View: %w", err)
	}
	cards := make([]EventCard, len(events))
	for i, event := range events {
		// rendering only; the HTTP layer routes clicks through Register
		cards[i] = NewEventCard(event, func() {})
	}

	view := View{
		PageID:    p.id,
		Cards:     cards,
		ModalOpen: p.modalOpen,
		Form:      p.form.Fields(),
		Alert:     p.alert,
	}
	p.alert = ""
	return view, nil
}

func (p *EventPage) drop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Drop(ctx)
}
