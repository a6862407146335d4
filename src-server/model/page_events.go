package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PageEvents is the ordered, append-only event sequence of one page.
type PageEvents struct {
	DB     bun.IDB
	PageID string

	// optional latency hooks, in microseconds
	OnRead  func(microsec float64)
	OnWrite func(microsec float64)
}

func NewPageEvents(db bun.IDB, pageID string) *PageEvents {
	return &PageEvents{DB: db, PageID: pageID}
}

func (p *PageEvents) observe(hook func(float64), start time.Time) {
	if hook != nil {
		hook(float64(time.Since(start).Microseconds()))
	}
}

// Append stores e at the end of the sequence. ID, PageID and Position are
// assigned here; callers serialize appends per page.
func (p *PageEvents) Append(ctx context.Context, e *Event) error {
	start := time.Now()
	defer p.observe(p.OnWrite, start)

	count, err := p.DB.NewSelect().
		Model((*Event)(nil)).
		Where("page_id = ?", p.PageID).
		Count(ctx)
	if err != nil {
		return fmt.Errorf("(*PageEvents).Append: %w", err)
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.PageID = p.PageID
	e.Position = count
	if err := e.Insert(ctx, p.DB); err != nil {
		return fmt.Errorf("(*PageEvents).Append: %w", err)
	}
	return nil
}

func (p *PageEvents) List(ctx context.Context) ([]Event, error) {
	start := time.Now()
	defer p.observe(p.OnRead, start)

	events := make([]Event, 0)
	if err := p.DB.NewSelect().
		Model(&events).
		Where("page_id = ?", p.PageID).
		Order("position ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*PageEvents).List: %w", err)
	}
	return events, nil
}

// Get returns sql.ErrNoRows (wrapped) when the page has no such event.
func (p *PageEvents) Get(ctx context.Context, id string) (*Event, error) {
	start := time.Now()
	defer p.observe(p.OnRead, start)

	event := new(Event)
	if err := p.DB.NewSelect().
		Model(event).
		Where("page_id = ?", p.PageID).
		Where("id = ?", id).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*PageEvents).Get: %w", err)
	}
	return event, nil
}

func (p *PageEvents) Len(ctx context.Context) (int, error) {
	start := time.Now()
	defer p.observe(p.OnRead, start)

	count, err := p.DB.NewSelect().
		Model((*Event)(nil)).
		Where("page_id = ?", p.PageID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("(*PageEvents).Len: %w", err)
	}
	return count, nil
}

// Drop deletes every event of the page.
func (p *PageEvents) Drop(ctx context.Context) error {
	start := time.Now()
	defer p.observe(p.OnWrite, start)

	if _, err := p.DB.NewDelete().
		Model((*Event)(nil)).
		Where("page_id = ?", p.PageID).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*PageEvents).Drop: %w", err)
	}
	return nil
}
