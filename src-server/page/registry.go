package page

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"evboard/src-server/model"
	"evboard/src-server/notify"

	"github.com/google/uuid"
	"github.com/olebedev/when"
)

type Options struct {
	// required
	NewStore func(pageID string) EventStore

	TTL      time.Duration
	When     *when.Parser
	Location *time.Location
	Notifier notify.Notifier
	Observer Observer
	Now      func() time.Time
}

type entry struct {
	page     *EventPage
	lastSeen time.Time
}

// Registry holds the live pages. A page unused for longer than the TTL is
// dropped by Sweep together with its events.
type Registry struct {
	mu    sync.Mutex
	pages map[string]*entry
	opts  Options
}

func NewRegistry(opts Options) *Registry {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Registry{
		pages: make(map[string]*entry),
		opts:  opts,
	}
}

// Create starts a page with the seed events.
func (r *Registry) Create(ctx context.Context) (*EventPage, error) {
	id := uuid.NewString()
	store := r.opts.NewStore(id)
	for _, seed := range model.SeedEvents() {
		seed := seed
		if err := store.Append(ctx, &seed); err != nil {
			if dropErr := store.Drop(ctx); dropErr != nil {
				slog.Warn("can't clean up half-seeded page", "page", id, "error", dropErr)
			}
			return nil, fmt.Errorf("(*Registry).Create: %w", err)
		}
	}

	form := NewAddEventForm(r.opts.When, r.opts.Location)
	form.now = r.opts.Now
	page := NewEventPage(id, store, form, r.opts.Notifier, r.opts.Observer)
	page.now = r.opts.Now

	r.mu.Lock()
	r.pages[id] = &entry{page: page, lastSeen: r.opts.Now()}
	n := len(r.pages)
	r.mu.Unlock()

	r.opts.Observer.PagesActive(n)
	slog.Debug("page created", "page", id)
	return page, nil
}

// Get returns a live page and marks it as seen.
func (r *Registry) Get(id string) (*EventPage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.pages[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.opts.Now()
	return e.page, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

// Sweep drops pages idle for longer than the TTL and returns how many went.
func (r *Registry) Sweep(ctx context.Context, now time.Time) int {
	var stale []*EventPage
	r.mu.Lock()
	for id, e := range r.pages {
		if now.Sub(e.lastSeen) > r.opts.TTL {
			stale = append(stale, e.page)
			delete(r.pages, id)
		}
	}
	n := len(r.pages)
	r.mu.Unlock()

	for _, page := range stale {
		if err := page.drop(ctx); err != nil {
			slog.Error("can't drop events of idle page", "page", page.ID(), "error", err)
			continue
		}
		slog.Info("idle page removed", "page", page.ID())
	}
	if len(stale) > 0 {
		r.opts.Observer.PagesActive(n)
	}
	return len(stale)
}
