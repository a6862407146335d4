package page_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"evboard/src-server/model"
	"evboard/src-server/notify"
	"evboard/src-server/page"
	"evboard/src-server/utils"
)

type recordingNotifier struct {
	mu   sync.Mutex
	regs []notify.Registration
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, reg notify.Registration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.regs = append(n.regs, reg)
	return n.err
}

func (n *recordingNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	titles := make([]string, len(n.regs))
	for i, reg := range n.regs {
		titles[i] = reg.EventTitle
	}
	return titles
}

type countingObserver struct {
	mu                            sync.Mutex
	added, rejected, ok, declined int
	pages                         int
}

func (o *countingObserver) EventAdded()   { o.mu.Lock(); o.added++; o.mu.Unlock() }
func (o *countingObserver) FormRejected() { o.mu.Lock(); o.rejected++; o.mu.Unlock() }
func (o *countingObserver) Registered(ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ok {
		o.ok++
	} else {
		o.declined++
	}
}
func (o *countingObserver) PagesActive(n int) { o.mu.Lock(); o.pages = n; o.mu.Unlock() }

type fixture struct {
	registry *page.Registry
	notifier *recordingNotifier
	observer *countingObserver
	clock    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rawDB, bunDB, err := model.OpenInMemory(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { rawDB.Close() })

	clock := time.Date(2024, time.November, 1, 12, 0, 0, 0, time.UTC)
	f := &fixture{
		notifier: &recordingNotifier{},
		observer: &countingObserver{},
		clock:    &clock,
	}
	f.registry = page.NewRegistry(page.Options{
		NewStore: func(pageID string) page.EventStore {
			return model.NewPageEvents(bunDB, pageID)
		},
		TTL:      10 * time.Minute,
		When:     utils.NewWhenParser(),
		Location: time.UTC,
		Notifier: f.notifier,
		Observer: f.observer,
		Now:      func() time.Time { return *f.clock },
	})
	return f
}

func (f *fixture) newPage(t *testing.T) *page.EventPage {
	t.Helper()
	p, err := f.registry.Create(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func fillAll(t *testing.T, p *page.EventPage, title string) {
	t.Helper()
	if err := p.Fill(map[string]string{
		page.FieldTitle:       title,
		page.FieldDescription: "Talks and pizza",
		page.FieldUser:        "Ana",
		page.FieldDate:        "2024-12-01",
		page.FieldLocation:    "Berlin",
	}, nil, ""); err != nil {
		t.Fatal(err)
	}
}
