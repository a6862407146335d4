package page_test

import (
	"context"
	"testing"
	"time"
)

func TestRegistrySweepDropsIdlePages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	idle := f.newPage(t)
	*f.clock = f.clock.Add(8 * time.Minute)
	busy := f.newPage(t)
	if f.registry.Len() != 2 || f.observer.pages != 2 {
		t.Fatal("expected 2 pages", f.registry.Len(), f.observer.pages)
	}

	*f.clock = f.clock.Add(5 * time.Minute)
	if _, ok := f.registry.Get(busy.ID()); !ok {
		t.Fatal("busy page missing")
	}

	if n := f.registry.Sweep(ctx, *f.clock); n != 1 {
		t.Error("expected one page swept, got", n)
	}
	if _, ok := f.registry.Get(idle.ID()); ok {
		t.Error("idle page still live")
	}
	if _, ok := f.registry.Get(busy.ID()); !ok {
		t.Error("busy page was swept")
	}
	if n, err := idle.Len(ctx); err != nil || n != 0 {
		t.Error("idle page events not dropped", n, err)
	}
	if f.observer.pages != 1 {
		t.Error("active pages gauge", f.observer.pages)
	}
}

func TestRegistryPagesAreIsolated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.newPage(t)
	b := f.newPage(t)
	if a.ID() == b.ID() {
		t.Fatal("page ids collide")
	}

	fillAll(t, a, "Only on A")
	if err := a.SubmitForm(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := a.Len(ctx); n != 3 {
		t.Error("page A", n)
	}
	if n, _ := b.Len(ctx); n != 2 {
		t.Error("page B", n)
	}
}
