package model_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"evboard/src-server/model"

	"github.com/google/uuid"
)

func TestPageEvents(t *testing.T) {
	ctx := context.Background()
	rawDB, bunDB, err := model.OpenInMemory(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	defer rawDB.Close()

	pageA := model.NewPageEvents(bunDB, uuid.NewString())
	pageB := model.NewPageEvents(bunDB, uuid.NewString())

	// case: seeds keep their order and flags
	for _, seed := range model.SeedEvents() {
		seed := seed
		if err := pageA.Append(ctx, &seed); err != nil {
			t.Fatal(err)
		}
	}
	events, err := pageA.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Title != "Music Fest 2024" || events[0].IsExpired {
		t.Error("first seed mismatch", events[0])
	}
	if events[1].Title != "Expired Event" || !events[1].IsExpired {
		t.Error("second seed mismatch", events[1])
	}
	if events[0].Position != 0 || events[1].Position != 1 {
		t.Error("positions not assigned in order", events[0].Position, events[1].Position)
	}

	// case: appends go to the end and do not leak across pages
	extra := model.Event{
		Title:       "Hack Night",
		Date:        "2025-01-02",
		Location:    "Berlin",
		Description: "Bring a laptop",
		User:        "Ana",
	}
	if err := pageA.Append(ctx, &extra); err != nil {
		t.Fatal(err)
	}
	if extra.ID == "" || extra.PageID != pageA.PageID {
		t.Error("append did not assign id and page", extra.ID, extra.PageID)
	}
	events, err = pageA.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 || events[2].Title != "Hack Night" {
		t.Error("appended event not last", events)
	}
	if n, err := pageB.Len(ctx); err != nil || n != 0 {
		t.Error("other page should be empty", n, err)
	}

	// case: get by id, scoped to the page
	got, err := pageA.Get(ctx, extra.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != extra.Title {
		t.Error("get returned wrong event", got.Title)
	}
	if _, err := pageB.Get(ctx, extra.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Error("expected sql.ErrNoRows from other page", err)
	}

	// case: drop removes only this page's events
	if err := pageB.Append(ctx, &model.Event{
		Title: "B", Date: "2025-01-01", Location: "L", Description: "D", User: "U",
	}); err != nil {
		t.Fatal(err)
	}
	if err := pageA.Drop(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := pageA.Len(ctx); n != 0 {
		t.Error("page A should be empty after drop", n)
	}
	if n, _ := pageB.Len(ctx); n != 1 {
		t.Error("page B should keep its event", n)
	}
}

func TestPageEventsRejectsBlankFields(t *testing.T) {
	ctx := context.Background()
	rawDB, bunDB, err := model.OpenInMemory(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	defer rawDB.Close()

	events := model.NewPageEvents(bunDB, uuid.NewString())
	if err := events.Append(ctx, &model.Event{Title: "only a title"}); err == nil {
		t.Error("expected validation error")
	}
	if n, _ := events.Len(ctx); n != 0 {
		t.Error("invalid event should not be stored", n)
	}
}

func TestPageEventsLatencyHooks(t *testing.T) {
	ctx := context.Background()
	rawDB, bunDB, err := model.OpenInMemory(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	defer rawDB.Close()

	var reads, writes int
	events := model.NewPageEvents(bunDB, uuid.NewString())
	events.OnRead = func(float64) { reads++ }
	events.OnWrite = func(float64) { writes++ }

	seed := model.SeedEvents()[0]
	if err := events.Append(ctx, &seed); err != nil {
		t.Fatal(err)
	}
	if _, err := events.List(ctx); err != nil {
		t.Fatal(err)
	}
	if writes != 1 || reads != 1 {
		t.Error("unexpected hook counts", reads, writes)
	}
}
