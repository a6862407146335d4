package model

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID       string `bun:"id,pk"`            // required
	PageID   string `bun:"page_id,notnull"`  // required
	Position int    `bun:"position,notnull"` // insertion order within the page

	Title       string `bun:"title,notnull"`       // required
	Date        string `bun:"date,notnull"`        // required
	Location    string `bun:"location,notnull"`    // required
	Description string `bun:"description,notnull"` // required
	User        string `bun:"user,notnull"`        // required
	Image       string `bun:"image"`
	Deadline    string `bun:"deadline"`

	// set once on insert, never recomputed from Deadline
	IsExpired bool `bun:"is_expired,notnull"`

	CreatedAt int64 `bun:"created_at,notnull"`
}

// Validate reports the first blank required field.
func (e *Event) Validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Validate: event id is blank")
	case e.PageID == "":
		return fmt.Errorf("(*Event).Validate: page id is blank")
	case e.Title == "":
		return fmt.Errorf("(*Event).Validate: title is blank")
	case e.Description == "":
		return fmt.Errorf("(*Event).Validate: description is blank")
	case e.Date == "":
		return fmt.Errorf("(*Event).Validate: date is blank")
	case e.Location == "":
		return fmt.Errorf("(*Event).Validate: location is blank")
	case e.User == "":
		return fmt.Errorf("(*Event).Validate: user is blank")
	}
	return nil
}

func (e *Event) Insert(ctx context.Context, db bun.IDB) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().UTC().Unix()
	}
	if _, err := db.NewInsert().
		Model(e).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Event).Insert: %w", err)
	}
	return nil
}

// HasImage is used by the story strip and the card to pick between the image and its placeholder.
func (e Event) HasImage() bool {
	return e.Image != ""
}
