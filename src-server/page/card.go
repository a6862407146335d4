package page

import "evboard/src-server/model"

// EventCard is what the feed renders for one event.
type EventCard struct {
	model.Event

	onRegister func()
}

func NewEventCard(event model.Event, onRegister func()) EventCard {
	return EventCard{Event: event, onRegister: onRegister}
}

func (c EventCard) Expired() bool {
	return c.IsExpired
}

func (c EventCard) CanRegister() bool {
	return !c.IsExpired && c.onRegister != nil
}

func (c EventCard) ButtonLabel() string {
	if c.IsExpired {
		return "Expired"
	}
	return "Register"
}

// comment box is cosmetic, nothing submits it
func (c EventCard) CommentPlaceholder() string {
	return "Write a comment..."
}

// Register runs the owner's callback; an expired card does nothing and reports false.
func (c EventCard) Register() bool {
	if !c.CanRegister() {
		return false
	}
	c.onRegister()
	return true
}
