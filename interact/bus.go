package interact

import (
	"slices"

	"flowedit/geometry"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a pointer position in screen space and the button involved.
type PointerEvent struct {
	Screen geometry.ScreenPoint
	Button Button
}

// Listener receives document-level pointer events for the lifetime of a drag.
type Listener struct {
	Move   func(PointerEvent)
	Up     func(PointerEvent)
	Cancel func()
}

// PointerBus dispatches pointer moves and releases to every active drag,
// independent of what the pointer is over. It is driven from a single event
// loop and is not safe for concurrent use.
type PointerBus struct {
	subs []*Subscription
}

// NewPointerBus creates an empty bus.
func NewPointerBus() *PointerBus {
	return &PointerBus{}
}

// Subscribe registers l until the returned subscription is closed.
func (b *PointerBus) Subscribe(l Listener) *Subscription {
	s := &Subscription{bus: b, l: l}
	b.subs = append(b.subs, s)
	return s
}

// Active returns the number of live subscriptions.
func (b *PointerBus) Active() int {
	return len(b.subs)
}

// Move delivers a pointer move to every live subscription.
func (b *PointerBus) Move(ev PointerEvent) {
	for _, s := range slices.Clone(b.subs) {
		if !s.closed && s.l.Move != nil {
			s.l.Move(ev)
		}
	}
}

// Up delivers a pointer release, then closes every subscription that was
// live when the release was dispatched, whether or not its listener did.
func (b *PointerBus) Up(ev PointerEvent) {
	subs := slices.Clone(b.subs)
	for _, s := range subs {
		if !s.closed && s.l.Up != nil {
			s.l.Up(ev)
		}
	}
	for _, s := range subs {
		s.Close()
	}
}

// Cancel reports pointer loss (focus change, capture lost) and closes every
// live subscription.
func (b *PointerBus) Cancel() {
	subs := slices.Clone(b.subs)
	for _, s := range subs {
		if !s.closed && s.l.Cancel != nil {
			s.l.Cancel()
		}
	}
	for _, s := range subs {
		s.Close()
	}
}

// Subscription is a registered drag listener. Closing it more than once is harmless.
type Subscription struct {
	bus    *PointerBus
	l      Listener
	closed bool
}

// Close unregisters the listener.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.bus.subs = slices.DeleteFunc(s.bus.subs, func(o *Subscription) bool { return o == s })
}

// Closed reports whether the subscription has been released.
func (s *Subscription) Closed() bool {
	return s == nil || s.closed
}
