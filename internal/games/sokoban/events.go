package sokoban

import (
	"slices"
	"time"
)

// Move describes a character or crate relocation.
type Move struct {
	From Position
	To   Position
}

// Win carries the final counters of a solved level.
type Win struct {
	Elapsed time.Duration
	Moves   int
	Pushes  int
}

// Unsubscribe detaches a subscriber. Calling it more than once is harmless.
type Unsubscribe func()

type subscriber[T any] struct {
	id int
	fn func(T)
}

// topic is an ordered list of callbacks for one event kind.
type topic[T any] struct {
	nextID int
	subs   []subscriber[T]
}

func (t *topic[T]) subscribe(fn func(T)) Unsubscribe {
	t.nextID++
	id := t.nextID
	t.subs = append(t.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		t.subs = slices.DeleteFunc(t.subs, func(s subscriber[T]) bool { return s.id == id })
	}
}

// emit delivers v synchronously in subscription order. Delivery works on a
// snapshot so callbacks may subscribe or unsubscribe while it runs.
func (t *topic[T]) emit(v T) {
	if len(t.subs) == 0 {
		return
	}
	for _, s := range slices.Clone(t.subs) {
		s.fn(v)
	}
}

// Notifier broadcasts session events. Late subscribers get nothing until
// the next emission.
type Notifier struct {
	levelChanged   topic[int]
	characterMoved topic[Move]
	crateMoved     topic[Move]
	levelWon       topic[Win]
}

// OnLevelChanged subscribes to level selection; fn receives the new index.
func (n *Notifier) OnLevelChanged(fn func(index int)) Unsubscribe {
	return n.levelChanged.subscribe(fn)
}

// OnCharacterMoved subscribes to character relocations.
func (n *Notifier) OnCharacterMoved(fn func(Move)) Unsubscribe {
	return n.characterMoved.subscribe(fn)
}

// OnCrateMoved subscribes to crate pushes. It fires before the matching
// character move.
func (n *Notifier) OnCrateMoved(fn func(Move)) Unsubscribe {
	return n.crateMoved.subscribe(fn)
}

// OnLevelWon subscribes to the win latch.
func (n *Notifier) OnLevelWon(fn func(Win)) Unsubscribe {
	return n.levelWon.subscribe(fn)
}
