package planner

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event announces that the planner changed. It is emitted once per
// successful mutation and carries a frozen snapshot of the new state.
//
// Fields:
//  ID       – unique event id.
//  At       – when the mutation committed.
//  Cinemas, Movies, Tags – counts of the new state.
//  Snapshot – the new state, read only.
type Event struct {
	ID       string
	At       time.Time
	Cinemas  int
	Movies   int
	Tags     int
	Snapshot *Snapshot
}

// Listener receives change events. It runs synchronously on the mutating
// goroutine, so a listener that needs to do slow work should hand it off.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it again.
func (p *Planner) Subscribe(l Listener) (unsubscribe func()) {
	p.nextSub++
	id := p.nextSub
	p.subs = append(p.subs, subscription{id: id, fn: l})
	return func() {
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

func (p *Planner) emit() {
	snap := NewSnapshot(p)
	c, m, t := snap.Counts()
	ev := Event{
		ID:       uuid.NewString(),
		At:       p.now(),
		Cinemas:  c,
		Movies:   m,
		Tags:     t,
		Snapshot: snap,
	}
	for _, s := range append([]subscription(nil), p.subs...) {
		p.deliver(s, ev)
	}
}

// deliver isolates the mutation from a failing listener: the state already
// committed, so a panic is logged and the remaining listeners still run.
func (p *Planner) deliver(s subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("planner listener panicked",
				zap.Int("listener", s.id),
				zap.String("event_id", ev.ID),
				zap.Any("panic", r))
		}
	}()
	s.fn(ev)
}

// ChannelListener forwards events to ch without blocking. When ch is full the
// event is dropped; receivers that need every event should size the buffer
// or read the latest Snapshot instead.
func ChannelListener(ch chan<- Event) Listener {
	return func(ev Event) {
		select {
		case ch <- ev:
		default:
		}
	}
}
