// Package bus is the in-process publish/subscribe fan-out. A single actor
// goroutine owns the subscriber registry; publishers and subscribers talk to
// it only through channel handoffs, so nothing outside the actor touches
// shared state.
package bus

import (
	"context"
	"log"

	"github.com/jorget15/UnityAid/types"
)

const (
	publishBuffer    = 64
	subscriberBuffer = 16
)

// Subscriber receives events on C until it is unsubscribed or the bus shuts
// down, at which point C is closed.
type Subscriber struct {
	C chan types.Event
}

type Bus struct {
	name  string
	pub   chan types.Event
	sub   chan *Subscriber
	unsub chan *Subscriber
	done  chan struct{}
}

func New(name string) *Bus {
	return &Bus{
		name:  name,
		pub:   make(chan types.Event, publishBuffer),
		sub:   make(chan *Subscriber),
		unsub: make(chan *Subscriber),
		done:  make(chan struct{}),
	}
}

// Run owns the subscriber set until ctx is cancelled. Delivery is
// best-effort, at most once per live subscriber: a full subscriber buffer
// drops that delivery only and never delays the others.
func (b *Bus) Run(ctx context.Context) {
	subscribers := make(map[*Subscriber]struct{})
	defer func() {
		close(b.done)
		for s := range subscribers {
			close(s.C)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-b.sub:
			subscribers[s] = struct{}{}
		case s := <-b.unsub:
			if _, ok := subscribers[s]; ok {
				delete(subscribers, s)
				close(s.C)
			}
		case e := <-b.pub:
			for s := range subscribers {
				select {
				case s.C <- e:
				default:
					log.Printf("bus %s: dropping %s event for slow subscriber", b.name, e.EventType())
				}
			}
		}
	}
}

// Subscribe registers a new subscriber. After shutdown the returned
// subscriber's channel is closed and receives nothing.
func (b *Bus) Subscribe() *Subscriber {
	s := &Subscriber{C: make(chan types.Event, subscriberBuffer)}
	select {
	case b.sub <- s:
	case <-b.done:
		close(s.C)
	}
	return s
}

// Unsubscribe releases the subscription slot; the subscriber's channel is
// closed by the actor.
func (b *Bus) Unsubscribe(s *Subscriber) {
	select {
	case b.unsub <- s:
	case <-b.done:
	}
}

// Publish hands the event to the actor without ever blocking the caller.
// When the actor is overwhelmed the event is dropped and logged.
func (b *Bus) Publish(e types.Event) {
	select {
	case b.pub <- e:
	case <-b.done:
	default:
		log.Printf("bus %s: publish queue full, dropping %s event", b.name, e.EventType())
	}
}
