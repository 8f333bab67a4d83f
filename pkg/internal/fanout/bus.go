package fanout

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Connection is the abstract live transport a subscriber sits behind. The
// bus only pushes events into it and watches for it going away; whether it
// is a websocket, SSE stream or a test double is the caller's business.
type Connection interface {
	Push(event Event) error
	Closed() <-chan struct{}
}

// Bus is a topic-based broadcast fan-out. Delivery is at-most-once and
// best-effort: each subscriber owns a buffered queue and a pump goroutine,
// so a slow connection drops events instead of stalling the publisher.
type Bus struct {
	mu        sync.RWMutex
	topics    map[string]map[uuid.UUID]*Subscription
	queueSize int
}

type Subscription struct {
	ID    uuid.UUID
	Topic string

	bus   *Bus
	queue chan Event
	done  chan struct{}
	once  sync.Once
}

const defaultQueueSize = 64

func NewBus() *Bus {
	return &Bus{
		topics:    make(map[string]map[uuid.UUID]*Subscription),
		queueSize: defaultQueueSize,
	}
}

// Subscribe registers the connection on a topic. The topic need not exist
// beforehand; the returned subscription stays live until Close is called
// or the connection reports closed.
func (b *Bus) Subscribe(topic string, conn Connection) *Subscription {
	sub := &Subscription{
		ID:    uuid.New(),
		Topic: topic,
		bus:   b,
		queue: make(chan Event, b.queueSize),
		done:  make(chan struct{}),
	}

	b.mu.Lock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[uuid.UUID]*Subscription)
		b.topics[topic] = subs
	}
	subs[sub.ID] = sub
	b.mu.Unlock()

	go sub.pump(conn)
	return sub
}

// Publish enqueues the event for every current subscriber of the topic.
// Publishing to a topic with no subscribers is a no-op. Within one topic,
// sequential publishes reach each subscriber in publish order; a full
// subscriber queue drops the event rather than blocking.
func (b *Bus) Publish(topic string, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.topics[topic] {
		select {
		case sub.queue <- event:
		default:
			log.Debug().Str("topic", topic).Str("event", event.Type).
				Msg("Dropping event for a slow subscriber...")
		}
	}
}

// Subscribers reports how many live subscriptions a topic currently has.
func (b *Bus) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[sub.Topic]
	if !ok {
		return
	}
	delete(subs, sub.ID)
	if len(subs) == 0 {
		delete(b.topics, sub.Topic)
	}
}

// Close deregisters the subscription. Safe to call multiple times and
// while publishes are in flight.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.remove(s)
		close(s.done)
	})
}

func (s *Subscription) pump(conn Connection) {
	for {
		select {
		case event := <-s.queue:
			if err := conn.Push(event); err != nil {
				s.Close()
				return
			}
		case <-conn.Closed():
			s.Close()
			return
		case <-s.done:
			return
		}
	}
}
