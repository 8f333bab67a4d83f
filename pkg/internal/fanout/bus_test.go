package fanout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConn struct {
	events chan Event
	closed chan struct{}
}

func newTestConn(buffer int) *testConn {
	return &testConn{
		events: make(chan Event, buffer),
		closed: make(chan struct{}),
	}
}

func (c *testConn) Push(event Event) error {
	c.events <- event
	return nil
}

func (c *testConn) Closed() <-chan struct{} {
	return c.closed
}

func (c *testConn) next(t *testing.T) Event {
	t.Helper()
	select {
	case event := <-c.events:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for an event")
		return Event{}
	}
}

func TestBusDeliversToTopicSubscribers(t *testing.T) {
	bus := NewBus()

	conn := newTestConn(8)
	sub := bus.Subscribe(FeedTopic, conn)
	defer sub.Close()

	other := newTestConn(8)
	otherSub := bus.Subscribe(PostTopic(1), other)
	defer otherSub.Close()

	bus.Publish(FeedTopic, NewEvent("posts.created", map[string]any{"id": 1}))

	event := conn.next(t)
	assert.Equal(t, "posts.created", event.Type)

	// The other topic heard nothing.
	select {
	case <-other.events:
		t.Fatal("event leaked across topics")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBusPerTopicOrdering(t *testing.T) {
	bus := NewBus()

	conn := newTestConn(16)
	sub := bus.Subscribe(FeedTopic, conn)
	defer sub.Close()

	for n := 0; n < 10; n++ {
		bus.Publish(FeedTopic, NewEvent("tick", n))
	}
	for n := 0; n < 10; n++ {
		event := conn.next(t)
		assert.Equal(t, n, event.Data)
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	// Must not panic or block.
	bus.Publish("post:42", NewEvent("reactions.updated", nil))
	assert.Zero(t, bus.Subscribers("post:42"))
}

func TestBusSlowSubscriberDoesNotStallOthers(t *testing.T) {
	bus := NewBus()

	// Unbuffered and never read: the pump blocks on the first push and
	// its queue fills up, after which publishes drop for it alone.
	slow := newTestConn(0)
	slowSub := bus.Subscribe(FeedTopic, slow)
	defer slowSub.Close()

	fast := newTestConn(256)
	fastSub := bus.Subscribe(FeedTopic, fast)
	defer fastSub.Close()

	for n := 0; n < defaultQueueSize*2; n++ {
		bus.Publish(FeedTopic, NewEvent("tick", n))
	}
	for n := 0; n < defaultQueueSize*2; n++ {
		event := fast.next(t)
		assert.Equal(t, n, event.Data)
	}
}

func TestSubscriptionClose(t *testing.T) {
	bus := NewBus()

	conn := newTestConn(8)
	sub := bus.Subscribe(FeedTopic, conn)
	require.Equal(t, 1, bus.Subscribers(FeedTopic))

	sub.Close()
	sub.Close() // idempotent
	assert.Zero(t, bus.Subscribers(FeedTopic))

	// Published events after close no longer reach the connection.
	bus.Publish(FeedTopic, NewEvent("tick", nil))
	select {
	case <-conn.events:
		t.Fatal("received an event after close")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnectionCloseDetaches(t *testing.T) {
	bus := NewBus()

	conn := newTestConn(8)
	sub := bus.Subscribe(FeedTopic, conn)
	defer sub.Close()

	close(conn.closed)
	assert.Eventually(t, func() bool {
		return bus.Subscribers(FeedTopic) == 0
	}, time.Second, 10*time.Millisecond)
}
