package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Streaming struct {
	bus *fanout.Bus
}

func MapStreaming(app *fiber.App, bus *fanout.Bus) {
	streaming := &Streaming{bus: bus}

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(streaming.handle))
}

// clientFrame is what subscribers send over the socket to manage their
// topic set.
type clientFrame struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

type serverFrame struct {
	Topic string       `json:"topic"`
	Event fanout.Event `json:"event"`
}

// wsConn adapts one websocket to fanout.Connection. Pushes from pump
// goroutines of different topics share the write mutex; gorilla-style
// sockets allow a single concurrent writer only.
type wsConn struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed chan struct{}
}

func (w *wsConn) pushTopic(topic string, event fanout.Event) error {
	payload, err := json.Marshal(serverFrame{Topic: topic, Event: event})
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func (w *wsConn) Closed() <-chan struct{} {
	return w.closed
}

// topicConn narrows a shared wsConn to one topic so delivered events
// carry the topic they came from.
type topicConn struct {
	topic string
	conn  *wsConn
}

func (t *topicConn) Push(event fanout.Event) error {
	return t.conn.pushTopic(t.topic, event)
}

func (t *topicConn) Closed() <-chan struct{} {
	return t.conn.Closed()
}

func (s *Streaming) handle(raw *websocket.Conn) {
	conn := &wsConn{conn: raw, closed: make(chan struct{})}

	var accountID *uint
	if user, ok := raw.Locals("user").(models.Account); ok {
		id := user.ID
		accountID = &id

		// Signed-in subscribers always hear their own mailbox.
		sub := s.bus.Subscribe(fanout.UserTopic(id), &topicConn{topic: fanout.UserTopic(id), conn: conn})
		defer sub.Close()
	}

	subscriptions := make(map[string]*fanout.Subscription)
	defer func() {
		close(conn.closed)
		for _, sub := range subscriptions {
			sub.Close()
		}
	}()

	for {
		_, payload, err := raw.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			log.Debug().Err(err).Msg("Dropping a malformed streaming frame...")
			continue
		}
		if !topicAllowed(frame.Topic, accountID) {
			continue
		}

		switch frame.Action {
		case "subscribe":
			if _, ok := subscriptions[frame.Topic]; ok {
				continue
			}
			subscriptions[frame.Topic] = s.bus.Subscribe(frame.Topic, &topicConn{topic: frame.Topic, conn: conn})
		case "unsubscribe":
			if sub, ok := subscriptions[frame.Topic]; ok {
				sub.Close()
				delete(subscriptions, frame.Topic)
			}
		}
	}
}

// topicAllowed keeps personal topics personal; feed and post topics are
// open to anyone who can hold a socket.
func topicAllowed(topic string, accountID *uint) bool {
	if len(topic) == 0 {
		return false
	}
	if accountID != nil && topic == fanout.UserTopic(*accountID) {
		return true
	}
	return !fanout.IsUserTopic(topic)
}
