package fanout

import (
	"fmt"
	"strings"
	"time"
)

type Event struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

func NewEvent(eventType string, data any) Event {
	return Event{
		Type:      eventType,
		Data:      data,
		CreatedAt: time.Now(),
	}
}

// Topics are opaque strings; these helpers keep naming consistent between
// the publishing services and the live-connection endpoint.

const FeedTopic = "feed:global"

func PostTopic(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func UserTopic(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// IsUserTopic reports whether a topic is someone's personal mailbox.
func IsUserTopic(topic string) bool {
	return strings.HasPrefix(topic, "user:")
}
