package tracking

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vayerart/storefront/pkg/common"
	"github.com/vayerart/storefront/pkg/messaging"
)

// RabbitTracking publishes visitor events to the tracking topic,
// batched through a background queue so request handlers never wait on
// the broker.
type RabbitTracking struct {
	prefix     string
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
}

func NewRabbitTracking(url, prefix string) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := messaging.DefineTopic(ch, prefix, messaging.TrackingTopic); err != nil {
		conn.Close()
		return nil, err
	}

	rt := &RabbitTracking{prefix: prefix, connection: conn}
	rt.queue = common.NewQueueHandler(rt.publish, 32)
	return rt, nil
}

func (t *RabbitTracking) publish(events []any) {
	for _, event := range events {
		if err := messaging.SendChange(t.connection, t.prefix, messaging.TrackingTopic, event); err != nil {
			log.Printf("Error sending tracking event: %v", err)
			return
		}
	}
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

type baseEvent struct {
	EventId   string `json:"event_id"`
	SessionId string `json:"session_id"`
	Event     string `json:"event"`
}

func newBaseEvent(name, sessionId string) baseEvent {
	return baseEvent{EventId: uuid.NewString(), SessionId: sessionId, Event: name}
}

type sessionEvent struct {
	baseEvent
	UserAgent string `json:"user_agent,omitempty"`
	Ip        string `json:"ip,omitempty"`
	Language  string `json:"language,omitempty"`
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	t.queue.Add(sessionEvent{
		baseEvent: newBaseEvent("session", sessionId),
		UserAgent: r.UserAgent(),
		Ip:        ip,
		Language:  r.Header.Get("Accept-Language"),
	})
}

type listingEvent struct {
	baseEvent
	Query     string `json:"query"`
	Source    string `json:"source"`
	Delivered int    `json:"delivered"`
}

func (t *RabbitTracking) TrackListing(sessionId string, cacheKey string, source string, delivered int) {
	t.queue.Add(listingEvent{
		baseEvent: newBaseEvent("listing", sessionId),
		Query:     cacheKey,
		Source:    source,
		Delivered: delivered,
	})
}

type articleEvent struct {
	baseEvent
	Slug string `json:"slug"`
}

func (t *RabbitTracking) TrackArticleView(sessionId string, slug string) {
	t.queue.Add(articleEvent{
		baseEvent: newBaseEvent("article", sessionId),
		Slug:      slug,
	})
}
