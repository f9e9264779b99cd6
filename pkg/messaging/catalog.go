package messaging

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vayerart/storefront/pkg/common/jsoncompat"
)

// CatalogChange is the payload broadcast when the commerce catalog's
// facet structure may have moved under us.
type CatalogChange struct {
	Reason string `json:"reason,omitempty"`
}

// Invalidator is anything holding a discoverable snapshot that can be
// dropped.
type Invalidator interface {
	Invalidate()
}

// ListenForCatalogChanges drops the catalog snapshot whenever another
// replica (or the admin webhook relay) announces a change.
func ListenForCatalogChanges(conn *amqp.Connection, prefix string, target Invalidator) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	return ListenToTopic(ch, prefix, CatalogChangeTopic, func(d amqp.Delivery) error {
		var change CatalogChange
		if err := jsoncompat.Unmarshal(d.Body, &change); err != nil {
			log.Printf("Failed to unmarshal catalog change message %v", err)
			return nil
		}
		log.Printf("Got catalog change (%s), dropping filter option snapshot", change.Reason)
		target.Invalidate()
		return nil
	})
}

// SendCatalogChange announces a catalog change to all replicas.
func SendCatalogChange(conn *amqp.Connection, prefix string, reason string) error {
	return SendChange(conn, prefix, CatalogChangeTopic, CatalogChange{Reason: reason})
}

// CatalogPublisher is the publish half of the catalog-change topic,
// bound to an established connection. The webhook relay endpoint uses
// it to broadcast upstream catalog changes.
type CatalogPublisher struct {
	conn   *amqp.Connection
	prefix string
}

func NewCatalogPublisher(conn *amqp.Connection, prefix string) *CatalogPublisher {
	return &CatalogPublisher{conn: conn, prefix: prefix}
}

func (p *CatalogPublisher) SendCatalogChange(reason string) error {
	return SendCatalogChange(p.conn, p.prefix, reason)
}
