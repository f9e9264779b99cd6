package messaging

import (
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vayerart/storefront/pkg/common/jsoncompat"
)

// ChangeTopic names a broadcast channel between storefront replicas.
type ChangeTopic string

const (
	// CatalogChangeTopic fires when the commerce catalog's collections
	// or metafields change (admin webhook), so every replica drops its
	// filter-option snapshot.
	CatalogChangeTopic ChangeTopic = "catalog_change"
	// TrackingTopic carries visitor events.
	TrackingTopic ChangeTopic = "tracking"
)

func topicName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

// DefineTopic declares the exchange and durable queue for a topic.
func DefineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	name := topicName(prefix, topic)
	if err := ch.ExchangeDeclare(
		name,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return err
	}
	return nil
}

func declareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := topicName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // server-named
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}
	if err := ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return nil, err
	}
	return ch.Consume(q.Name, "", false, false, false, false, nil)
}

// ListenToTopic consumes a topic in a background goroutine, acking each
// delivery the handler accepts. A handler error stops the consumer.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, handler func(amqp.Delivery) error) error {
	deliveries, err := declareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := handler(d); err != nil {
				log.Printf("Error processing message: %v", err)
				return
			}
			d.Ack(false)
		}
	}(deliveries)
	return nil
}

// SendChange publishes one JSON payload to a topic.
func SendChange[V any](c *amqp.Connection, prefix string, topic ChangeTopic, data V) error {
	bytes, err := jsoncompat.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := topicName(prefix, topic)
	return ch.Publish(
		name,
		name,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}
