package messaging

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/Aul-rhmn/merchant-order/internal/types"
)

type EventType string

const (
	OrderCreatedEvent EventType = "order.created"
	OrderDeletedEvent EventType = "order.deleted"
)

// OrderEvent is the message shape published on order lifecycle changes.
type OrderEvent struct {
	ID        string      `json:"id"`
	EventType EventType   `json:"eventType"`
	Order     types.Order `json:"order"`
	Timestamp time.Time   `json:"timestamp"`
}

type Publisher struct {
	client *RabbitMQClient
}

func NewPublisher(client *RabbitMQClient) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PublishOrderCreated(order types.Order) error {
	return p.publish(OrderCreatedEvent, order)
}

func (p *Publisher) PublishOrderDeleted(order types.Order) error {
	return p.publish(OrderDeletedEvent, order)
}

func (p *Publisher) publish(eventType EventType, order types.Order) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("no connection to RabbitMQ")
	}

	event := OrderEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Order:     order,
		Timestamp: time.Now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}

	routingKey := string(eventType)

	err = p.client.Channel().Publish(
		p.client.config.Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.Timestamp,
			Headers: amqp.Table{
				"order_id":   order.ID,
				"event_type": string(eventType),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("event publish error: %w", err)
	}

	log.Printf("Event published: %s -> OrderID=%s", routingKey, order.ID)
	return nil
}
