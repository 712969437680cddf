package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange = "inventory_events"

	RoutingKeyOversell     = "inventory.oversell"
	RoutingKeySalesApplied = "inventory.sales_applied"

	SalesSyncExchange   = "sales_sync"
	SalesSyncQueue      = "sales_sync_queue"
	SalesSyncRoutingKey = "sales.synced"
)

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// OversellMessage is emitted after a sale committed with fewer tracked units
// than it sold.
type OversellMessage struct {
	SaleID    uint64       `json:"sale_id"`
	Sku       model.SkuKey `json:"sku"`
	Qty       int64        `json:"qty"`
	Shortfall int64        `json:"shortfall"`
	At        time.Time    `json:"at"`
}

type SalesAppliedMessage struct {
	RunID     string    `json:"run_id"`
	Found     int       `json:"found"`
	Processed int       `json:"processed"`
	Oversold  int       `json:"oversold"`
	Failed    int       `json:"failed"`
	At        time.Time `json:"at"`
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		EventsExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-delete
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: channel}, nil
}

func (p *Publisher) publish(routingKey string, msg interface{}) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.channel.Publish(
		EventsExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// PublishOversell is a no-op on a nil publisher.
func (p *Publisher) PublishOversell(msg OversellMessage) error {
	if p == nil || p.channel == nil {
		return nil
	}
	return p.publish(RoutingKeyOversell, msg)
}

// PublishSalesApplied is a no-op on a nil publisher.
func (p *Publisher) PublishSalesApplied(msg SalesAppliedMessage) error {
	if p == nil || p.channel == nil {
		return nil
	}
	return p.publish(RoutingKeySalesApplied, msg)
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
