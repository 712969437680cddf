package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// SalesSyncedMessage is published by the marketplace sync after it wrote new
// sales_log rows.
type SalesSyncedMessage struct {
	Source string    `json:"source"`
	Count  int       `json:"count"`
	Since  time.Time `json:"since"`
	At     time.Time `json:"at"`
}

// Consumer triggers a sales apply run whenever the sync reports new sales.
type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	apiURL  string
	apiKey  string
	client  *http.Client
}

func NewConsumer(host string, port int, user, password, apiURL, apiKey string) (*Consumer, error) {
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
		SalesSyncExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	_, err = channel.QueueDeclare(
		SalesSyncQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	err = channel.QueueBind(
		SalesSyncQueue,
		SalesSyncRoutingKey,
		SalesSyncExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		apiURL:  apiURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	// one apply run at a time
	err := c.channel.Qos(1, 0, false)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		SalesSyncQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	var synced SalesSyncedMessage
	if err := json.Unmarshal(msg.Body, &synced); err != nil {
		logger.Warn("[Consumer] drop malformed sales sync message", zap.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}

	if err := c.callApplySalesAPI(ctx, synced); err != nil {
		logger.Error("[Consumer] apply sales", zap.String("source", synced.Source), zap.String("error", err.Error()))
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
	logger.Info("[Consumer] sales apply triggered", zap.String("source", synced.Source), zap.Int("count", synced.Count))
}

// callApplySalesAPI goes through the HTTP surface so the run takes the same
// writer lock and auth as a manual trigger.
func (c *Consumer) callApplySalesAPI(ctx context.Context, synced SalesSyncedMessage) error {
	url := fmt.Sprintf("%s/internal/v1/sales/apply", c.apiURL)

	body, err := json.Marshal(map[string]interface{}{"since": synced.Since})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Service", "sales-sync-consumer")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	// 4xx, including 409 busy, is acked; the next sync message retriggers
	if resp.StatusCode < 200 || resp.StatusCode >= 500 {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
