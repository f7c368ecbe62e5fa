package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"buildmart/internal/domain/model"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const OrderCreatedType = "order.created"

type OrderCreatedLine struct {
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	RentalDays int64           `json:"rental_days,omitempty"`
	StartDate  *time.Time      `json:"start_date,omitempty"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// 注文確定イベント（倉庫・配送側が購読する）
type OrderCreated struct {
	Type        string             `json:"type"`
	OrderID     string             `json:"order_id"`
	UserID      string             `json:"user_id"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"status"`
	Items       []OrderCreatedLine `json:"items"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func NewOrderCreated(order model.Order, items []model.OrderItem, at time.Time) OrderCreated {
	lines := make([]OrderCreatedLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderCreatedLine{
			ProductID:  it.CatalogItemID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			RentalDays: it.RentalDays,
			StartDate:  it.StartDate,
			EndDate:    it.EndDate,
			Subtotal:   it.Subtotal,
		})
	}
	return OrderCreated{
		Type:        OrderCreatedType,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		Items:       lines,
		OccurredAt:  at.UTC(),
	}
}

// kafka.Writerのうち使う部分だけ
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	w   messageWriter
	now func() time.Time
}

// 同じ注文のイベントは同じパーティションに入るようにキーで振り分ける
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
	return newKafkaPublisher(w, time.Now)
}

func newKafkaPublisher(w messageWriter, now func() time.Time) *KafkaPublisher {
	return &KafkaPublisher{w: w, now: now}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order model.Order, items []model.OrderItem) error {
	data, err := json.Marshal(NewOrderCreated(order, items, p.now()))
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(OrderCreatedType)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// ブローカー未設定のとき用
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(ctx context.Context, order model.Order, items []model.OrderItem) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
