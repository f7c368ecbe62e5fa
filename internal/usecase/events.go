package usecase

import (
	"context"

	"buildmart/internal/domain/model"
)

// 注文確定の通知先（Kafkaなど）。失敗しても注文は取り消さない。
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order model.Order, items []model.OrderItem) error
}
