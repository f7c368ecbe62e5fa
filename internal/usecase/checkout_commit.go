package usecase

import (
	"context"
	"errors"
	"fmt"

	"buildmart/internal/domain/model"
	"buildmart/internal/logging"
	repo "buildmart/internal/repository"
)

// OrderCommitter は注文・明細・在庫減算をまとめて確定する。
// 途中で失敗したら何も残さない。
type OrderCommitter interface {
	Commit(ctx context.Context, order model.Order, lines []model.OrderItem) error
}

// TxCommitter は1トランザクションで書き込む（既定）
type TxCommitter struct {
	tx repo.TransactionManager
}

func NewTxCommitter(tx repo.TransactionManager) *TxCommitter {
	return &TxCommitter{tx: tx}
}

func (c *TxCommitter) Commit(ctx context.Context, order model.Order, lines []model.OrderItem) error {
	return c.tx.WithinTx(ctx, func(r repo.Repos) error {
		if err := r.Orders().Create(ctx, order); err != nil {
			return WrapError(KindOrderCreationFailed, "Failed to create order", err)
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, lines); err != nil {
			return WrapError(KindOrderItemsFailed, "Failed to create order items", err)
		}
		for _, l := range lines {
			if err := decreaseStock(ctx, r, l); err != nil {
				return err
			}
		}
		return nil
	})
}

// CompensatingCommitter はトランザクションを使わず順に書き込み、
// 失敗したら書いた分を逆順に取り消す。
type CompensatingCommitter struct {
	repos repo.Repos
}

func NewCompensatingCommitter(repos repo.Repos) *CompensatingCommitter {
	return &CompensatingCommitter{repos: repos}
}

func (c *CompensatingCommitter) Commit(ctx context.Context, order model.Order, lines []model.OrderItem) error {
	if err := c.repos.Orders().Create(ctx, order); err != nil {
		return WrapError(KindOrderCreationFailed, "Failed to create order", err)
	}

	if err := c.repos.OrderItems().CreateBulk(ctx, order.ID, lines); err != nil {
		c.undo(ctx, order.ID, nil, false)
		return WrapError(KindOrderItemsFailed, "Failed to create order items", err)
	}

	decremented := make([]model.OrderItem, 0, len(lines))
	for _, l := range lines {
		if err := decreaseStock(ctx, c.repos, l); err != nil {
			c.undo(ctx, order.ID, decremented, true)
			return err
		}
		decremented = append(decremented, l)
	}
	return nil
}

// 補償の失敗はログだけ出して元のエラーを返す
func (c *CompensatingCommitter) undo(ctx context.Context, orderID string, decremented []model.OrderItem, linesWritten bool) {
	// リクエストが切れても取り消しは最後までやる
	ctx = context.WithoutCancel(ctx)
	log := logging.FromContext(ctx).With("order_id", orderID)

	for i := len(decremented) - 1; i >= 0; i-- {
		l := decremented[i]
		if err := c.repos.Inventory().IncreaseStock(ctx, l.CatalogItemID, l.Quantity); err != nil {
			log.Error("compensation: restore stock failed", "item_id", l.CatalogItemID, "quantity", l.Quantity, "error", err)
		}
	}
	if linesWritten {
		if err := c.repos.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			log.Error("compensation: delete order items failed", "error", err)
		}
	}
	if err := c.repos.Orders().Delete(ctx, orderID); err != nil {
		log.Error("compensation: delete order failed", "error", err)
	}
}

// 在庫が足りるときだけ減らす。負けたら在庫不足として返す。
func decreaseStock(ctx context.Context, r repo.Repos, l model.OrderItem) error {
	ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.CatalogItemID, l.Quantity)
	if err != nil {
		return WrapError(KindInventoryUpdateFailed, "Failed to update inventory", err)
	}
	if ok {
		return nil
	}

	//他の注文に先を越された。メッセージ用に今の在庫を読む
	msg := fmt.Sprintf("Insufficient stock for product %s", l.CatalogItemID)
	item, err := r.Catalog().FindByID(ctx, l.CatalogItemID)
	if err == nil {
		msg = fmt.Sprintf("Insufficient stock for product %s. Available: %d, requested: %d", l.CatalogItemID, item.StockQuantity, l.Quantity)
	} else if !errors.Is(err, repo.ErrNotFound) {
		logging.FromContext(ctx).Warn("reload stock failed", "item_id", l.CatalogItemID, "error", err)
	}
	return NewError(KindInsufficientStock, msg)
}
