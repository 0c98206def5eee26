package memory

import (
	"context"
	"fmt"

	"github.com/goliatone/go-gateway/core"
)

// OrderRepository stores committed orders in memory.
type OrderRepository struct {
	table *Table[core.Order]
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{table: NewTable[core.Order]()}
}

// CommitOrder persists a verified order and assigns its identifier.
func (r *OrderRepository) CommitOrder(_ context.Context, order core.Order) (core.Order, error) {
	committed := r.table.Insert(func(id int64) core.Order {
		order.ID = id
		return order
	})
	return committed, nil
}

func (r *OrderRepository) Get(_ context.Context, id int64) (core.Order, error) {
	order, ok := r.table.Get(id)
	if !ok {
		return core.Order{}, notFoundError(
			fmt.Sprintf("order %d not found", id),
			map[string]any{"order_id": id},
		)
	}
	return order, nil
}

// ListByUser returns the user's orders in insertion order.
func (r *OrderRepository) ListByUser(_ context.Context, userID int64) []core.Order {
	all := r.table.List()
	out := make([]core.Order, 0, len(all))
	for _, order := range all {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out
}

var _ core.OrderCommitter = (*OrderRepository)(nil)
