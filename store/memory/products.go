package memory

import (
	"context"
	"fmt"

	"github.com/goliatone/go-gateway/core"
)

// ProductRepository stores products in memory.
type ProductRepository struct {
	table *Table[core.Product]
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{table: NewTable[core.Product]()}
}

func (r *ProductRepository) Create(_ context.Context, product core.Product) (core.Product, error) {
	created := r.table.Insert(func(id int64) core.Product {
		product.ID = id
		return product
	})
	return created, nil
}

func (r *ProductRepository) Get(_ context.Context, id int64) (core.Product, error) {
	product, ok := r.table.Get(id)
	if !ok {
		return core.Product{}, notFoundError(
			fmt.Sprintf("product %d not found", id),
			map[string]any{"product_id": id},
		)
	}
	return product, nil
}

func (r *ProductRepository) Update(_ context.Context, id int64, apply func(core.Product) core.Product) (core.Product, error) {
	updated, ok := r.table.Update(id, func(current core.Product) core.Product {
		next := apply(current)
		next.ID = id
		return next
	})
	if !ok {
		return core.Product{}, notFoundError(
			fmt.Sprintf("product %d not found", id),
			map[string]any{"product_id": id},
		)
	}
	return updated, nil
}

func (r *ProductRepository) Delete(_ context.Context, id int64) bool {
	return r.table.Delete(id)
}

func (r *ProductRepository) List(_ context.Context, page core.PageRequest) ([]core.Product, int) {
	products := r.table.List()
	start, end := core.PageSlice(len(products), page)
	return products[start:end], len(products)
}

func (r *ProductRepository) ListByUser(_ context.Context, userID int64) []core.Product {
	all := r.table.List()
	out := make([]core.Product, 0, len(all))
	for _, product := range all {
		if product.UserID == userID {
			out = append(out, product)
		}
	}
	return out
}
