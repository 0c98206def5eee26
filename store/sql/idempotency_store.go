package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-gateway/core"
)

// IdempotencyStore maps caller-supplied idempotency keys to committed
// orders. The committed order is stored as a JSON payload so a replayed
// request returns exactly what the first request returned.
type IdempotencyStore struct {
	db   *bun.DB
	repo repository.Repository[*idempotencyKeyRecord]
}

func NewIdempotencyStore(db *bun.DB) (*IdempotencyStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*idempotencyKeyRecord](db, idempotencyHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid idempotency repository wiring: %w", err)
		}
	}
	return &IdempotencyStore{db: db, repo: repo}, nil
}

func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (core.Order, bool, error) {
	if s == nil || s.repo == nil {
		return core.Order{}, false, fmt.Errorf("sqlstore: idempotency store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return core.Order{}, false, nil
	}

	records, _, err := s.repo.List(ctx,
		repository.SelectBy("idempotency_key", "=", key),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.Order{}, false, err
	}
	if len(records) == 0 {
		return core.Order{}, false, nil
	}

	var order core.Order
	if err := json.Unmarshal(records[0].Payload, &order); err != nil {
		return core.Order{}, false, fmt.Errorf("sqlstore: decode idempotency payload: %w", err)
	}
	return order, true, nil
}

func (s *IdempotencyStore) Record(ctx context.Context, key string, order core.Order) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: idempotency store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("sqlstore: idempotency key is required")
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("sqlstore: encode idempotency payload: %w", err)
	}
	record := &idempotencyKeyRecord{
		ID:        uuid.NewString(),
		Key:       key,
		OrderID:   order.ID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.repo.Create(ctx, record); err != nil {
		// A concurrent request may have won the insert; the stored row is
		// authoritative either way.
		if existing, found, lookupErr := s.Lookup(ctx, key); lookupErr == nil && found && existing.ID == order.ID {
			return nil
		}
		return err
	}
	return nil
}

// Prune removes keys older than the cutoff and returns the count.
func (s *IdempotencyStore) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: idempotency store is not configured")
	}
	if olderThan <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.NewDelete().
		Model((*idempotencyKeyRecord)(nil)).
		Where("created_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

var _ core.IdempotencyLedger = (*IdempotencyStore)(nil)
