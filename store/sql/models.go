package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type activityEntryRecord struct {
	bun.BaseModel `bun:"table:gateway_activity_entries,alias:gae"`

	ID         string         `bun:"id,pk"`
	Operation  string         `bun:"operation,notnull"`
	Backend    string         `bun:"backend,notnull"`
	Status     string         `bun:"status,notnull"`
	ErrorCode  string         `bun:"error_code"`
	DurationMS int64          `bun:"duration_ms,notnull"`
	Metadata   map[string]any `bun:"metadata,type:jsonb,notnull"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type idempotencyKeyRecord struct {
	bun.BaseModel `bun:"table:gateway_idempotency_keys,alias:gik"`

	ID        string    `bun:"id,pk"`
	Key       string    `bun:"idempotency_key,notnull,unique"`
	OrderID   int64     `bun:"order_id,notnull"`
	Payload   []byte    `bun:"payload,type:jsonb,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
