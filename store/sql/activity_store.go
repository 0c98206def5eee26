package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-gateway/core"
)

// ActivityStore persists one row per external gateway operation.
type ActivityStore struct {
	db   *bun.DB
	repo repository.Repository[*activityEntryRecord]
}

func NewActivityStore(db *bun.DB) (*ActivityStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*activityEntryRecord](db, activityHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid activity repository wiring: %w", err)
		}
	}
	return &ActivityStore{db: db, repo: repo}, nil
}

func (s *ActivityStore) Record(ctx context.Context, entry core.ActivityEntry) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: activity store is not configured")
	}
	id := strings.TrimSpace(entry.ID)
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := entry.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	metadata := copyAnyMap(entry.Metadata)

	record := &activityEntryRecord{
		ID:         id,
		Operation:  strings.TrimSpace(entry.Operation),
		Backend:    strings.TrimSpace(entry.Backend),
		Status:     strings.TrimSpace(entry.Status),
		ErrorCode:  strings.TrimSpace(entry.ErrorCode),
		DurationMS: entry.DurationMS,
		Metadata:   metadata,
		CreatedAt:  createdAt,
	}
	if record.Operation == "" {
		record.Operation = "unknown"
	}
	if record.Status == "" {
		record.Status = "success"
	}

	_, err := s.repo.Create(ctx, record)
	return err
}

// ActivityFilter narrows a listing; zero values match everything.
type ActivityFilter struct {
	Operation string
	Backend   string
	Status    string
	From      *time.Time
	To        *time.Time
	Page      core.PageRequest
}

// ActivityPage is one page of recorded entries, newest first.
type ActivityPage struct {
	Items []core.ActivityEntry
	Page  int
	Limit int
	Total int
}

func (s *ActivityStore) List(ctx context.Context, filter ActivityFilter) (ActivityPage, error) {
	if s == nil || s.repo == nil {
		return ActivityPage{}, fmt.Errorf("sqlstore: activity store is not configured")
	}
	page := filter.Page.Normalize()

	selectors := []repository.SelectCriteria{
		repository.OrderBy("created_at DESC"),
		repository.SelectPaginate(page.Limit, page.Offset()),
	}
	if operation := strings.TrimSpace(filter.Operation); operation != "" {
		selectors = append(selectors, repository.SelectBy("operation", "=", operation))
	}
	if backend := strings.TrimSpace(filter.Backend); backend != "" {
		selectors = append(selectors, repository.SelectBy("backend", "=", backend))
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		selectors = append(selectors, repository.SelectBy("status", "=", status))
	}
	if filter.From != nil {
		selectors = append(selectors, repository.SelectByTimetz("created_at", ">=", filter.From.UTC()))
	}
	if filter.To != nil {
		selectors = append(selectors, repository.SelectByTimetz("created_at", "<=", filter.To.UTC()))
	}

	records, total, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return ActivityPage{}, err
	}
	items := make([]core.ActivityEntry, 0, len(records))
	for _, record := range records {
		items = append(items, activityRecordToDomain(record))
	}
	return ActivityPage{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: total,
	}, nil
}

// Prune removes entries older than the cutoff and returns the count.
func (s *ActivityStore) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: activity store is not configured")
	}
	if olderThan <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.NewDelete().
		Model((*activityEntryRecord)(nil)).
		Where("created_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

func activityRecordToDomain(record *activityEntryRecord) core.ActivityEntry {
	if record == nil {
		return core.ActivityEntry{}
	}
	return core.ActivityEntry{
		ID:         record.ID,
		Operation:  record.Operation,
		Backend:    record.Backend,
		Status:     record.Status,
		ErrorCode:  record.ErrorCode,
		DurationMS: record.DurationMS,
		Metadata:   copyAnyMap(record.Metadata),
		CreatedAt:  record.CreatedAt,
	}
}

var _ core.ActivitySink = (*ActivityStore)(nil)
