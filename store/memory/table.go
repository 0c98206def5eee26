package memory

import "sync"

// Table is an insertion-ordered in-memory table with monotonically
// increasing int64 identifiers. Identifiers start at 1 and are never
// reused, even after deletes.
type Table[T any] struct {
	mu     sync.RWMutex
	nextID int64
	ids    []int64
	rows   map[int64]T
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{
		nextID: 1,
		rows:   map[int64]T{},
	}
}

// Insert assigns the next identifier, builds the row with it, and stores
// the result.
func (t *Table[T]) Insert(build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	row := build(id)
	t.ids = append(t.ids, id)
	t.rows[id] = row
	return row
}

func (t *Table[T]) Get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// Update applies the mutation under the table lock.
func (t *Table[T]) Update(id int64, apply func(T) T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	row = apply(row)
	t.rows[id] = row
	return row, true
}

func (t *Table[T]) Delete(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, existing := range t.ids {
		if existing == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return true
}

// List returns every row in insertion order.
func (t *Table[T]) List() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}
