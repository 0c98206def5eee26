package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-gateway/core"
)

// UserRepository stores users in memory. Emails are unique across live
// rows; the index survives updates and deletes.
type UserRepository struct {
	table *Table[core.User]

	mu     sync.Mutex
	emails map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		table:  NewTable[core.User](),
		emails: map[string]int64{},
	}
}

func (r *UserRepository) Create(_ context.Context, user core.User) (core.User, error) {
	email := normalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.emails[email]; taken {
		return core.User{}, conflictError(
			fmt.Sprintf("user with email %q already exists", user.Email),
			map[string]any{"email": user.Email},
		)
	}
	created := r.table.Insert(func(id int64) core.User {
		user.ID = id
		return user
	})
	r.emails[email] = created.ID
	return created, nil
}

func (r *UserRepository) Get(_ context.Context, id int64) (core.User, error) {
	user, ok := r.table.Get(id)
	if !ok {
		return core.User{}, notFoundError(
			fmt.Sprintf("user %d not found", id),
			map[string]any{"user_id": id},
		)
	}
	return user, nil
}

func (r *UserRepository) Update(_ context.Context, id int64, apply func(core.User) core.User) (core.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.table.Get(id)
	if !ok {
		return core.User{}, notFoundError(
			fmt.Sprintf("user %d not found", id),
			map[string]any{"user_id": id},
		)
	}
	next := apply(current)
	next.ID = id

	oldEmail := normalizeEmail(current.Email)
	newEmail := normalizeEmail(next.Email)
	if newEmail != oldEmail {
		if owner, taken := r.emails[newEmail]; taken && owner != id {
			return core.User{}, conflictError(
				fmt.Sprintf("user with email %q already exists", next.Email),
				map[string]any{"email": next.Email},
			)
		}
	}

	updated, _ := r.table.Update(id, func(core.User) core.User {
		return next
	})
	if newEmail != oldEmail {
		delete(r.emails, oldEmail)
		r.emails[newEmail] = id
	}
	return updated, nil
}

// Delete reports whether a row was removed; deleting a missing user is not
// an error.
func (r *UserRepository) Delete(_ context.Context, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.table.Get(id)
	if !ok {
		return false
	}
	if !r.table.Delete(id) {
		return false
	}
	delete(r.emails, normalizeEmail(user.Email))
	return true
}

// List returns the requested page in insertion order along with the total
// row count before paging.
func (r *UserRepository) List(_ context.Context, page core.PageRequest) ([]core.User, int) {
	users := r.table.List()
	start, end := core.PageSlice(len(users), page)
	return users[start:end], len(users)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
