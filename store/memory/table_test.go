package memory

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-gateway/core"
)

func TestTableIdentifiersAreMonotonicAndNeverReused(t *testing.T) {
	table := NewTable[string]()

	first := table.Insert(func(id int64) string { return "a" })
	_ = first
	second := table.Insert(func(id int64) string { return "b" })
	_ = second

	if !table.Delete(2) {
		t.Fatalf("expected delete of row 2")
	}
	var thirdID int64
	table.Insert(func(id int64) string {
		thirdID = id
		return "c"
	})
	if thirdID != 3 {
		t.Fatalf("expected id 3 after delete, got %d", thirdID)
	}
}

func TestTableListKeepsInsertionOrder(t *testing.T) {
	table := NewTable[string]()
	for _, value := range []string{"a", "b", "c", "d"} {
		v := value
		table.Insert(func(int64) string { return v })
	}
	table.Delete(2)

	got := table.List()
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if table.Len() != 3 {
		t.Fatalf("expected len 3, got %d", table.Len())
	}
}

func TestTableUpdateMissingRow(t *testing.T) {
	table := NewTable[int]()
	if _, ok := table.Update(1, func(v int) int { return v + 1 }); ok {
		t.Fatalf("expected update of missing row to fail")
	}
	if table.Delete(1) {
		t.Fatalf("expected delete of missing row to fail")
	}
}

func TestUserRepositoryEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	first, err := repo.Create(ctx, core.User{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("expected id 1, got %d", first.ID)
	}

	_, err = repo.Create(ctx, core.User{Name: "Imposter", Email: "ADA@example.com"})
	if err == nil {
		t.Fatalf("expected duplicate email rejection")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.Category != goerrors.CategoryConflict {
		t.Fatalf("expected conflict category, got %q", richErr.Category)
	}

	// Deleting frees the email for reuse.
	if !repo.Delete(ctx, first.ID) {
		t.Fatalf("expected delete of user %d", first.ID)
	}
	if _, err := repo.Create(ctx, core.User{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("expected email available after delete, got %v", err)
	}
}

func TestUserRepositoryUpdateKeepsEmailIndex(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	ada, err := repo.Create(ctx, core.User{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("create ada: %v", err)
	}
	if _, err := repo.Create(ctx, core.User{Name: "Grace", Email: "grace@example.com"}); err != nil {
		t.Fatalf("create grace: %v", err)
	}

	// Taking another user's email is a conflict.
	_, err = repo.Update(ctx, ada.ID, func(user core.User) core.User {
		user.Email = "grace@example.com"
		return user
	})
	if err == nil {
		t.Fatalf("expected conflict on email takeover")
	}

	// Moving to a fresh email releases the old one.
	if _, err := repo.Update(ctx, ada.ID, func(user core.User) core.User {
		user.Email = "ada@new.example.com"
		return user
	}); err != nil {
		t.Fatalf("update to fresh email: %v", err)
	}
	if _, err := repo.Create(ctx, core.User{Name: "New Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("expected released email available, got %v", err)
	}
}

func TestUserRepositoryGetMissing(t *testing.T) {
	repo := NewUserRepository()
	_, err := repo.Get(context.Background(), 77)
	if err == nil {
		t.Fatalf("expected not found")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.TextCode != core.GatewayErrorNotFound {
		t.Fatalf("expected GATEWAY_NOT_FOUND, got %q", richErr.TextCode)
	}
}

func TestUserRepositoryListPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	for i := 0; i < 15; i++ {
		if _, err := repo.Create(ctx, core.User{
			Name:  "user",
			Email: string(rune('a'+i)) + "@example.com",
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	users, total := repo.List(ctx, core.PageRequest{Page: 2, Limit: 10})
	if total != 15 {
		t.Fatalf("expected total 15, got %d", total)
	}
	if len(users) != 5 {
		t.Fatalf("expected 5 users on page 2, got %d", len(users))
	}
	if users[0].ID != 11 {
		t.Fatalf("expected page 2 to start at id 11, got %d", users[0].ID)
	}
}

func TestOrderRepositoryCommitAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	var last int64
	for i := 0; i < 3; i++ {
		committed, err := repo.CommitOrder(ctx, core.Order{UserID: 1, Status: core.OrderStatusPending})
		if err != nil {
			t.Fatalf("commit %d: %v", i, err)
		}
		if committed.ID <= last {
			t.Fatalf("expected increasing ids, got %d after %d", committed.ID, last)
		}
		last = committed.ID
	}

	if _, err := repo.Get(ctx, 2); err != nil {
		t.Fatalf("get committed order: %v", err)
	}
	if _, err := repo.Get(ctx, 99); err == nil {
		t.Fatalf("expected missing order to fail")
	}
}

func TestOrderRepositoryListByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	for _, userID := range []int64{1, 2, 1, 3, 1} {
		if _, err := repo.CommitOrder(ctx, core.Order{UserID: userID}); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}

	orders := repo.ListByUser(ctx, 1)
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders for user 1, got %d", len(orders))
	}
	if orders[0].ID != 1 || orders[1].ID != 3 || orders[2].ID != 5 {
		t.Fatalf("expected insertion order 1,3,5, got %d,%d,%d",
			orders[0].ID, orders[1].ID, orders[2].ID)
	}
}

func TestProductRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	created, err := repo.Create(ctx, core.Product{Name: "widget", Price: 9.5, UserID: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, func(p core.Product) core.Product {
		p.Price = 12
		return p
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 12 || updated.ID != created.ID {
		t.Fatalf("unexpected updated product %+v", updated)
	}

	if !repo.Delete(ctx, created.ID) {
		t.Fatalf("expected delete")
	}
	if repo.Delete(ctx, created.ID) {
		t.Fatalf("expected second delete to report missing")
	}
	if _, err := repo.Get(ctx, created.ID); err == nil {
		t.Fatalf("expected deleted product to be gone")
	}
}
