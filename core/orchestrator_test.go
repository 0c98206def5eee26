package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type stubVerifier struct {
	err   error
	calls int
}

func (v *stubVerifier) VerifyUser(_ context.Context, userID int64) error {
	v.calls++
	if v.err != nil {
		return v.err
	}
	if userID <= 0 {
		return errors.New("user not found")
	}
	return nil
}

type stubCommitter struct {
	mu     sync.Mutex
	nextID int64
	orders []Order
	err    error
}

func (c *stubCommitter) CommitOrder(_ context.Context, order Order) (Order, error) {
	if c.err != nil {
		return Order{}, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	order.ID = c.nextID
	c.orders = append(c.orders, order)
	return order, nil
}

type memoryLedger struct {
	mu      sync.Mutex
	entries map[string]Order
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{entries: map[string]Order{}}
}

func (l *memoryLedger) Lookup(_ context.Context, key string) (Order, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	order, ok := l.entries[key]
	return order, ok, nil
}

func (l *memoryLedger) Record(_ context.Context, key string, order Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[key] = order
	return nil
}

func TestOrderOrchestratorDerivesTotalAndCommitsPending(t *testing.T) {
	committer := &stubCommitter{}
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orchestrator, err := NewOrderOrchestrator(&stubVerifier{}, committer,
		WithOrchestratorClock(func() time.Time { return fixed }),
	)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	order, err := orchestrator.CreateOrder(context.Background(), OrderDraft{
		UserID: 7,
		Items: []OrderItem{
			{ProductID: 1, Quantity: 2, Price: 10},
			{ProductID: 2, Quantity: 1, Price: 5},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != 1 {
		t.Fatalf("expected first id 1, got %d", order.ID)
	}
	if order.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", order.UserID)
	}
	if order.TotalAmount != 25 {
		t.Fatalf("expected derived total 25, got %v", order.TotalAmount)
	}
	if order.Status != OrderStatusPending {
		t.Fatalf("expected pending status, got %q", order.Status)
	}
	if !order.CreatedAt.Equal(fixed) || !order.UpdatedAt.Equal(fixed) {
		t.Fatalf("expected clock timestamps, got created=%v updated=%v", order.CreatedAt, order.UpdatedAt)
	}
}

func TestOrderOrchestratorIgnoresCallerSuppliedTotal(t *testing.T) {
	// The draft has no total field at all; any total a caller attaches
	// upstream is dropped before the draft reaches the orchestrator. The
	// commit sees only the derived amount.
	committer := &stubCommitter{}
	orchestrator, err := NewOrderOrchestrator(&stubVerifier{}, committer)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	order, err := orchestrator.CreateOrder(context.Background(), OrderDraft{
		UserID: 1,
		Items:  []OrderItem{{ProductID: 9, Quantity: 3, Price: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TotalAmount != 6 {
		t.Fatalf("expected derived total 6, got %v", order.TotalAmount)
	}
}

func TestOrderOrchestratorRejectsWhenUserMissing(t *testing.T) {
	committer := &stubCommitter{}
	verifier := &stubVerifier{err: errors.New("user 99 not found")}
	orchestrator, err := NewOrderOrchestrator(verifier, committer)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	_, err = orchestrator.CreateOrder(context.Background(), OrderDraft{
		UserID: 99,
		Items:  []OrderItem{{ProductID: 1, Quantity: 1, Price: 10}},
	})
	if err == nil {
		t.Fatalf("expected rejection for missing user")
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.Code != CodeFailedPrecondition {
		t.Fatalf("expected FAILED_PRECONDITION code %d, got %d", CodeFailedPrecondition, richErr.Code)
	}
	if richErr.TextCode != GatewayErrorFailedPrecondition {
		t.Fatalf("expected precondition text code, got %q", richErr.TextCode)
	}
	if richErr.Message != "referenced user not found" {
		t.Fatalf("unexpected message %q", richErr.Message)
	}
	if len(committer.orders) != 0 {
		t.Fatalf("expected no commit after rejection, got %d orders", len(committer.orders))
	}
}

func TestOrderOrchestratorValidatesDraft(t *testing.T) {
	orchestrator, err := NewOrderOrchestrator(&stubVerifier{}, &stubCommitter{})
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	cases := []OrderDraft{
		{UserID: 0, Items: []OrderItem{{ProductID: 1, Quantity: 1, Price: 1}}},
		{UserID: 1},
		{UserID: 1, Items: []OrderItem{{ProductID: 0, Quantity: 1, Price: 1}}},
		{UserID: 1, Items: []OrderItem{{ProductID: 1, Quantity: 0, Price: 1}}},
		{UserID: 1, Items: []OrderItem{{ProductID: 1, Quantity: 1, Price: -2}}},
	}
	for i, draft := range cases {
		_, err := orchestrator.CreateOrder(context.Background(), draft)
		if err == nil {
			t.Fatalf("case %d: expected validation failure", i)
		}
		var richErr *goerrors.Error
		if !goerrors.As(err, &richErr) {
			t.Fatalf("case %d: expected rich error, got %T", i, err)
		}
		if richErr.TextCode != GatewayErrorInvalidArgument {
			t.Fatalf("case %d: expected invalid argument, got %q", i, richErr.TextCode)
		}
	}
}

func TestOrderOrchestratorMonotonicIdentifiers(t *testing.T) {
	committer := &stubCommitter{}
	orchestrator, err := NewOrderOrchestrator(&stubVerifier{}, committer)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	var last int64
	for i := 0; i < 5; i++ {
		order, err := orchestrator.CreateOrder(context.Background(), OrderDraft{
			UserID: 1,
			Items:  []OrderItem{{ProductID: int64(i + 1), Quantity: 1, Price: 1}},
		})
		if err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
		if order.ID <= last {
			t.Fatalf("expected strictly increasing ids, got %d after %d", order.ID, last)
		}
		last = order.ID
	}
}

func TestOrderOrchestratorReplaysLedgerHit(t *testing.T) {
	committer := &stubCommitter{}
	ledger := newMemoryLedger()
	orchestrator, err := NewOrderOrchestrator(&stubVerifier{}, committer,
		WithOrchestratorLedger(ledger),
	)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	draft := OrderDraft{
		UserID:         4,
		Items:          []OrderItem{{ProductID: 1, Quantity: 1, Price: 12}},
		IdempotencyKey: "retry-1",
	}
	first, err := orchestrator.CreateOrder(context.Background(), draft)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := orchestrator.CreateOrder(context.Background(), draft)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected replay of order %d, got %d", first.ID, second.ID)
	}
	if len(committer.orders) != 1 {
		t.Fatalf("expected a single commit, got %d", len(committer.orders))
	}
}

func TestOrderOrchestratorCommitFailureNormalized(t *testing.T) {
	committer := &stubCommitter{err: fmt.Errorf("order store unavailable")}
	orchestrator, err := NewOrderOrchestrator(&stubVerifier{}, committer)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}

	_, err = orchestrator.CreateOrder(context.Background(), OrderDraft{
		UserID: 1,
		Items:  []OrderItem{{ProductID: 1, Quantity: 1, Price: 1}},
	})
	if err == nil {
		t.Fatalf("expected commit failure")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.TextCode != GatewayErrorUnavailable {
		t.Fatalf("expected unavailable envelope, got %q", richErr.TextCode)
	}
}
