package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// OrderOrchestrator runs order creation as an explicit state machine:
// pending_verification -> verified -> committed, with rejected terminal
// from pending_verification. The dependency check against the user backend
// blocks the whole operation; there is no speculative commit.
type OrderOrchestrator struct {
	verifier  UserVerifier
	committer OrderCommitter
	ledger    IdempotencyLedger
	logger    Logger
	now       func() time.Time
}

type OrchestratorOption func(*OrderOrchestrator)

func WithOrchestratorLogger(logger Logger) OrchestratorOption {
	return func(o *OrderOrchestrator) {
		o.logger = logger
	}
}

func WithOrchestratorLedger(ledger IdempotencyLedger) OrchestratorOption {
	return func(o *OrderOrchestrator) {
		o.ledger = ledger
	}
}

func WithOrchestratorClock(now func() time.Time) OrchestratorOption {
	return func(o *OrderOrchestrator) {
		o.now = now
	}
}

func NewOrderOrchestrator(
	verifier UserVerifier,
	committer OrderCommitter,
	options ...OrchestratorOption,
) (*OrderOrchestrator, error) {
	if verifier == nil {
		return nil, fmt.Errorf("core: user verifier is required")
	}
	if committer == nil {
		return nil, fmt.Errorf("core: order committer is required")
	}
	orchestrator := &OrderOrchestrator{
		verifier:  verifier,
		committer: committer,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(orchestrator)
	}
	return orchestrator, nil
}

// CreateOrder verifies the referenced user, derives the total from the
// draft items, and commits the order. Without a ledger, retries after a
// lost response may commit twice; callers opting into deduplication supply
// an idempotency key and a configured ledger.
func (o *OrderOrchestrator) CreateOrder(ctx context.Context, draft OrderDraft) (Order, error) {
	if o == nil || o.verifier == nil || o.committer == nil {
		return Order{}, configurationError("core: order orchestrator is not configured", nil)
	}
	if err := draft.Validate(); err != nil {
		return Order{}, badInputError(err.Error())
	}

	key := strings.TrimSpace(draft.IdempotencyKey)
	if o.ledger != nil && key != "" {
		if replayed, ok, err := o.ledger.Lookup(ctx, key); err == nil && ok {
			return replayed, nil
		}
	}

	state := OrderCreationPendingVerification

	if err := o.verifier.VerifyUser(ctx, draft.UserID); err != nil {
		if _, stateErr := advanceOrderCreation(state, OrderCreationRejected); stateErr != nil {
			return Order{}, NormalizeError(stateErr)
		}
		return Order{}, preconditionError(err, "referenced user not found")
	}
	state, err := advanceOrderCreation(state, OrderCreationVerified)
	if err != nil {
		return Order{}, NormalizeError(err)
	}

	now := o.now()
	order := Order{
		UserID:      draft.UserID,
		Items:       cloneOrderItems(draft.Items),
		TotalAmount: draft.TotalAmount(),
		Status:      OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	committed, err := o.committer.CommitOrder(ctx, order)
	if err != nil {
		return Order{}, NormalizeError(err)
	}
	if _, err := advanceOrderCreation(state, OrderCreationCommitted); err != nil {
		return Order{}, NormalizeError(err)
	}

	if o.ledger != nil && key != "" {
		if err := o.ledger.Record(ctx, key, committed); err != nil && o.logger != nil {
			o.logger.Error("idempotency record failed", "key", key, "error", err.Error())
		}
	}
	return committed, nil
}

func cloneOrderItems(items []OrderItem) []OrderItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}
