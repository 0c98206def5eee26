package core

import (
	"errors"
	"testing"
)

func TestOrderDraftValidate(t *testing.T) {
	valid := OrderDraft{
		UserID: 1,
		Items:  []OrderItem{{ProductID: 2, Quantity: 1, Price: 9.5}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	cases := []struct {
		name  string
		draft OrderDraft
	}{
		{name: "missing user", draft: OrderDraft{Items: []OrderItem{{ProductID: 1, Quantity: 1, Price: 1}}}},
		{name: "no items", draft: OrderDraft{UserID: 1}},
		{name: "missing product id", draft: OrderDraft{UserID: 1, Items: []OrderItem{{Quantity: 1, Price: 1}}}},
		{name: "zero quantity", draft: OrderDraft{UserID: 1, Items: []OrderItem{{ProductID: 1, Price: 1}}}},
		{name: "negative price", draft: OrderDraft{UserID: 1, Items: []OrderItem{{ProductID: 1, Quantity: 1, Price: -1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.Is(err, ErrInvalidOrderDraft) {
				t.Fatalf("expected ErrInvalidOrderDraft, got %v", err)
			}
		})
	}
}

func TestOrderDraftTotalAmount(t *testing.T) {
	draft := OrderDraft{
		UserID: 1,
		Items: []OrderItem{
			{ProductID: 1, Quantity: 2, Price: 10.5},
			{ProductID: 2, Quantity: 3, Price: 1},
			{ProductID: 3, Quantity: 1, Price: 0},
		},
	}
	if got := draft.TotalAmount(); got != 24 {
		t.Fatalf("expected total 24, got %v", got)
	}

	if got := (OrderDraft{}).TotalAmount(); got != 0 {
		t.Fatalf("expected zero total for empty draft, got %v", got)
	}
}

func TestOrderCreationTransitions(t *testing.T) {
	allowed := []struct {
		from OrderCreationState
		to   OrderCreationState
	}{
		{OrderCreationPendingVerification, OrderCreationVerified},
		{OrderCreationPendingVerification, OrderCreationRejected},
		{OrderCreationVerified, OrderCreationCommitted},
	}
	for _, tc := range allowed {
		next, err := advanceOrderCreation(tc.from, tc.to)
		if err != nil {
			t.Fatalf("expected %s -> %s allowed, got %v", tc.from, tc.to, err)
		}
		if next != tc.to {
			t.Fatalf("expected state %s, got %s", tc.to, next)
		}
	}

	forbidden := []struct {
		from OrderCreationState
		to   OrderCreationState
	}{
		{OrderCreationPendingVerification, OrderCreationCommitted},
		{OrderCreationVerified, OrderCreationRejected},
		{OrderCreationCommitted, OrderCreationVerified},
		{OrderCreationRejected, OrderCreationVerified},
		{OrderCreationCommitted, OrderCreationCommitted},
	}
	for _, tc := range forbidden {
		state, err := advanceOrderCreation(tc.from, tc.to)
		if err == nil {
			t.Fatalf("expected %s -> %s rejected", tc.from, tc.to)
		}
		if !errors.Is(err, ErrInvalidOrderCreationTransition) {
			t.Fatalf("expected ErrInvalidOrderCreationTransition, got %v", err)
		}
		if state != tc.from {
			t.Fatalf("expected state unchanged on rejection, got %s", state)
		}
	}
}

func TestNormalizeServiceName(t *testing.T) {
	cases := map[string]string{
		"Users":      "users",
		"  ORDERS  ": "orders",
		"products":   "products",
		"":           "",
	}
	for input, want := range cases {
		if got := normalizeServiceName(input); got != want {
			t.Fatalf("normalizeServiceName(%q) = %q, want %q", input, got, want)
		}
	}
}
