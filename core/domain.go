package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownService                 = errors.New("core: unknown service")
	ErrInvalidOrderDraft              = errors.New("core: invalid order draft")
	ErrInvalidOrderCreationTransition = errors.New("core: invalid order creation transition")
)

// Service names resolvable through the multiplexer. The set is closed: every
// external operation routes to exactly one of these backends.
const (
	ServiceUsers    = "users"
	ServiceOrders   = "orders"
	ServiceProducts = "products"
)

type TransportKind string

const (
	TransportRPCUnary  TransportKind = "rpc_unary"
	TransportRPCStream TransportKind = "rpc_stream"
	TransportLoopback  TransportKind = "loopback"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OrderDraft is the caller-supplied shape for order creation. Any total the
// caller attaches is discarded; the orchestrator derives it from the items.
type OrderDraft struct {
	UserID         int64       `json:"userId"`
	Items          []OrderItem `json:"items"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
}

func (d OrderDraft) Validate() error {
	if d.UserID <= 0 {
		return fmt.Errorf("%w: user id is required", ErrInvalidOrderDraft)
	}
	if len(d.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidOrderDraft)
	}
	for i, item := range d.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: item %d product id is required", ErrInvalidOrderDraft, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidOrderDraft, i)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: item %d price must not be negative", ErrInvalidOrderDraft, i)
		}
	}
	return nil
}

// TotalAmount derives the order total from the draft items.
func (d OrderDraft) TotalAmount() float64 {
	var total float64
	for _, item := range d.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

type OrderCreationState string

const (
	OrderCreationPendingVerification OrderCreationState = "pending_verification"
	OrderCreationVerified            OrderCreationState = "verified"
	OrderCreationCommitted           OrderCreationState = "committed"
	OrderCreationRejected            OrderCreationState = "rejected"
)

func orderCreationTransitionAllowed(current, next OrderCreationState) bool {
	allowed := map[OrderCreationState]map[OrderCreationState]struct{}{
		OrderCreationPendingVerification: {
			OrderCreationVerified: {},
			OrderCreationRejected: {},
		},
		OrderCreationVerified: {
			OrderCreationCommitted: {},
		},
	}
	_, ok := allowed[current][next]
	return ok
}

func advanceOrderCreation(current, next OrderCreationState) (OrderCreationState, error) {
	if !orderCreationTransitionAllowed(current, next) {
		return current, fmt.Errorf("%w: %s -> %s", ErrInvalidOrderCreationTransition, current, next)
	}
	return next, nil
}

func normalizeServiceName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}
