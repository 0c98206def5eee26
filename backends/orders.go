package backends

import (
	"context"
	"fmt"

	"github.com/goliatone/go-gateway/core"
	"github.com/goliatone/go-gateway/store/memory"
)

// OrderService is the in-process order backend. Creation runs through the
// order orchestrator so the user check, total derivation, and commit keep
// their ordering.
type OrderService struct {
	repo         *memory.OrderRepository
	orchestrator *core.OrderOrchestrator
}

func NewOrderService(
	repo *memory.OrderRepository,
	users core.UserBackend,
	options ...core.OrchestratorOption,
) (*OrderService, error) {
	if repo == nil {
		repo = memory.NewOrderRepository()
	}
	if users == nil {
		return nil, fmt.Errorf("backends: user backend is required")
	}
	orchestrator, err := core.NewOrderOrchestrator(userVerifier{users: users}, repo, options...)
	if err != nil {
		return nil, err
	}
	return &OrderService{
		repo:         repo,
		orchestrator: orchestrator,
	}, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, req core.CreateOrderRequest) (core.Order, error) {
	return s.orchestrator.CreateOrder(ctx, core.OrderDraft{
		UserID:         req.UserID,
		Items:          req.Items,
		IdempotencyKey: req.IdempotencyKey,
	})
}

func (s *OrderService) GetOrder(ctx context.Context, req core.GetOrderRequest) (core.Order, error) {
	return s.repo.Get(ctx, req.ID)
}

func (s *OrderService) GetOrdersByUser(ctx context.Context, req core.GetOrdersByUserRequest) (core.GetOrdersByUserResponse, error) {
	orders := s.repo.ListByUser(ctx, req.UserID)
	return core.GetOrdersByUserResponse{
		Orders: orders,
		Total:  len(orders),
	}, nil
}

// userVerifier adapts the user backend's GetUser into the blocking
// dependency check the orchestrator needs.
type userVerifier struct {
	users core.UserBackend
}

func (v userVerifier) VerifyUser(ctx context.Context, userID int64) error {
	_, err := v.users.GetUser(ctx, core.GetUserRequest{ID: userID})
	return err
}

var (
	_ core.OrderBackend = (*OrderService)(nil)
	_ core.UserVerifier = userVerifier{}
)
