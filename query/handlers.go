package query

import (
	"context"

	"github.com/goliatone/go-gateway/core"
)

// ReadService is the read surface of the gateway.
type ReadService interface {
	GetUser(ctx context.Context, req core.GetUserRequest) (core.User, error)
	ListUsers(ctx context.Context, req core.ListUsersRequest) (core.ListUsersResponse, error)
	GetOrder(ctx context.Context, req core.GetOrderRequest) (core.Order, error)
	GetOrdersByUser(ctx context.Context, req core.GetOrdersByUserRequest) (core.GetOrdersByUserResponse, error)
	GetProduct(ctx context.Context, req core.GetProductRequest) (core.Product, error)
	ListProducts(ctx context.Context, req core.ListProductsRequest) (core.ListProductsResponse, error)
	GetProductsByUser(ctx context.Context, req core.GetProductsByUserRequest) (core.GetProductsByUserResponse, error)
}

type GetUserQuery struct {
	service ReadService
}

func NewGetUserQuery(service ReadService) *GetUserQuery {
	return &GetUserQuery{service: service}
}

func (q *GetUserQuery) Query(ctx context.Context, msg GetUserMessage) (core.User, error) {
	if q == nil || q.service == nil {
		return core.User{}, queryDependencyError("query: user service is required")
	}
	return q.service.GetUser(ctx, msg.Request)
}

type ListUsersQuery struct {
	service ReadService
}

func NewListUsersQuery(service ReadService) *ListUsersQuery {
	return &ListUsersQuery{service: service}
}

func (q *ListUsersQuery) Query(ctx context.Context, msg ListUsersMessage) (core.ListUsersResponse, error) {
	if q == nil || q.service == nil {
		return core.ListUsersResponse{}, queryDependencyError("query: user service is required")
	}
	return q.service.ListUsers(ctx, msg.Request)
}

type GetOrderQuery struct {
	service ReadService
}

func NewGetOrderQuery(service ReadService) *GetOrderQuery {
	return &GetOrderQuery{service: service}
}

func (q *GetOrderQuery) Query(ctx context.Context, msg GetOrderMessage) (core.Order, error) {
	if q == nil || q.service == nil {
		return core.Order{}, queryDependencyError("query: order service is required")
	}
	return q.service.GetOrder(ctx, msg.Request)
}

type GetOrdersByUserQuery struct {
	service ReadService
}

func NewGetOrdersByUserQuery(service ReadService) *GetOrdersByUserQuery {
	return &GetOrdersByUserQuery{service: service}
}

func (q *GetOrdersByUserQuery) Query(
	ctx context.Context,
	msg GetOrdersByUserMessage,
) (core.GetOrdersByUserResponse, error) {
	if q == nil || q.service == nil {
		return core.GetOrdersByUserResponse{}, queryDependencyError("query: order service is required")
	}
	return q.service.GetOrdersByUser(ctx, msg.Request)
}

type GetProductQuery struct {
	service ReadService
}

func NewGetProductQuery(service ReadService) *GetProductQuery {
	return &GetProductQuery{service: service}
}

func (q *GetProductQuery) Query(ctx context.Context, msg GetProductMessage) (core.Product, error) {
	if q == nil || q.service == nil {
		return core.Product{}, queryDependencyError("query: product service is required")
	}
	return q.service.GetProduct(ctx, msg.Request)
}

type ListProductsQuery struct {
	service ReadService
}

func NewListProductsQuery(service ReadService) *ListProductsQuery {
	return &ListProductsQuery{service: service}
}

func (q *ListProductsQuery) Query(ctx context.Context, msg ListProductsMessage) (core.ListProductsResponse, error) {
	if q == nil || q.service == nil {
		return core.ListProductsResponse{}, queryDependencyError("query: product service is required")
	}
	return q.service.ListProducts(ctx, msg.Request)
}

type GetProductsByUserQuery struct {
	service ReadService
}

func NewGetProductsByUserQuery(service ReadService) *GetProductsByUserQuery {
	return &GetProductsByUserQuery{service: service}
}

func (q *GetProductsByUserQuery) Query(
	ctx context.Context,
	msg GetProductsByUserMessage,
) (core.GetProductsByUserResponse, error) {
	if q == nil || q.service == nil {
		return core.GetProductsByUserResponse{}, queryDependencyError("query: product service is required")
	}
	return q.service.GetProductsByUser(ctx, msg.Request)
}
