// Package gateway exposes the request gateway as a command/query facade.
// Commands wrap the mutating operations and queries wrap the reads, so
// hosts can dispatch messages without touching the service type directly.
package gateway

import (
	"fmt"

	gatewaycommand "github.com/goliatone/go-gateway/command"
	"github.com/goliatone/go-gateway/core"
	gatewayquery "github.com/goliatone/go-gateway/query"
)

type CommandQueryService interface {
	gatewaycommand.MutatingService
	gatewayquery.ReadService
}

type Commands struct {
	CreateUser    *gatewaycommand.CreateUserCommand
	UpdateUser    *gatewaycommand.UpdateUserCommand
	DeleteUser    *gatewaycommand.DeleteUserCommand
	CreateOrder   *gatewaycommand.CreateOrderCommand
	CreateProduct *gatewaycommand.CreateProductCommand
	UpdateProduct *gatewaycommand.UpdateProductCommand
	DeleteProduct *gatewaycommand.DeleteProductCommand
}

type Queries struct {
	GetUser           *gatewayquery.GetUserQuery
	ListUsers         *gatewayquery.ListUsersQuery
	GetOrder          *gatewayquery.GetOrderQuery
	GetOrdersByUser   *gatewayquery.GetOrdersByUserQuery
	GetProduct        *gatewayquery.GetProductQuery
	ListProducts      *gatewayquery.ListProductsQuery
	GetProductsByUser *gatewayquery.GetProductsByUserQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("gateway: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		CreateUser:    gatewaycommand.NewCreateUserCommand(service),
		UpdateUser:    gatewaycommand.NewUpdateUserCommand(service),
		DeleteUser:    gatewaycommand.NewDeleteUserCommand(service),
		CreateOrder:   gatewaycommand.NewCreateOrderCommand(service),
		CreateProduct: gatewaycommand.NewCreateProductCommand(service),
		UpdateProduct: gatewaycommand.NewUpdateProductCommand(service),
		DeleteProduct: gatewaycommand.NewDeleteProductCommand(service),
	}
	facade.queries = Queries{
		GetUser:           gatewayquery.NewGetUserQuery(service),
		ListUsers:         gatewayquery.NewListUsersQuery(service),
		GetOrder:          gatewayquery.NewGetOrderQuery(service),
		GetOrdersByUser:   gatewayquery.NewGetOrdersByUserQuery(service),
		GetProduct:        gatewayquery.NewGetProductQuery(service),
		ListProducts:      gatewayquery.NewListProductsQuery(service),
		GetProductsByUser: gatewayquery.NewGetProductsByUserQuery(service),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

var _ CommandQueryService = (*core.Gateway)(nil)
