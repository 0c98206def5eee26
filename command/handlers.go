package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-gateway/core"
)

// MutatingService is the write surface of the gateway.
type MutatingService interface {
	CreateUser(ctx context.Context, req core.CreateUserRequest) (core.User, error)
	UpdateUser(ctx context.Context, req core.UpdateUserRequest) (core.User, error)
	DeleteUser(ctx context.Context, req core.DeleteUserRequest) (core.DeleteUserResponse, error)
	CreateOrder(ctx context.Context, req core.CreateOrderRequest) (core.Order, error)
	CreateProduct(ctx context.Context, req core.CreateProductRequest) (core.Product, error)
	UpdateProduct(ctx context.Context, req core.UpdateProductRequest) (core.Product, error)
	DeleteProduct(ctx context.Context, req core.DeleteProductRequest) (core.DeleteProductResponse, error)
}

type CreateUserCommand struct {
	service MutatingService
}

func NewCreateUserCommand(service MutatingService) *CreateUserCommand {
	return &CreateUserCommand{service: service}
}

func (c *CreateUserCommand) Execute(ctx context.Context, msg CreateUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: user service is required")
	}
	out, err := c.service.CreateUser(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateUserCommand struct {
	service MutatingService
}

func NewUpdateUserCommand(service MutatingService) *UpdateUserCommand {
	return &UpdateUserCommand{service: service}
}

func (c *UpdateUserCommand) Execute(ctx context.Context, msg UpdateUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: user service is required")
	}
	out, err := c.service.UpdateUser(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteUserCommand struct {
	service MutatingService
}

func NewDeleteUserCommand(service MutatingService) *DeleteUserCommand {
	return &DeleteUserCommand{service: service}
}

func (c *DeleteUserCommand) Execute(ctx context.Context, msg DeleteUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: user service is required")
	}
	out, err := c.service.DeleteUser(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateOrderCommand struct {
	service MutatingService
}

func NewCreateOrderCommand(service MutatingService) *CreateOrderCommand {
	return &CreateOrderCommand{service: service}
}

func (c *CreateOrderCommand) Execute(ctx context.Context, msg CreateOrderMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: order service is required")
	}
	out, err := c.service.CreateOrder(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateProductCommand struct {
	service MutatingService
}

func NewCreateProductCommand(service MutatingService) *CreateProductCommand {
	return &CreateProductCommand{service: service}
}

func (c *CreateProductCommand) Execute(ctx context.Context, msg CreateProductMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: product service is required")
	}
	out, err := c.service.CreateProduct(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateProductCommand struct {
	service MutatingService
}

func NewUpdateProductCommand(service MutatingService) *UpdateProductCommand {
	return &UpdateProductCommand{service: service}
}

func (c *UpdateProductCommand) Execute(ctx context.Context, msg UpdateProductMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: product service is required")
	}
	out, err := c.service.UpdateProduct(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteProductCommand struct {
	service MutatingService
}

func NewDeleteProductCommand(service MutatingService) *DeleteProductCommand {
	return &DeleteProductCommand{service: service}
}

func (c *DeleteProductCommand) Execute(ctx context.Context, msg DeleteProductMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: product service is required")
	}
	out, err := c.service.DeleteProduct(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
