package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-gateway/core"
)

const (
	TypeCreateUser    = "gateway.command.user.create"
	TypeUpdateUser    = "gateway.command.user.update"
	TypeDeleteUser    = "gateway.command.user.delete"
	TypeCreateOrder   = "gateway.command.order.create"
	TypeCreateProduct = "gateway.command.product.create"
	TypeUpdateProduct = "gateway.command.product.update"
	TypeDeleteProduct = "gateway.command.product.delete"
)

type CreateUserMessage struct {
	Request core.CreateUserRequest
}

func (CreateUserMessage) Type() string { return TypeCreateUser }

func (m CreateUserMessage) Validate() error {
	if strings.TrimSpace(m.Request.Name) == "" {
		return fmt.Errorf("command: user name is required")
	}
	if strings.TrimSpace(m.Request.Email) == "" {
		return fmt.Errorf("command: user email is required")
	}
	return nil
}

type UpdateUserMessage struct {
	Request core.UpdateUserRequest
}

func (UpdateUserMessage) Type() string { return TypeUpdateUser }

func (m UpdateUserMessage) Validate() error {
	if m.Request.ID <= 0 {
		return fmt.Errorf("command: user id is required")
	}
	return nil
}

type DeleteUserMessage struct {
	Request core.DeleteUserRequest
}

func (DeleteUserMessage) Type() string { return TypeDeleteUser }

func (m DeleteUserMessage) Validate() error {
	if m.Request.ID <= 0 {
		return fmt.Errorf("command: user id is required")
	}
	return nil
}

type CreateOrderMessage struct {
	Request core.CreateOrderRequest
}

func (CreateOrderMessage) Type() string { return TypeCreateOrder }

func (m CreateOrderMessage) Validate() error {
	draft := core.OrderDraft{
		UserID:         m.Request.UserID,
		Items:          m.Request.Items,
		IdempotencyKey: m.Request.IdempotencyKey,
	}
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("command: %w", err)
	}
	return nil
}

type CreateProductMessage struct {
	Request core.CreateProductRequest
}

func (CreateProductMessage) Type() string { return TypeCreateProduct }

func (m CreateProductMessage) Validate() error {
	if strings.TrimSpace(m.Request.Name) == "" {
		return fmt.Errorf("command: product name is required")
	}
	if m.Request.Price < 0 {
		return fmt.Errorf("command: product price must not be negative")
	}
	if m.Request.UserID <= 0 {
		return fmt.Errorf("command: product owner id is required")
	}
	return nil
}

type UpdateProductMessage struct {
	Request core.UpdateProductRequest
}

func (UpdateProductMessage) Type() string { return TypeUpdateProduct }

func (m UpdateProductMessage) Validate() error {
	if m.Request.ProductID <= 0 {
		return fmt.Errorf("command: product id is required")
	}
	if m.Request.Price < 0 {
		return fmt.Errorf("command: product price must not be negative")
	}
	return nil
}

type DeleteProductMessage struct {
	Request core.DeleteProductRequest
}

func (DeleteProductMessage) Type() string { return TypeDeleteProduct }

func (m DeleteProductMessage) Validate() error {
	if m.Request.ProductID <= 0 {
		return fmt.Errorf("command: product id is required")
	}
	return nil
}
