package query

import (
	"fmt"

	"github.com/goliatone/go-gateway/core"
)

const (
	TypeGetUser           = "gateway.query.user.get"
	TypeListUsers         = "gateway.query.user.list"
	TypeGetOrder          = "gateway.query.order.get"
	TypeGetOrdersByUser   = "gateway.query.order.list_by_user"
	TypeGetProduct        = "gateway.query.product.get"
	TypeListProducts      = "gateway.query.product.list"
	TypeGetProductsByUser = "gateway.query.product.list_by_user"
)

type GetUserMessage struct {
	Request core.GetUserRequest
}

func (GetUserMessage) Type() string { return TypeGetUser }

func (m GetUserMessage) Validate() error {
	if m.Request.ID <= 0 {
		return fmt.Errorf("query: user id is required")
	}
	return nil
}

// ListUsersMessage carries raw pagination; the gateway applies defaults
// before routing, so zero values are valid here.
type ListUsersMessage struct {
	Request core.ListUsersRequest
}

func (ListUsersMessage) Type() string { return TypeListUsers }

func (m ListUsersMessage) Validate() error {
	if m.Request.Page < 0 {
		return fmt.Errorf("query: page must be >= 0")
	}
	if m.Request.Limit < 0 {
		return fmt.Errorf("query: limit must be >= 0")
	}
	return nil
}

type GetOrderMessage struct {
	Request core.GetOrderRequest
}

func (GetOrderMessage) Type() string { return TypeGetOrder }

func (m GetOrderMessage) Validate() error {
	if m.Request.ID <= 0 {
		return fmt.Errorf("query: order id is required")
	}
	return nil
}

type GetOrdersByUserMessage struct {
	Request core.GetOrdersByUserRequest
}

func (GetOrdersByUserMessage) Type() string { return TypeGetOrdersByUser }

func (m GetOrdersByUserMessage) Validate() error {
	if m.Request.UserID <= 0 {
		return fmt.Errorf("query: user id is required")
	}
	return nil
}

type GetProductMessage struct {
	Request core.GetProductRequest
}

func (GetProductMessage) Type() string { return TypeGetProduct }

func (m GetProductMessage) Validate() error {
	if m.Request.ProductID <= 0 {
		return fmt.Errorf("query: product id is required")
	}
	return nil
}

type ListProductsMessage struct {
	Request core.ListProductsRequest
}

func (ListProductsMessage) Type() string { return TypeListProducts }

func (m ListProductsMessage) Validate() error {
	if m.Request.Page < 0 {
		return fmt.Errorf("query: page must be >= 0")
	}
	if m.Request.Limit < 0 {
		return fmt.Errorf("query: limit must be >= 0")
	}
	return nil
}

type GetProductsByUserMessage struct {
	Request core.GetProductsByUserRequest
}

func (GetProductsByUserMessage) Type() string { return TypeGetProductsByUser }

func (m GetProductsByUserMessage) Validate() error {
	if m.Request.UserID <= 0 {
		return fmt.Errorf("query: user id is required")
	}
	return nil
}
