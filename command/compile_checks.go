package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreateUserMessage]    = (*CreateUserCommand)(nil)
	_ gocmd.Commander[UpdateUserMessage]    = (*UpdateUserCommand)(nil)
	_ gocmd.Commander[DeleteUserMessage]    = (*DeleteUserCommand)(nil)
	_ gocmd.Commander[CreateOrderMessage]   = (*CreateOrderCommand)(nil)
	_ gocmd.Commander[CreateProductMessage] = (*CreateProductCommand)(nil)
	_ gocmd.Commander[UpdateProductMessage] = (*UpdateProductCommand)(nil)
	_ gocmd.Commander[DeleteProductMessage] = (*DeleteProductCommand)(nil)
)
