package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-gateway/core"
)

var (
	_ gocmd.Querier[GetUserMessage, core.User]                                     = (*GetUserQuery)(nil)
	_ gocmd.Querier[ListUsersMessage, core.ListUsersResponse]                      = (*ListUsersQuery)(nil)
	_ gocmd.Querier[GetOrderMessage, core.Order]                                   = (*GetOrderQuery)(nil)
	_ gocmd.Querier[GetOrdersByUserMessage, core.GetOrdersByUserResponse]          = (*GetOrdersByUserQuery)(nil)
	_ gocmd.Querier[GetProductMessage, core.Product]                               = (*GetProductQuery)(nil)
	_ gocmd.Querier[ListProductsMessage, core.ListProductsResponse]                = (*ListProductsQuery)(nil)
	_ gocmd.Querier[GetProductsByUserMessage, core.GetProductsByUserResponse]      = (*GetProductsByUserQuery)(nil)
)
