package client

import (
	"context"

	"github.com/goliatone/go-gateway/core"
	"github.com/goliatone/go-gateway/transport"
)

// RPC method names match the backend service definitions; the same names
// are served over loopback for in-process backends.
const (
	MethodCreateUser = "/user.UserService/CreateUser"
	MethodGetUser    = "/user.UserService/GetUser"
	MethodUpdateUser = "/user.UserService/UpdateUser"
	MethodDeleteUser = "/user.UserService/DeleteUser"
	MethodListUsers  = "/user.UserService/ListUsers"

	MethodCreateOrder     = "/order.OrderService/CreateOrder"
	MethodGetOrder        = "/order.OrderService/GetOrder"
	MethodGetOrdersByUser = "/order.OrderService/GetOrdersByUser"

	MethodCreateProduct     = "/product.ProductService/CreateProduct"
	MethodGetProduct        = "/product.ProductService/GetProduct"
	MethodUpdateProduct     = "/product.ProductService/UpdateProduct"
	MethodDeleteProduct     = "/product.ProductService/DeleteProduct"
	MethodListProducts      = "/product.ProductService/ListProducts"
	MethodGetProductsByUser = "/product.ProductService/GetProductsByUser"
)

// UserClient is the typed handle for the user backend.
type UserClient struct {
	caller transport.Caller
}

func NewUserClient(caller transport.Caller) *UserClient {
	return &UserClient{caller: caller}
}

func (c *UserClient) CreateUser(ctx context.Context, req core.CreateUserRequest) (core.User, error) {
	var user core.User
	if err := c.caller.Invoke(ctx, MethodCreateUser, req, &user); err != nil {
		return core.User{}, err
	}
	return user, nil
}

func (c *UserClient) GetUser(ctx context.Context, req core.GetUserRequest) (core.User, error) {
	var user core.User
	if err := c.caller.Invoke(ctx, MethodGetUser, req, &user); err != nil {
		return core.User{}, err
	}
	return user, nil
}

func (c *UserClient) UpdateUser(ctx context.Context, req core.UpdateUserRequest) (core.User, error) {
	var user core.User
	if err := c.caller.Invoke(ctx, MethodUpdateUser, req, &user); err != nil {
		return core.User{}, err
	}
	return user, nil
}

func (c *UserClient) DeleteUser(ctx context.Context, req core.DeleteUserRequest) (core.DeleteUserResponse, error) {
	var resp core.DeleteUserResponse
	if err := c.caller.Invoke(ctx, MethodDeleteUser, req, &resp); err != nil {
		return core.DeleteUserResponse{}, err
	}
	return resp, nil
}

func (c *UserClient) ListUsers(ctx context.Context, req core.ListUsersRequest) (core.ListUsersResponse, error) {
	var resp core.ListUsersResponse
	if err := c.caller.Invoke(ctx, MethodListUsers, req, &resp); err != nil {
		return core.ListUsersResponse{}, err
	}
	return resp, nil
}

// OrderClient is the typed handle for the order backend.
type OrderClient struct {
	caller transport.Caller
}

func NewOrderClient(caller transport.Caller) *OrderClient {
	return &OrderClient{caller: caller}
}

func (c *OrderClient) CreateOrder(ctx context.Context, req core.CreateOrderRequest) (core.Order, error) {
	var order core.Order
	if err := c.caller.Invoke(ctx, MethodCreateOrder, req, &order); err != nil {
		return core.Order{}, err
	}
	return order, nil
}

func (c *OrderClient) GetOrder(ctx context.Context, req core.GetOrderRequest) (core.Order, error) {
	var order core.Order
	if err := c.caller.Invoke(ctx, MethodGetOrder, req, &order); err != nil {
		return core.Order{}, err
	}
	return order, nil
}

func (c *OrderClient) GetOrdersByUser(ctx context.Context, req core.GetOrdersByUserRequest) (core.GetOrdersByUserResponse, error) {
	var resp core.GetOrdersByUserResponse
	if err := c.caller.Invoke(ctx, MethodGetOrdersByUser, req, &resp); err != nil {
		return core.GetOrdersByUserResponse{}, err
	}
	return resp, nil
}

// ProductClient is the typed handle for the product backend.
type ProductClient struct {
	caller transport.Caller
}

func NewProductClient(caller transport.Caller) *ProductClient {
	return &ProductClient{caller: caller}
}

func (c *ProductClient) CreateProduct(ctx context.Context, req core.CreateProductRequest) (core.Product, error) {
	var product core.Product
	if err := c.caller.Invoke(ctx, MethodCreateProduct, req, &product); err != nil {
		return core.Product{}, err
	}
	return product, nil
}

func (c *ProductClient) GetProduct(ctx context.Context, req core.GetProductRequest) (core.Product, error) {
	var product core.Product
	if err := c.caller.Invoke(ctx, MethodGetProduct, req, &product); err != nil {
		return core.Product{}, err
	}
	return product, nil
}

func (c *ProductClient) UpdateProduct(ctx context.Context, req core.UpdateProductRequest) (core.Product, error) {
	var product core.Product
	if err := c.caller.Invoke(ctx, MethodUpdateProduct, req, &product); err != nil {
		return core.Product{}, err
	}
	return product, nil
}

func (c *ProductClient) DeleteProduct(ctx context.Context, req core.DeleteProductRequest) (core.DeleteProductResponse, error) {
	var resp core.DeleteProductResponse
	if err := c.caller.Invoke(ctx, MethodDeleteProduct, req, &resp); err != nil {
		return core.DeleteProductResponse{}, err
	}
	return resp, nil
}

func (c *ProductClient) ListProducts(ctx context.Context, req core.ListProductsRequest) (core.ListProductsResponse, error) {
	var resp core.ListProductsResponse
	if err := c.caller.Invoke(ctx, MethodListProducts, req, &resp); err != nil {
		return core.ListProductsResponse{}, err
	}
	return resp, nil
}

func (c *ProductClient) GetProductsByUser(ctx context.Context, req core.GetProductsByUserRequest) (core.GetProductsByUserResponse, error) {
	var resp core.GetProductsByUserResponse
	if err := c.caller.Invoke(ctx, MethodGetProductsByUser, req, &resp); err != nil {
		return core.GetProductsByUserResponse{}, err
	}
	return resp, nil
}

var (
	_ core.UserBackend    = (*UserClient)(nil)
	_ core.OrderBackend   = (*OrderClient)(nil)
	_ core.ProductBackend = (*ProductClient)(nil)
)
