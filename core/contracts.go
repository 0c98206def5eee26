package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type GetUserRequest struct {
	ID int64 `json:"id"`
}

// UpdateUserRequest carries partial fields; empty strings leave the stored
// value unchanged.
type UpdateUserRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type DeleteUserRequest struct {
	ID int64 `json:"id"`
}

type DeleteUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ListUsersRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

type CreateOrderRequest struct {
	UserID         int64       `json:"userId"`
	Items          []OrderItem `json:"items"`
	IdempotencyKey string      `json:"idempotencyKey,omitempty"`
}

type GetOrderRequest struct {
	ID int64 `json:"id"`
}

type GetOrdersByUserRequest struct {
	UserID int64 `json:"userId"`
}

type GetOrdersByUserResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	UserID      int64   `json:"userId"`
}

type GetProductRequest struct {
	ProductID int64 `json:"productId"`
}

type UpdateProductRequest struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

type DeleteProductRequest struct {
	ProductID int64 `json:"productId"`
}

type DeleteProductResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ListProductsRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

type GetProductsByUserRequest struct {
	UserID int64 `json:"userId"`
}

type GetProductsByUserResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// UserBackend is the typed remote handle for the user service.
type UserBackend interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (User, error)
	GetUser(ctx context.Context, req GetUserRequest) (User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (User, error)
	DeleteUser(ctx context.Context, req DeleteUserRequest) (DeleteUserResponse, error)
	ListUsers(ctx context.Context, req ListUsersRequest) (ListUsersResponse, error)
}

// OrderBackend is the typed remote handle for the order service.
type OrderBackend interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error)
	GetOrder(ctx context.Context, req GetOrderRequest) (Order, error)
	GetOrdersByUser(ctx context.Context, req GetOrdersByUserRequest) (GetOrdersByUserResponse, error)
}

// ProductBackend is the typed remote handle for the product service.
type ProductBackend interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (Product, error)
	GetProduct(ctx context.Context, req GetProductRequest) (Product, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (Product, error)
	DeleteProduct(ctx context.Context, req DeleteProductRequest) (DeleteProductResponse, error)
	ListProducts(ctx context.Context, req ListProductsRequest) (ListProductsResponse, error)
	GetProductsByUser(ctx context.Context, req GetProductsByUserRequest) (GetProductsByUserResponse, error)
}

// ClientMultiplexer resolves logical service names to live typed handles.
// Resolution is lazy and cached; callers borrow handles per call and must
// not hold them across requests.
type ClientMultiplexer interface {
	User(ctx context.Context) (UserBackend, error)
	Order(ctx context.Context) (OrderBackend, error)
	Product(ctx context.Context) (ProductBackend, error)
	Close() error
}

// UserVerifier performs the blocking dependency check ahead of an order
// commit. Implementations wrap the user backend's GetUser.
type UserVerifier interface {
	VerifyUser(ctx context.Context, userID int64) error
}

// OrderCommitter persists a verified order. The store assigns the monotonic
// identifier; the order passed in carries ID zero.
type OrderCommitter interface {
	CommitOrder(ctx context.Context, order Order) (Order, error)
}

// IdempotencyLedger maps caller-supplied idempotency keys to committed
// orders. Optional: when absent, retried order creations may commit twice.
type IdempotencyLedger interface {
	Lookup(ctx context.Context, key string) (Order, bool, error)
	Record(ctx context.Context, key string, order Order) error
}

type ActivityEntry struct {
	ID         string         `json:"id"`
	Operation  string         `json:"operation"`
	Backend    string         `json:"backend"`
	Status     string         `json:"status"`
	ErrorCode  string         `json:"errorCode,omitempty"`
	DurationMS int64          `json:"durationMs"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ActivitySink records one entry per external operation. Sinks must not
// fail the operation; recording errors are logged and dropped.
type ActivitySink interface {
	Record(ctx context.Context, entry ActivityEntry) error
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
