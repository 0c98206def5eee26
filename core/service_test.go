package core

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type fakeUserBackend struct {
	calls    int
	lastList ListUsersRequest
	user     User
	listResp ListUsersResponse
	err      error
}

func (b *fakeUserBackend) CreateUser(_ context.Context, req CreateUserRequest) (User, error) {
	b.calls++
	if b.err != nil {
		return User{}, b.err
	}
	user := b.user
	user.Name = req.Name
	user.Email = req.Email
	return user, nil
}

func (b *fakeUserBackend) GetUser(_ context.Context, _ GetUserRequest) (User, error) {
	b.calls++
	if b.err != nil {
		return User{}, b.err
	}
	return b.user, nil
}

func (b *fakeUserBackend) UpdateUser(_ context.Context, _ UpdateUserRequest) (User, error) {
	b.calls++
	if b.err != nil {
		return User{}, b.err
	}
	return b.user, nil
}

func (b *fakeUserBackend) DeleteUser(_ context.Context, _ DeleteUserRequest) (DeleteUserResponse, error) {
	b.calls++
	if b.err != nil {
		return DeleteUserResponse{}, b.err
	}
	return DeleteUserResponse{Success: true, Message: "user deleted successfully"}, nil
}

func (b *fakeUserBackend) ListUsers(_ context.Context, req ListUsersRequest) (ListUsersResponse, error) {
	b.calls++
	b.lastList = req
	if b.err != nil {
		return ListUsersResponse{}, b.err
	}
	resp := b.listResp
	resp.Page = req.Page
	resp.Limit = req.Limit
	return resp, nil
}

type fakeOrderBackend struct {
	calls int
	order Order
	err   error
}

func (b *fakeOrderBackend) CreateOrder(_ context.Context, req CreateOrderRequest) (Order, error) {
	b.calls++
	if b.err != nil {
		return Order{}, b.err
	}
	order := b.order
	order.UserID = req.UserID
	order.Items = req.Items
	return order, nil
}

func (b *fakeOrderBackend) GetOrder(_ context.Context, _ GetOrderRequest) (Order, error) {
	b.calls++
	if b.err != nil {
		return Order{}, b.err
	}
	return b.order, nil
}

func (b *fakeOrderBackend) GetOrdersByUser(_ context.Context, _ GetOrdersByUserRequest) (GetOrdersByUserResponse, error) {
	b.calls++
	if b.err != nil {
		return GetOrdersByUserResponse{}, b.err
	}
	return GetOrdersByUserResponse{Orders: []Order{b.order}, Total: 1}, nil
}

type fakeProductBackend struct {
	calls    int
	lastList ListProductsRequest
	product  Product
	err      error
}

func (b *fakeProductBackend) CreateProduct(_ context.Context, req CreateProductRequest) (Product, error) {
	b.calls++
	if b.err != nil {
		return Product{}, b.err
	}
	product := b.product
	product.Name = req.Name
	product.UserID = req.UserID
	return product, nil
}

func (b *fakeProductBackend) GetProduct(_ context.Context, _ GetProductRequest) (Product, error) {
	b.calls++
	if b.err != nil {
		return Product{}, b.err
	}
	return b.product, nil
}

func (b *fakeProductBackend) UpdateProduct(_ context.Context, _ UpdateProductRequest) (Product, error) {
	b.calls++
	if b.err != nil {
		return Product{}, b.err
	}
	return b.product, nil
}

func (b *fakeProductBackend) DeleteProduct(_ context.Context, _ DeleteProductRequest) (DeleteProductResponse, error) {
	b.calls++
	if b.err != nil {
		return DeleteProductResponse{}, b.err
	}
	return DeleteProductResponse{Success: true, Message: "product deleted successfully"}, nil
}

func (b *fakeProductBackend) ListProducts(_ context.Context, req ListProductsRequest) (ListProductsResponse, error) {
	b.calls++
	b.lastList = req
	if b.err != nil {
		return ListProductsResponse{}, b.err
	}
	return ListProductsResponse{Page: req.Page, Limit: req.Limit}, nil
}

func (b *fakeProductBackend) GetProductsByUser(_ context.Context, _ GetProductsByUserRequest) (GetProductsByUserResponse, error) {
	b.calls++
	if b.err != nil {
		return GetProductsByUserResponse{}, b.err
	}
	return GetProductsByUserResponse{Products: []Product{b.product}, Total: 1}, nil
}

type fakeMultiplexer struct {
	users    *fakeUserBackend
	orders   *fakeOrderBackend
	products *fakeProductBackend
	closed   bool
}

func newFakeMultiplexer() *fakeMultiplexer {
	return &fakeMultiplexer{
		users:    &fakeUserBackend{},
		orders:   &fakeOrderBackend{},
		products: &fakeProductBackend{},
	}
}

func (m *fakeMultiplexer) User(context.Context) (UserBackend, error) {
	return m.users, nil
}

func (m *fakeMultiplexer) Order(context.Context) (OrderBackend, error) {
	return m.orders, nil
}

func (m *fakeMultiplexer) Product(context.Context) (ProductBackend, error) {
	return m.products, nil
}

func (m *fakeMultiplexer) Close() error {
	m.closed = true
	return nil
}

type capturingMetrics struct {
	counters   map[string]int64
	histograms map[string]int
}

func newCapturingMetrics() *capturingMetrics {
	return &capturingMetrics{
		counters:   map[string]int64{},
		histograms: map[string]int{},
	}
}

func (m *capturingMetrics) IncCounter(_ context.Context, name string, value int64, _ map[string]string) {
	m.counters[name] += value
}

func (m *capturingMetrics) ObserveHistogram(_ context.Context, name string, _ float64, _ map[string]string) {
	m.histograms[name]++
}

func newTestGateway(t *testing.T, mux *fakeMultiplexer, extra ...Option) *Gateway {
	t.Helper()
	options := append([]Option{WithMultiplexer(mux)}, extra...)
	gw, err := NewGateway(Config{}, options...)
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gw
}

func TestNewGatewayRequiresMultiplexer(t *testing.T) {
	_, err := NewGateway(Config{})
	if err == nil {
		t.Fatalf("expected configuration error without multiplexer")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.TextCode != GatewayErrorConfiguration {
		t.Fatalf("expected configuration text code, got %q", richErr.TextCode)
	}
}

func TestGatewayListUsersAppliesPaginationDefaults(t *testing.T) {
	mux := newFakeMultiplexer()
	gw := newTestGateway(t, mux)

	resp, err := gw.ListUsers(context.Background(), ListUsersRequest{})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if mux.users.lastList.Page != 1 || mux.users.lastList.Limit != 10 {
		t.Fatalf("expected backend to receive page=1 limit=10, got page=%d limit=%d",
			mux.users.lastList.Page, mux.users.lastList.Limit)
	}
	if resp.Page != 1 || resp.Limit != 10 {
		t.Fatalf("expected echoed defaults, got page=%d limit=%d", resp.Page, resp.Limit)
	}

	if _, err := gw.ListUsers(context.Background(), ListUsersRequest{Page: 2, Limit: 5000}); err != nil {
		t.Fatalf("list users with oversized limit: %v", err)
	}
	if mux.users.lastList.Page != 2 || mux.users.lastList.Limit != MaxLimit {
		t.Fatalf("expected limit capped at %d, got page=%d limit=%d",
			MaxLimit, mux.users.lastList.Page, mux.users.lastList.Limit)
	}
}

func TestGatewayListProductsAppliesPaginationDefaults(t *testing.T) {
	mux := newFakeMultiplexer()
	gw := newTestGateway(t, mux)

	if _, err := gw.ListProducts(context.Background(), ListProductsRequest{Page: -1, Limit: 0}); err != nil {
		t.Fatalf("list products: %v", err)
	}
	if mux.products.lastList.Page != 1 || mux.products.lastList.Limit != 10 {
		t.Fatalf("expected backend to receive page=1 limit=10, got page=%d limit=%d",
			mux.products.lastList.Page, mux.products.lastList.Limit)
	}
}

func TestGatewayGetUserPassThrough(t *testing.T) {
	mux := newFakeMultiplexer()
	mux.users.user = User{ID: 8, Name: "Ada", Email: "ada@example.com"}
	gw := newTestGateway(t, mux)

	user, err := gw.GetUser(context.Background(), GetUserRequest{ID: 8})
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.ID != 8 || user.Name != "Ada" || user.Email != "ada@example.com" {
		t.Fatalf("expected backend payload passed through, got %+v", user)
	}
	if mux.users.calls != 1 {
		t.Fatalf("expected a single backend call, got %d", mux.users.calls)
	}
}

func TestGatewayNormalizesBackendFailure(t *testing.T) {
	mux := newFakeMultiplexer()
	mux.users.err = errors.New("user 99 not found")
	gw := newTestGateway(t, mux)

	_, err := gw.GetUser(context.Background(), GetUserRequest{ID: 99})
	if err == nil {
		t.Fatalf("expected backend failure")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.Code != CodeNotFound || richErr.TextCode != GatewayErrorNotFound {
		t.Fatalf("expected NOT_FOUND envelope, got code=%d text=%q", richErr.Code, richErr.TextCode)
	}
}

func TestGatewayValidatesInputBeforeRouting(t *testing.T) {
	mux := newFakeMultiplexer()
	gw := newTestGateway(t, mux)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{name: "create user missing name", call: func() error {
			_, err := gw.CreateUser(ctx, CreateUserRequest{Email: "a@b.co"})
			return err
		}},
		{name: "create user missing email", call: func() error {
			_, err := gw.CreateUser(ctx, CreateUserRequest{Name: "Ada"})
			return err
		}},
		{name: "get user missing id", call: func() error {
			_, err := gw.GetUser(ctx, GetUserRequest{})
			return err
		}},
		{name: "get order missing id", call: func() error {
			_, err := gw.GetOrder(ctx, GetOrderRequest{})
			return err
		}},
		{name: "create product negative price", call: func() error {
			_, err := gw.CreateProduct(ctx, CreateProductRequest{Name: "x", Price: -1, UserID: 1})
			return err
		}},
		{name: "create order without items", call: func() error {
			_, err := gw.CreateOrder(ctx, CreateOrderRequest{UserID: 1})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil {
				t.Fatalf("expected validation failure")
			}
			var richErr *goerrors.Error
			if !goerrors.As(err, &richErr) {
				t.Fatalf("expected rich error, got %T", err)
			}
			if richErr.Code != CodeInvalidArgument || richErr.TextCode != GatewayErrorInvalidArgument {
				t.Fatalf("expected INVALID_ARGUMENT envelope, got code=%d text=%q",
					richErr.Code, richErr.TextCode)
			}
		})
	}
	if mux.users.calls != 0 || mux.orders.calls != 0 || mux.products.calls != 0 {
		t.Fatalf("expected no backend calls for invalid input, got users=%d orders=%d products=%d",
			mux.users.calls, mux.orders.calls, mux.products.calls)
	}
}

func TestGatewayRecordsActivityEntries(t *testing.T) {
	mux := newFakeMultiplexer()
	mux.users.user = User{ID: 3}
	sink := NewMemoryActivitySink(16)
	fixed := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	gw := newTestGateway(t, mux,
		WithActivitySink(sink),
		WithClock(func() time.Time { return fixed }),
	)
	ctx := context.Background()

	if _, err := gw.GetUser(ctx, GetUserRequest{ID: 3}); err != nil {
		t.Fatalf("get user: %v", err)
	}
	mux.users.err = errors.New("user 4 not found")
	if _, err := gw.GetUser(ctx, GetUserRequest{ID: 4}); err == nil {
		t.Fatalf("expected failure for missing user")
	}

	entries := sink.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 activity entries, got %d", len(entries))
	}
	if entries[0].Operation != "get_user" || entries[0].Status != "success" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[0].ID == "" {
		t.Fatalf("expected generated entry id")
	}
	if !entries[0].CreatedAt.Equal(fixed) {
		t.Fatalf("expected clock timestamp, got %v", entries[0].CreatedAt)
	}
	if entries[1].Status != "failure" {
		t.Fatalf("expected failure entry, got %+v", entries[1])
	}
	if entries[1].ErrorCode != GatewayErrorNotFound {
		t.Fatalf("expected GATEWAY_NOT_FOUND error code, got %q", entries[1].ErrorCode)
	}
}

func TestGatewayRecordsMetrics(t *testing.T) {
	mux := newFakeMultiplexer()
	metrics := newCapturingMetrics()
	gw := newTestGateway(t, mux, WithMetricsRecorder(metrics))

	if _, err := gw.ListUsers(context.Background(), ListUsersRequest{}); err != nil {
		t.Fatalf("list users: %v", err)
	}
	if metrics.counters["gateway.list_users.total"] != 1 {
		t.Fatalf("expected counter increment, got %+v", metrics.counters)
	}
	if metrics.histograms["gateway.list_users.duration_ms"] != 1 {
		t.Fatalf("expected duration observation, got %+v", metrics.histograms)
	}
}

func TestGatewayCreateOrderReplaysLedgerHit(t *testing.T) {
	mux := newFakeMultiplexer()
	ledger := newMemoryLedger()
	recorded := Order{ID: 42, UserID: 6, TotalAmount: 30, Status: OrderStatusPending}
	if err := ledger.Record(context.Background(), "dup-key", recorded); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	gw := newTestGateway(t, mux, WithIdempotencyLedger(ledger))

	order, err := gw.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:         6,
		Items:          []OrderItem{{ProductID: 1, Quantity: 3, Price: 10}},
		IdempotencyKey: "dup-key",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != 42 {
		t.Fatalf("expected replayed order 42, got %d", order.ID)
	}
	if mux.orders.calls != 0 {
		t.Fatalf("expected no backend call on replay, got %d", mux.orders.calls)
	}
}

func TestGatewayCreateOrderRecordsLedger(t *testing.T) {
	mux := newFakeMultiplexer()
	mux.orders.order = Order{ID: 11, TotalAmount: 30, Status: OrderStatusPending}
	ledger := newMemoryLedger()
	gw := newTestGateway(t, mux, WithIdempotencyLedger(ledger))

	if _, err := gw.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:         2,
		Items:          []OrderItem{{ProductID: 1, Quantity: 3, Price: 10}},
		IdempotencyKey: "fresh-key",
	}); err != nil {
		t.Fatalf("create order: %v", err)
	}
	stored, found, err := ledger.Lookup(context.Background(), "fresh-key")
	if err != nil || !found {
		t.Fatalf("expected ledger entry, found=%v err=%v", found, err)
	}
	if stored.ID != 11 {
		t.Fatalf("expected order 11 in ledger, got %d", stored.ID)
	}
}

func TestGatewayCloseReleasesMultiplexer(t *testing.T) {
	mux := newFakeMultiplexer()
	gw := newTestGateway(t, mux)
	if err := gw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !mux.closed {
		t.Fatalf("expected multiplexer closed")
	}
}
