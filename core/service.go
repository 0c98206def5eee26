package core

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Gateway is the single-hop request router. Every external operation maps
// to exactly one backend call: resolve the typed handle through the
// multiplexer, invoke one remote operation, and pass the result through
// untouched. Failures leave through the error normalizer.
type Gateway struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	multiplexer       ClientMultiplexer
	activitySink      ActivitySink
	idempotencyLedger IdempotencyLedger
	now               func() time.Time
}

func NewGateway(runtime Config, options ...Option) (*Gateway, error) {
	builder := defaultGatewayBuilder(runtime)
	for _, option := range options {
		if option == nil {
			continue
		}
		option(&builder)
	}

	builder.loggerProvider, builder.logger = glog.Resolve("gateway", builder.loggerProvider, builder.logger)
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.now == nil {
		builder.now = func() time.Time {
			return time.Now().UTC()
		}
	}
	if builder.multiplexer == nil {
		return nil, configurationError("core: client multiplexer is required", nil)
	}

	loaded, err := builder.configProvider.Load(context.Background(), DefaultConfig())
	if err != nil {
		return nil, configurationError("core: config load failed", map[string]any{
			"cause": err.Error(),
		})
	}
	resolved, err := builder.optionsResolver.Resolve(DefaultConfig(), loaded, builder.runtimeConfig)
	if err != nil {
		return nil, configurationError("core: config resolution failed", map[string]any{
			"cause": err.Error(),
		})
	}

	return &Gateway{
		config:            resolved,
		logger:            glog.Ensure(builder.logger),
		loggerProvider:    builder.loggerProvider,
		metricsRecorder:   builder.metricsRecorder,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		multiplexer:       builder.multiplexer,
		activitySink:      builder.activitySink,
		idempotencyLedger: builder.idempotencyLedger,
		now:               builder.now,
	}, nil
}

func (g *Gateway) Config() Config {
	if g == nil {
		return Config{}
	}
	return g.config
}

func (g *Gateway) Logger() Logger {
	if g == nil {
		return glog.Nop()
	}
	return g.logger
}

// Close releases every cached backend handle.
func (g *Gateway) Close() error {
	if g == nil || g.multiplexer == nil {
		return nil
	}
	return g.multiplexer.Close()
}

func (g *Gateway) mapError(err error) error {
	if err == nil {
		return nil
	}
	if g != nil && g.errorMapper != nil {
		if mapped := g.errorMapper(err); mapped != nil {
			return mapped
		}
	}
	return NormalizeError(err)
}

// finish maps the failure, records the observation, and returns the mapped
// error so each operation ends in a single call.
func (g *Gateway) finish(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	backend string,
	err error,
	fields map[string]any,
) error {
	if err != nil {
		err = g.mapError(err)
	}
	g.observeOperation(ctx, startedAt, operation, backend, err, fields)
	return err
}

func (g *Gateway) invalidInput(message string) error {
	if g != nil && g.errorFactory != nil {
		return ensureGatewayErrorEnvelope(
			g.errorFactory(message, goerrors.CategoryBadInput).
				WithCode(CodeInvalidArgument).
				WithTextCode(GatewayErrorInvalidArgument),
		)
	}
	return badInputError(message)
}

func (g *Gateway) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	startedAt := g.now()
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" {
		return User{}, g.finish(ctx, startedAt, "create_user", ServiceUsers,
			g.invalidInput("user name is required"), nil)
	}
	if req.Email == "" {
		return User{}, g.finish(ctx, startedAt, "create_user", ServiceUsers,
			g.invalidInput("user email is required"), nil)
	}

	backend, err := g.multiplexer.User(ctx)
	if err != nil {
		return User{}, g.finish(ctx, startedAt, "create_user", ServiceUsers, err, nil)
	}
	user, err := backend.CreateUser(ctx, req)
	if err != nil {
		return User{}, g.finish(ctx, startedAt, "create_user", ServiceUsers, err, map[string]any{
			"email": req.Email,
		})
	}
	g.observeOperation(ctx, startedAt, "create_user", ServiceUsers, nil, map[string]any{
		"user_id": user.ID,
	})
	return user, nil
}

func (g *Gateway) GetUser(ctx context.Context, req GetUserRequest) (User, error) {
	startedAt := g.now()
	if req.ID <= 0 {
		return User{}, g.finish(ctx, startedAt, "get_user", ServiceUsers,
			g.invalidInput("user id is required"), nil)
	}
	backend, err := g.multiplexer.User(ctx)
	if err != nil {
		return User{}, g.finish(ctx, startedAt, "get_user", ServiceUsers, err, nil)
	}
	user, err := backend.GetUser(ctx, req)
	if err != nil {
		return User{}, g.finish(ctx, startedAt, "get_user", ServiceUsers, err, map[string]any{
			"user_id": req.ID,
		})
	}
	g.observeOperation(ctx, startedAt, "get_user", ServiceUsers, nil, map[string]any{
		"user_id": req.ID,
	})
	return user, nil
}

func (g *Gateway) UpdateUser(ctx context.Context, req UpdateUserRequest) (User, error) {
	startedAt := g.now()
	if req.ID <= 0 {
		return User{}, g.finish(ctx, startedAt, "update_user", ServiceUsers,
			g.invalidInput("user id is required"), nil)
	}
	backend, err := g.multiplexer.User(ctx)
	if err != nil {
		return User{}, g.finish(ctx, startedAt, "update_user", ServiceUsers, err, nil)
	}
	user, err := backend.UpdateUser(ctx, req)
	if err != nil {
		return User{}, g.finish(ctx, startedAt, "update_user", ServiceUsers, err, map[string]any{
			"user_id": req.ID,
		})
	}
	g.observeOperation(ctx, startedAt, "update_user", ServiceUsers, nil, map[string]any{
		"user_id": req.ID,
	})
	return user, nil
}

func (g *Gateway) DeleteUser(ctx context.Context, req DeleteUserRequest) (DeleteUserResponse, error) {
	startedAt := g.now()
	if req.ID <= 0 {
		return DeleteUserResponse{}, g.finish(ctx, startedAt, "delete_user", ServiceUsers,
			g.invalidInput("user id is required"), nil)
	}
	backend, err := g.multiplexer.User(ctx)
	if err != nil {
		return DeleteUserResponse{}, g.finish(ctx, startedAt, "delete_user", ServiceUsers, err, nil)
	}
	resp, err := backend.DeleteUser(ctx, req)
	if err != nil {
		return DeleteUserResponse{}, g.finish(ctx, startedAt, "delete_user", ServiceUsers, err, map[string]any{
			"user_id": req.ID,
		})
	}
	g.observeOperation(ctx, startedAt, "delete_user", ServiceUsers, nil, map[string]any{
		"user_id": req.ID,
		"success": resp.Success,
	})
	return resp, nil
}

// ListUsers applies the pagination defaults before routing; the backend
// always receives a fully specified page request.
func (g *Gateway) ListUsers(ctx context.Context, req ListUsersRequest) (ListUsersResponse, error) {
	startedAt := g.now()
	page := PageRequest{Page: req.Page, Limit: req.Limit}.Normalize()
	req.Page, req.Limit = page.Page, page.Limit

	backend, err := g.multiplexer.User(ctx)
	if err != nil {
		return ListUsersResponse{}, g.finish(ctx, startedAt, "list_users", ServiceUsers, err, nil)
	}
	resp, err := backend.ListUsers(ctx, req)
	if err != nil {
		return ListUsersResponse{}, g.finish(ctx, startedAt, "list_users", ServiceUsers, err, map[string]any{
			"page":  req.Page,
			"limit": req.Limit,
		})
	}
	g.observeOperation(ctx, startedAt, "list_users", ServiceUsers, nil, map[string]any{
		"page":  req.Page,
		"limit": req.Limit,
		"total": resp.Total,
	})
	return resp, nil
}

func (g *Gateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	startedAt := g.now()
	draft := OrderDraft{
		UserID:         req.UserID,
		Items:          req.Items,
		IdempotencyKey: strings.TrimSpace(req.IdempotencyKey),
	}
	if err := draft.Validate(); err != nil {
		return Order{}, g.finish(ctx, startedAt, "create_order", ServiceOrders,
			g.invalidInput(err.Error()), nil)
	}
	req.IdempotencyKey = draft.IdempotencyKey

	if g.idempotencyLedger != nil && req.IdempotencyKey != "" {
		if replayed, ok, err := g.idempotencyLedger.Lookup(ctx, req.IdempotencyKey); err == nil && ok {
			g.observeOperation(ctx, startedAt, "create_order", ServiceOrders, nil, map[string]any{
				"order_id": replayed.ID,
				"user_id":  replayed.UserID,
				"replayed": true,
			})
			return replayed, nil
		}
	}

	backend, err := g.multiplexer.Order(ctx)
	if err != nil {
		return Order{}, g.finish(ctx, startedAt, "create_order", ServiceOrders, err, nil)
	}
	order, err := backend.CreateOrder(ctx, req)
	if err != nil {
		return Order{}, g.finish(ctx, startedAt, "create_order", ServiceOrders, err, map[string]any{
			"user_id": req.UserID,
		})
	}

	if g.idempotencyLedger != nil && req.IdempotencyKey != "" {
		if err := g.idempotencyLedger.Record(ctx, req.IdempotencyKey, order); err != nil {
			g.logError(ctx, "idempotency record failed", map[string]any{
				"key":   req.IdempotencyKey,
				"error": err.Error(),
			})
		}
	}
	g.observeOperation(ctx, startedAt, "create_order", ServiceOrders, nil, map[string]any{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}

func (g *Gateway) GetOrder(ctx context.Context, req GetOrderRequest) (Order, error) {
	startedAt := g.now()
	if req.ID <= 0 {
		return Order{}, g.finish(ctx, startedAt, "get_order", ServiceOrders,
			g.invalidInput("order id is required"), nil)
	}
	backend, err := g.multiplexer.Order(ctx)
	if err != nil {
		return Order{}, g.finish(ctx, startedAt, "get_order", ServiceOrders, err, nil)
	}
	order, err := backend.GetOrder(ctx, req)
	if err != nil {
		return Order{}, g.finish(ctx, startedAt, "get_order", ServiceOrders, err, map[string]any{
			"order_id": req.ID,
		})
	}
	g.observeOperation(ctx, startedAt, "get_order", ServiceOrders, nil, map[string]any{
		"order_id": req.ID,
	})
	return order, nil
}

func (g *Gateway) GetOrdersByUser(ctx context.Context, req GetOrdersByUserRequest) (GetOrdersByUserResponse, error) {
	startedAt := g.now()
	if req.UserID <= 0 {
		return GetOrdersByUserResponse{}, g.finish(ctx, startedAt, "get_orders_by_user", ServiceOrders,
			g.invalidInput("user id is required"), nil)
	}
	backend, err := g.multiplexer.Order(ctx)
	if err != nil {
		return GetOrdersByUserResponse{}, g.finish(ctx, startedAt, "get_orders_by_user", ServiceOrders, err, nil)
	}
	resp, err := backend.GetOrdersByUser(ctx, req)
	if err != nil {
		return GetOrdersByUserResponse{}, g.finish(ctx, startedAt, "get_orders_by_user", ServiceOrders, err, map[string]any{
			"user_id": req.UserID,
		})
	}
	g.observeOperation(ctx, startedAt, "get_orders_by_user", ServiceOrders, nil, map[string]any{
		"user_id": req.UserID,
		"total":   resp.Total,
	})
	return resp, nil
}

func (g *Gateway) CreateProduct(ctx context.Context, req CreateProductRequest) (Product, error) {
	startedAt := g.now()
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return Product{}, g.finish(ctx, startedAt, "create_product", ServiceProducts,
			g.invalidInput("product name is required"), nil)
	}
	if req.Price < 0 {
		return Product{}, g.finish(ctx, startedAt, "create_product", ServiceProducts,
			g.invalidInput("product price must not be negative"), nil)
	}
	if req.UserID <= 0 {
		return Product{}, g.finish(ctx, startedAt, "create_product", ServiceProducts,
			g.invalidInput("product owner id is required"), nil)
	}
	backend, err := g.multiplexer.Product(ctx)
	if err != nil {
		return Product{}, g.finish(ctx, startedAt, "create_product", ServiceProducts, err, nil)
	}
	product, err := backend.CreateProduct(ctx, req)
	if err != nil {
		return Product{}, g.finish(ctx, startedAt, "create_product", ServiceProducts, err, map[string]any{
			"user_id": req.UserID,
		})
	}
	g.observeOperation(ctx, startedAt, "create_product", ServiceProducts, nil, map[string]any{
		"product_id": product.ID,
		"user_id":    product.UserID,
	})
	return product, nil
}

func (g *Gateway) GetProduct(ctx context.Context, req GetProductRequest) (Product, error) {
	startedAt := g.now()
	if req.ProductID <= 0 {
		return Product{}, g.finish(ctx, startedAt, "get_product", ServiceProducts,
			g.invalidInput("product id is required"), nil)
	}
	backend, err := g.multiplexer.Product(ctx)
	if err != nil {
		return Product{}, g.finish(ctx, startedAt, "get_product", ServiceProducts, err, nil)
	}
	product, err := backend.GetProduct(ctx, req)
	if err != nil {
		return Product{}, g.finish(ctx, startedAt, "get_product", ServiceProducts, err, map[string]any{
			"product_id": req.ProductID,
		})
	}
	g.observeOperation(ctx, startedAt, "get_product", ServiceProducts, nil, map[string]any{
		"product_id": req.ProductID,
	})
	return product, nil
}

func (g *Gateway) UpdateProduct(ctx context.Context, req UpdateProductRequest) (Product, error) {
	startedAt := g.now()
	if req.ProductID <= 0 {
		return Product{}, g.finish(ctx, startedAt, "update_product", ServiceProducts,
			g.invalidInput("product id is required"), nil)
	}
	if req.Price < 0 {
		return Product{}, g.finish(ctx, startedAt, "update_product", ServiceProducts,
			g.invalidInput("product price must not be negative"), nil)
	}
	backend, err := g.multiplexer.Product(ctx)
	if err != nil {
		return Product{}, g.finish(ctx, startedAt, "update_product", ServiceProducts, err, nil)
	}
	product, err := backend.UpdateProduct(ctx, req)
	if err != nil {
		return Product{}, g.finish(ctx, startedAt, "update_product", ServiceProducts, err, map[string]any{
			"product_id": req.ProductID,
		})
	}
	g.observeOperation(ctx, startedAt, "update_product", ServiceProducts, nil, map[string]any{
		"product_id": req.ProductID,
	})
	return product, nil
}

func (g *Gateway) DeleteProduct(ctx context.Context, req DeleteProductRequest) (DeleteProductResponse, error) {
	startedAt := g.now()
	if req.ProductID <= 0 {
		return DeleteProductResponse{}, g.finish(ctx, startedAt, "delete_product", ServiceProducts,
			g.invalidInput("product id is required"), nil)
	}
	backend, err := g.multiplexer.Product(ctx)
	if err != nil {
		return DeleteProductResponse{}, g.finish(ctx, startedAt, "delete_product", ServiceProducts, err, nil)
	}
	resp, err := backend.DeleteProduct(ctx, req)
	if err != nil {
		return DeleteProductResponse{}, g.finish(ctx, startedAt, "delete_product", ServiceProducts, err, map[string]any{
			"product_id": req.ProductID,
		})
	}
	g.observeOperation(ctx, startedAt, "delete_product", ServiceProducts, nil, map[string]any{
		"product_id": req.ProductID,
		"success":    resp.Success,
	})
	return resp, nil
}

func (g *Gateway) ListProducts(ctx context.Context, req ListProductsRequest) (ListProductsResponse, error) {
	startedAt := g.now()
	page := PageRequest{Page: req.Page, Limit: req.Limit}.Normalize()
	req.Page, req.Limit = page.Page, page.Limit

	backend, err := g.multiplexer.Product(ctx)
	if err != nil {
		return ListProductsResponse{}, g.finish(ctx, startedAt, "list_products", ServiceProducts, err, nil)
	}
	resp, err := backend.ListProducts(ctx, req)
	if err != nil {
		return ListProductsResponse{}, g.finish(ctx, startedAt, "list_products", ServiceProducts, err, map[string]any{
			"page":  req.Page,
			"limit": req.Limit,
		})
	}
	g.observeOperation(ctx, startedAt, "list_products", ServiceProducts, nil, map[string]any{
		"page":  req.Page,
		"limit": req.Limit,
		"total": resp.Total,
	})
	return resp, nil
}

func (g *Gateway) GetProductsByUser(ctx context.Context, req GetProductsByUserRequest) (GetProductsByUserResponse, error) {
	startedAt := g.now()
	if req.UserID <= 0 {
		return GetProductsByUserResponse{}, g.finish(ctx, startedAt, "get_products_by_user", ServiceProducts,
			g.invalidInput("user id is required"), nil)
	}
	backend, err := g.multiplexer.Product(ctx)
	if err != nil {
		return GetProductsByUserResponse{}, g.finish(ctx, startedAt, "get_products_by_user", ServiceProducts, err, nil)
	}
	resp, err := backend.GetProductsByUser(ctx, req)
	if err != nil {
		return GetProductsByUserResponse{}, g.finish(ctx, startedAt, "get_products_by_user", ServiceProducts, err, map[string]any{
			"user_id": req.UserID,
		})
	}
	g.observeOperation(ctx, startedAt, "get_products_by_user", ServiceProducts, nil, map[string]any{
		"user_id": req.UserID,
		"total":   resp.Total,
	})
	return resp, nil
}
