package backends

import (
	"context"
	"encoding/json"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-gateway/client"
	"github.com/goliatone/go-gateway/core"
	"github.com/goliatone/go-gateway/transport"
)

// Loopback addresses the default wiring binds the backends to. Config
// endpoints with transport "loopback" use these as their address.
const (
	LoopbackUsers    = "users"
	LoopbackOrders   = "orders"
	LoopbackProducts = "products"
)

// handle adapts a typed backend method into a loopback JSON handler.
func handle[Req any, Resp any](fn func(context.Context, Req) (Resp, error)) transport.LoopbackHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var req Req
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "backends: decode request").
					WithCode(core.CodeInvalidArgument).
					WithTextCode(core.GatewayErrorInvalidArgument)
			}
		}
		resp, err := fn(ctx, req)
		if err != nil {
			return nil, err
		}
		return json.Marshal(resp)
	}
}

// RegisterUserService binds the user backend's methods on the hub.
func RegisterUserService(hub *transport.Hub, address string, service core.UserBackend) error {
	if hub == nil || service == nil {
		return fmt.Errorf("backends: hub and service are required")
	}
	bindings := map[string]transport.LoopbackHandler{
		client.MethodCreateUser: handle(service.CreateUser),
		client.MethodGetUser:    handle(service.GetUser),
		client.MethodUpdateUser: handle(service.UpdateUser),
		client.MethodDeleteUser: handle(service.DeleteUser),
		client.MethodListUsers:  handle(service.ListUsers),
	}
	return bindAll(hub, address, bindings)
}

// RegisterOrderService binds the order backend's methods on the hub.
func RegisterOrderService(hub *transport.Hub, address string, service core.OrderBackend) error {
	if hub == nil || service == nil {
		return fmt.Errorf("backends: hub and service are required")
	}
	bindings := map[string]transport.LoopbackHandler{
		client.MethodCreateOrder:     handle(service.CreateOrder),
		client.MethodGetOrder:        handle(service.GetOrder),
		client.MethodGetOrdersByUser: handle(service.GetOrdersByUser),
	}
	return bindAll(hub, address, bindings)
}

// RegisterProductService binds the product backend's methods on the hub.
func RegisterProductService(hub *transport.Hub, address string, service core.ProductBackend) error {
	if hub == nil || service == nil {
		return fmt.Errorf("backends: hub and service are required")
	}
	bindings := map[string]transport.LoopbackHandler{
		client.MethodCreateProduct:     handle(service.CreateProduct),
		client.MethodGetProduct:        handle(service.GetProduct),
		client.MethodUpdateProduct:     handle(service.UpdateProduct),
		client.MethodDeleteProduct:     handle(service.DeleteProduct),
		client.MethodListProducts:      handle(service.ListProducts),
		client.MethodGetProductsByUser: handle(service.GetProductsByUser),
	}
	return bindAll(hub, address, bindings)
}

func bindAll(hub *transport.Hub, address string, bindings map[string]transport.LoopbackHandler) error {
	for method, handler := range bindings {
		if err := hub.Handle(address, method, handler); err != nil {
			return err
		}
	}
	return nil
}

// Wiring holds the default in-process deployment: all three backends bound
// to a shared hub, with the order backend verifying users against the user
// backend.
type Wiring struct {
	Hub      *transport.Hub
	Users    *UserService
	Orders   *OrderService
	Products *ProductService
}

// NewDefaultWiring builds the three backends over fresh in-memory stores
// and binds them to a new hub at the default addresses.
func NewDefaultWiring(options ...core.OrchestratorOption) (*Wiring, error) {
	hub := transport.NewHub()
	users := NewUserService(nil)
	orders, err := NewOrderService(nil, users, options...)
	if err != nil {
		return nil, err
	}
	products := NewProductService(nil)

	if err := RegisterUserService(hub, LoopbackUsers, users); err != nil {
		return nil, err
	}
	if err := RegisterOrderService(hub, LoopbackOrders, orders); err != nil {
		return nil, err
	}
	if err := RegisterProductService(hub, LoopbackProducts, products); err != nil {
		return nil, err
	}
	return &Wiring{
		Hub:      hub,
		Users:    users,
		Orders:   orders,
		Products: products,
	}, nil
}

// Config returns a gateway config routing every service over loopback.
func (w *Wiring) Config(serviceName string) core.Config {
	if serviceName == "" {
		serviceName = "gateway"
	}
	return core.Config{
		ServiceName: serviceName,
		Endpoints: []core.ServiceEndpoint{
			{Name: core.ServiceUsers, Transport: string(core.TransportLoopback), Address: LoopbackUsers},
			{Name: core.ServiceOrders, Transport: string(core.TransportLoopback), Address: LoopbackOrders},
			{Name: core.ServiceProducts, Transport: string(core.TransportLoopback), Address: LoopbackProducts},
		},
	}
}
