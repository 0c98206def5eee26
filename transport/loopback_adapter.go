package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gateway/core"
)

// LoopbackHandler serves one method for an in-process backend. Payloads are
// JSON frames so in-process calls keep the same shape as wire calls.
type LoopbackHandler func(ctx context.Context, payload []byte) ([]byte, error)

// Hub holds in-process backends keyed by the loopback address from config.
type Hub struct {
	mu       sync.RWMutex
	services map[string]map[string]LoopbackHandler
}

func NewHub() *Hub {
	return &Hub{
		services: map[string]map[string]LoopbackHandler{},
	}
}

// Handle binds a method on an address. Method names follow the RPC form,
// for example "/user.UserService/GetUser".
func (h *Hub) Handle(address string, method string, handler LoopbackHandler) error {
	if h == nil {
		return fmt.Errorf("transport: loopback hub is nil")
	}
	address = strings.TrimSpace(strings.ToLower(address))
	method = strings.TrimSpace(method)
	if address == "" {
		return fmt.Errorf("transport: loopback address is required")
	}
	if method == "" {
		return fmt.Errorf("transport: loopback method is required")
	}
	if handler == nil {
		return fmt.Errorf("transport: loopback handler is nil")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	methods, ok := h.services[address]
	if !ok {
		methods = map[string]LoopbackHandler{}
		h.services[address] = methods
	}
	if _, exists := methods[method]; exists {
		return fmt.Errorf("transport: loopback method %q already bound on %q", method, address)
	}
	methods[method] = handler
	return nil
}

func (h *Hub) Factory() CallerFactory {
	return func(endpoint core.ServiceEndpoint, _ map[string]any) (Caller, error) {
		if h == nil {
			return nil, transportError(
				"transport: loopback hub is not configured",
				goerrors.CategoryOperation,
				core.CodeInternal,
				map[string]any{"endpoint": endpoint.Name},
			)
		}
		return &LoopbackCaller{
			hub:     h,
			address: strings.TrimSpace(strings.ToLower(endpoint.Address)),
		}, nil
	}
}

func (h *Hub) handler(address string, method string) (LoopbackHandler, bool) {
	if h == nil {
		return nil, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	methods, ok := h.services[address]
	if !ok {
		return nil, false
	}
	handler, ok := methods[method]
	return handler, ok
}

// LoopbackCaller dispatches to hub handlers through the same JSON frames a
// remote caller would put on the wire.
type LoopbackCaller struct {
	hub     *Hub
	address string
}

func (*LoopbackCaller) Kind() core.TransportKind {
	return core.TransportLoopback
}

func (c *LoopbackCaller) Invoke(ctx context.Context, method string, in any, out any) error {
	if c == nil || c.hub == nil {
		return transportError(
			"transport: loopback caller is not configured",
			goerrors.CategoryOperation,
			core.CodeInternal,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	method = strings.TrimSpace(method)

	handler, ok := c.hub.handler(c.address, method)
	if !ok {
		return transportError(
			fmt.Sprintf("transport: method %q not found on %q", method, c.address),
			goerrors.CategoryNotFound,
			core.CodeNotFound,
			map[string]any{"method": method, "address": c.address},
		)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: encode loopback request",
			core.CodeInvalidArgument,
			map[string]any{"method": method, "address": c.address},
		)
	}

	reply, err := handler(ctx, payload)
	if err != nil {
		return err
	}
	if out == nil || len(reply) == 0 {
		return nil
	}
	if err := json.Unmarshal(reply, out); err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: decode loopback reply",
			core.CodeUnknown,
			map[string]any{"method": method, "address": c.address},
		)
	}
	return nil
}

func (*LoopbackCaller) Close() error {
	return nil
}

var _ Caller = (*LoopbackCaller)(nil)
