package transport

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gateway/core"
)

// Registry maps transport kinds to caller factories. Dialing goes through
// the registry so the set of supported transports stays in one place.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]CallerFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: map[string]CallerFactory{},
	}
}

// NewDefaultRegistry wires the built-in transports: gRPC for rpc_unary,
// a hub-backed caller for loopback, and a rejecting factory for
// rpc_stream, which is accepted in config but has no caller yet.
func NewDefaultRegistry(hub *Hub) *Registry {
	registry := NewRegistry()
	_ = registry.Register(core.TransportRPCUnary, GRPCCallerFactory())
	_ = registry.Register(core.TransportRPCStream, unsupportedFactory(core.TransportRPCStream))
	if hub != nil {
		_ = registry.Register(core.TransportLoopback, hub.Factory())
	}
	return registry
}

func (r *Registry) Register(kind core.TransportKind, factory CallerFactory) error {
	if r == nil {
		return fmt.Errorf("transport: registry is nil")
	}
	normalized := normalizeKind(string(kind))
	if normalized == "" {
		return fmt.Errorf("transport: caller kind is required")
	}
	if factory == nil {
		return fmt.Errorf("transport: caller factory is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[normalized]; exists {
		return fmt.Errorf("transport: caller kind %q already registered", normalized)
	}
	r.factories[normalized] = factory
	return nil
}

// Dial builds a caller for the endpoint using the factory registered for
// its transport kind.
func (r *Registry) Dial(endpoint core.ServiceEndpoint, config map[string]any) (Caller, error) {
	if r == nil {
		return nil, transportError(
			"transport: registry is nil",
			goerrors.CategoryOperation,
			core.CodeInternal,
			nil,
		)
	}
	if err := endpoint.Validate(); err != nil {
		return nil, transportWrapError(
			err,
			goerrors.CategoryOperation,
			"transport: endpoint is misconfigured",
			core.CodeInternal,
			map[string]any{"endpoint": endpoint.Name},
		)
	}

	normalized := normalizeKind(endpoint.Transport)
	r.mu.RLock()
	factory := r.factories[normalized]
	r.mu.RUnlock()
	if factory == nil {
		return nil, transportError(
			fmt.Sprintf("transport: kind %q is not registered", normalized),
			goerrors.CategoryOperation,
			core.CodeInternal,
			map[string]any{"endpoint": endpoint.Name, "transport": normalized},
		)
	}

	caller, err := factory(endpoint, cloneMap(config))
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, transportError(
			fmt.Sprintf("transport: factory for %q returned nil caller", normalized),
			goerrors.CategoryOperation,
			core.CodeInternal,
			map[string]any{"endpoint": endpoint.Name},
		)
	}
	return caller, nil
}

func (r *Registry) Has(kind core.TransportKind) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[normalizeKind(string(kind))]
	return ok
}

func (r *Registry) Kinds() []string {
	if r == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func normalizeKind(kind string) string {
	return strings.TrimSpace(strings.ToLower(kind))
}

func cloneMap(input map[string]any) map[string]any {
	if len(input) == 0 {
		return map[string]any{}
	}
	output := make(map[string]any, len(input))
	for key, value := range input {
		output[key] = value
	}
	return output
}
