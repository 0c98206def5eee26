package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-gateway/core"
	"github.com/goliatone/go-gateway/transport"
)

// Multiplexer resolves logical service names to live callers. Resolution is
// lazy: nothing is dialed until the first request for a service arrives.
// Concurrent first requests collapse into a single dial, and a successful
// caller is cached for the life of the process. Failed dials are never
// cached, so the next request retries.
type Multiplexer struct {
	config   core.Config
	registry *transport.Registry
	logger   core.Logger

	mu      sync.RWMutex
	callers map[string]transport.Caller
	group   singleflight.Group
	closed  bool
}

type MultiplexerOption func(*Multiplexer)

func WithMultiplexerLogger(logger core.Logger) MultiplexerOption {
	return func(m *Multiplexer) {
		m.logger = logger
	}
}

func NewMultiplexer(config core.Config, registry *transport.Registry, options ...MultiplexerOption) (*Multiplexer, error) {
	if registry == nil {
		return nil, fmt.Errorf("client: transport registry is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	multiplexer := &Multiplexer{
		config:   config,
		registry: registry,
		logger:   glog.Nop(),
		callers:  map[string]transport.Caller{},
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(multiplexer)
	}
	multiplexer.logger = glog.Ensure(multiplexer.logger)
	return multiplexer, nil
}

func (m *Multiplexer) User(ctx context.Context) (core.UserBackend, error) {
	caller, err := m.resolve(ctx, core.ServiceUsers)
	if err != nil {
		return nil, err
	}
	return NewUserClient(caller), nil
}

func (m *Multiplexer) Order(ctx context.Context) (core.OrderBackend, error) {
	caller, err := m.resolve(ctx, core.ServiceOrders)
	if err != nil {
		return nil, err
	}
	return NewOrderClient(caller), nil
}

func (m *Multiplexer) Product(ctx context.Context) (core.ProductBackend, error) {
	caller, err := m.resolve(ctx, core.ServiceProducts)
	if err != nil {
		return nil, err
	}
	return NewProductClient(caller), nil
}

func (m *Multiplexer) resolve(ctx context.Context, service string) (transport.Caller, error) {
	if m == nil || m.registry == nil {
		return nil, configurationError("client: multiplexer is not configured", nil)
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "client: resolve cancelled").
				WithCode(core.CodeInternal).
				WithTextCode(core.GatewayErrorConfiguration)
		}
	}

	m.mu.RLock()
	caller, ok := m.callers[service]
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, configurationError("client: multiplexer is closed", map[string]any{
			"service": service,
		})
	}
	if ok {
		return caller, nil
	}

	built, err, _ := m.group.Do(service, func() (any, error) {
		m.mu.RLock()
		cached, hit := m.callers[service]
		m.mu.RUnlock()
		if hit {
			return cached, nil
		}

		endpoint, found := m.config.Endpoint(service)
		if !found {
			return nil, goerrors.Wrap(core.ErrUnknownService, goerrors.CategoryOperation,
				fmt.Sprintf("client: no endpoint configured for %q", service)).
				WithCode(core.CodeInternal).
				WithTextCode(core.GatewayErrorConfiguration).
				WithMetadata(map[string]any{"service": service})
		}

		dialed, err := m.registry.Dial(endpoint, nil)
		if err != nil {
			m.logger.Error("backend dial failed",
				"service", service,
				"transport", endpoint.Transport,
				"error", err.Error(),
			)
			return nil, err
		}

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			_ = dialed.Close()
			return nil, configurationError("client: multiplexer is closed", map[string]any{
				"service": service,
			})
		}
		m.callers[service] = dialed
		m.mu.Unlock()

		m.logger.Info("backend resolved",
			"service", service,
			"transport", endpoint.Transport,
			"address", endpoint.Address,
		)
		return dialed, nil
	})
	if err != nil {
		return nil, err
	}
	resolved, ok := built.(transport.Caller)
	if !ok {
		return nil, configurationError("client: resolver returned unexpected type", map[string]any{
			"service": service,
		})
	}
	return resolved, nil
}

// Close releases every cached caller. The multiplexer cannot be reused
// afterwards.
func (m *Multiplexer) Close() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	var errs []error
	for service, caller := range m.callers {
		if err := caller.Close(); err != nil {
			errs = append(errs, fmt.Errorf("client: close %s: %w", service, err))
		}
	}
	m.callers = map[string]transport.Caller{}
	return errors.Join(errs...)
}

func configurationError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryOperation).
		WithCode(core.CodeInternal).
		WithTextCode(core.GatewayErrorConfiguration)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

var _ core.ClientMultiplexer = (*Multiplexer)(nil)
