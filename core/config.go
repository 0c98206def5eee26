package core

import (
	"fmt"
	"strings"
)

// ServiceEndpoint binds a logical service name to a backend address. The
// set is fixed at process start; there is no dynamic discovery.
type ServiceEndpoint struct {
	Name      string `koanf:"name" mapstructure:"name"`
	Transport string `koanf:"transport" mapstructure:"transport"`
	Address   string `koanf:"address" mapstructure:"address"`
}

func (e ServiceEndpoint) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("core: endpoint name is required")
	}
	switch TransportKind(strings.TrimSpace(strings.ToLower(e.Transport))) {
	case TransportRPCUnary, TransportRPCStream, TransportLoopback:
	default:
		return fmt.Errorf("core: endpoint %q has unsupported transport %q", e.Name, e.Transport)
	}
	if strings.TrimSpace(e.Address) == "" {
		return fmt.Errorf("core: endpoint %q address is required", e.Name)
	}
	return nil
}

type Config struct {
	ServiceName string            `koanf:"service_name" mapstructure:"service_name"`
	Endpoints   []ServiceEndpoint `koanf:"endpoints" mapstructure:"endpoints"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "gateway",
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	seen := map[string]struct{}{}
	for _, endpoint := range c.Endpoints {
		if err := endpoint.Validate(); err != nil {
			return err
		}
		name := normalizeServiceName(endpoint.Name)
		if _, dup := seen[name]; dup {
			return fmt.Errorf("core: duplicate endpoint %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Endpoint returns the configured endpoint for a logical service name.
func (c Config) Endpoint(name string) (ServiceEndpoint, bool) {
	name = normalizeServiceName(name)
	for _, endpoint := range c.Endpoints {
		if normalizeServiceName(endpoint.Name) == name {
			return endpoint, true
		}
	}
	return ServiceEndpoint{}, false
}
