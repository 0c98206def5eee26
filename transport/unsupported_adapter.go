package transport

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gateway/core"
)

// UnsupportedCaller rejects every invoke with a configuration error. Kinds
// that are valid in config but carry no implementation dial to this.
type UnsupportedCaller struct {
	kind     core.TransportKind
	endpoint string
}

func unsupportedFactory(kind core.TransportKind) CallerFactory {
	return func(endpoint core.ServiceEndpoint, _ map[string]any) (Caller, error) {
		return &UnsupportedCaller{kind: kind, endpoint: endpoint.Name}, nil
	}
}

func (c *UnsupportedCaller) Kind() core.TransportKind {
	if c == nil {
		return ""
	}
	return c.kind
}

func (c *UnsupportedCaller) Invoke(context.Context, string, any, any) error {
	kind := core.TransportKind("")
	endpoint := ""
	if c != nil {
		kind = c.kind
		endpoint = c.endpoint
	}
	return transportError(
		fmt.Sprintf("transport: %s transport is not supported", kind),
		goerrors.CategoryOperation,
		core.CodeInternal,
		map[string]any{"endpoint": endpoint, "transport": string(kind)},
	)
}

func (*UnsupportedCaller) Close() error {
	return nil
}

var _ Caller = (*UnsupportedCaller)(nil)
