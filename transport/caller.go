package transport

import (
	"context"

	"github.com/goliatone/go-gateway/core"
)

// Caller is a live connection to one backend endpoint. Invoke performs a
// single unary exchange: in is marshaled onto the wire and out is filled
// from the reply. Callers are safe for concurrent use.
type Caller interface {
	Kind() core.TransportKind
	Invoke(ctx context.Context, method string, in any, out any) error
	Close() error
}

// CallerFactory builds a caller for one configured endpoint.
type CallerFactory func(endpoint core.ServiceEndpoint, config map[string]any) (Caller, error)
