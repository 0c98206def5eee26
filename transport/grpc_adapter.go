package transport

import (
	"context"
	"encoding/json"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gateway/core"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
)

const jsonCodecName = "json"

// jsonCodec lets the client speak to backends without generated message
// types; requests and replies travel as JSON frames.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// GRPCCaller owns one client connection to a unary RPC backend.
type GRPCCaller struct {
	conn   *grpc.ClientConn
	target string
}

func GRPCCallerFactory(dialOptions ...grpc.DialOption) CallerFactory {
	return func(endpoint core.ServiceEndpoint, _ map[string]any) (Caller, error) {
		return NewGRPCCaller(endpoint, dialOptions...)
	}
}

func NewGRPCCaller(endpoint core.ServiceEndpoint, dialOptions ...grpc.DialOption) (*GRPCCaller, error) {
	target := strings.TrimSpace(endpoint.Address)
	if target == "" {
		return nil, transportError(
			"transport: grpc endpoint address is required",
			goerrors.CategoryOperation,
			core.CodeInternal,
			map[string]any{"endpoint": endpoint.Name},
		)
	}

	options := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(jsonCodecName)),
	}
	options = append(options, dialOptions...)

	conn, err := grpc.NewClient(target, options...)
	if err != nil {
		return nil, transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: grpc dial failed",
			core.CodeUnavailable,
			map[string]any{"endpoint": endpoint.Name, "target": target},
		)
	}
	return &GRPCCaller{conn: conn, target: target}, nil
}

func (*GRPCCaller) Kind() core.TransportKind {
	return core.TransportRPCUnary
}

func (c *GRPCCaller) Invoke(ctx context.Context, method string, in any, out any) error {
	if c == nil || c.conn == nil {
		return transportError(
			"transport: grpc caller is not connected",
			goerrors.CategoryOperation,
			core.CodeInternal,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return transportError(
			"transport: rpc method is required",
			goerrors.CategoryBadInput,
			core.CodeInvalidArgument,
			map[string]any{"target": c.target},
		)
	}

	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return mapGRPCError(err, method, c.target)
	}
	return nil
}

func (c *GRPCCaller) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// mapGRPCError folds the wire status into the gateway's error envelope so
// nothing upstream branches on gRPC types.
func mapGRPCError(err error, method string, target string) error {
	st, ok := status.FromError(err)
	if !ok {
		return transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: rpc invoke failed",
			core.CodeUnavailable,
			map[string]any{"method": method, "target": target},
		)
	}

	metadata := map[string]any{
		"method":      method,
		"target":      target,
		"status_code": st.Code().String(),
	}
	message := st.Message()
	if strings.TrimSpace(message) == "" {
		message = "rpc invoke failed"
	}

	switch st.Code() {
	case codes.NotFound:
		return transportWrapError(err, goerrors.CategoryNotFound, message, core.CodeNotFound, metadata)
	case codes.InvalidArgument:
		return transportWrapError(err, goerrors.CategoryBadInput, message, core.CodeInvalidArgument, metadata)
	case codes.FailedPrecondition:
		return transportWrapError(err, goerrors.CategoryConflict, message, core.CodeFailedPrecondition, metadata)
	case codes.Unavailable, codes.DeadlineExceeded:
		return transportWrapError(err, goerrors.CategoryExternal, message, core.CodeUnavailable, metadata)
	default:
		return transportWrapError(err, goerrors.CategoryExternal, message, core.CodeUnknown, metadata)
	}
}

var _ Caller = (*GRPCCaller)(nil)
