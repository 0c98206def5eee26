package transport

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gateway/core"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := jsonCodec{}
	if codec.Name() != "json" {
		t.Fatalf("unexpected codec name %q", codec.Name())
	}

	type payload struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	data, err := codec.Marshal(payload{ID: 4, Name: "widget"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded payload
	if err := codec.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != 4 || decoded.Name != "widget" {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestMapGRPCErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name     string
		code     codes.Code
		wantCode int
		wantText string
	}{
		{name: "not found", code: codes.NotFound, wantCode: core.CodeNotFound, wantText: core.GatewayErrorNotFound},
		{name: "invalid argument", code: codes.InvalidArgument, wantCode: core.CodeInvalidArgument, wantText: core.GatewayErrorInvalidArgument},
		{name: "failed precondition", code: codes.FailedPrecondition, wantCode: core.CodeFailedPrecondition, wantText: core.GatewayErrorFailedPrecondition},
		{name: "unavailable", code: codes.Unavailable, wantCode: core.CodeUnavailable, wantText: core.GatewayErrorUnavailable},
		{name: "deadline exceeded", code: codes.DeadlineExceeded, wantCode: core.CodeUnavailable, wantText: core.GatewayErrorUnavailable},
		{name: "internal collapses to unknown", code: codes.Internal, wantCode: core.CodeUnknown, wantText: core.GatewayErrorUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wireErr := status.Error(tc.code, "backend said no")
			mapped := mapGRPCError(wireErr, "/user.UserService/GetUser", "localhost:5001")

			var richErr *goerrors.Error
			if !goerrors.As(mapped, &richErr) {
				t.Fatalf("expected rich error, got %T", mapped)
			}
			if richErr.Code != tc.wantCode {
				t.Fatalf("expected code %d, got %d", tc.wantCode, richErr.Code)
			}
			if richErr.TextCode != tc.wantText {
				t.Fatalf("expected text code %q, got %q", tc.wantText, richErr.TextCode)
			}
			if richErr.Metadata["status_code"] != tc.code.String() {
				t.Fatalf("expected status metadata %q, got %v", tc.code.String(), richErr.Metadata["status_code"])
			}
		})
	}
}

func TestMapGRPCErrorNonStatusError(t *testing.T) {
	mapped := mapGRPCError(errors.New("socket closed"), "/user.UserService/GetUser", "localhost:5001")
	var richErr *goerrors.Error
	if !goerrors.As(mapped, &richErr) {
		t.Fatalf("expected rich error, got %T", mapped)
	}
	if richErr.TextCode != core.GatewayErrorUnavailable {
		t.Fatalf("expected unavailable envelope, got %q", richErr.TextCode)
	}
}

func TestNewGRPCCallerRequiresAddress(t *testing.T) {
	_, err := NewGRPCCaller(core.ServiceEndpoint{Name: "users", Transport: string(core.TransportRPCUnary)})
	if err == nil {
		t.Fatalf("expected missing address rejection")
	}
}
