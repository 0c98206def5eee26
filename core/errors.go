package core

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Stable text codes every caller-facing surface can branch on. Callers must
// never need to parse Message.
const (
	GatewayErrorNotFound           = "GATEWAY_NOT_FOUND"
	GatewayErrorInvalidArgument    = "GATEWAY_INVALID_ARGUMENT"
	GatewayErrorFailedPrecondition = "GATEWAY_FAILED_PRECONDITION"
	GatewayErrorUnavailable        = "GATEWAY_UNAVAILABLE"
	GatewayErrorConfiguration      = "GATEWAY_CONFIGURATION_ERROR"
	GatewayErrorUnknown            = "GATEWAY_UNKNOWN"
)

// Transport-neutral numeric codes, matching gRPC status numbers so the
// envelope survives the wire unchanged.
const (
	CodeUnknown            = 2
	CodeInvalidArgument    = 3
	CodeNotFound           = 5
	CodeFailedPrecondition = 9
	CodeInternal           = 13
	CodeUnavailable        = 14
)

// CanonicalError is the one failure shape external callers observe.
type CanonicalError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type errorTokenRule struct {
	token    string
	category goerrors.Category
	textCode string
}

// Ordered token table for classifying free-text backend errors. First match
// wins; extend here rather than matching strings at call sites.
var errorTokenRules = []errorTokenRule{
	{token: "not found", category: goerrors.CategoryNotFound, textCode: GatewayErrorNotFound},
	{token: "validation", category: goerrors.CategoryValidation, textCode: GatewayErrorInvalidArgument},
	{token: "invalid", category: goerrors.CategoryBadInput, textCode: GatewayErrorInvalidArgument},
	{token: "required", category: goerrors.CategoryBadInput, textCode: GatewayErrorInvalidArgument},
	{token: "unavailable", category: goerrors.CategoryExternal, textCode: GatewayErrorUnavailable},
	{token: "connection refused", category: goerrors.CategoryExternal, textCode: GatewayErrorUnavailable},
}

// NormalizeError converts any backend-raised failure into the canonical
// envelope. Total over non-nil errors, pure, and deterministic.
func NormalizeError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureGatewayErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	for _, rule := range errorTokenRules {
		if strings.Contains(msg, rule.token) {
			return newGatewayError(err.Error(), rule.category, rule.textCode)
		}
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureGatewayErrorEnvelope(mapped)
}

// AsCanonical renders any failure as the wire-facing triple.
func AsCanonical(err error) CanonicalError {
	mapped := NormalizeError(err)
	if mapped == nil {
		return CanonicalError{}
	}
	return CanonicalError{
		Code:    mapped.Code,
		Message: mapped.Message,
		Details: mapped.Metadata,
	}
}

func newGatewayError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureGatewayErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureGatewayErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = gatewayStatusCode(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultGatewayTextCode(err.Category)
	}
	if strings.TrimSpace(err.Message) == "" {
		if err.Category == goerrors.CategoryInternal {
			err.Message = "internal error"
		} else {
			err.Message = "unknown error"
		}
	}
	return err
}

func defaultGatewayTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return GatewayErrorInvalidArgument
	case goerrors.CategoryNotFound:
		return GatewayErrorNotFound
	case goerrors.CategoryConflict:
		return GatewayErrorFailedPrecondition
	case goerrors.CategoryExternal:
		return GatewayErrorUnavailable
	case goerrors.CategoryOperation:
		return GatewayErrorConfiguration
	default:
		return GatewayErrorUnknown
	}
}

func gatewayStatusCode(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return CodeInvalidArgument
	case goerrors.CategoryNotFound:
		return CodeNotFound
	case goerrors.CategoryConflict:
		return CodeFailedPrecondition
	case goerrors.CategoryExternal:
		return CodeUnavailable
	case goerrors.CategoryOperation:
		return CodeInternal
	default:
		return CodeUnknown
	}
}

func configurationError(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryOperation).
		WithCode(CodeInternal).
		WithTextCode(GatewayErrorConfiguration)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func unavailableError(source error, message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(CodeUnavailable).
		WithTextCode(GatewayErrorUnavailable)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func preconditionError(source error, message string) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryConflict).
		WithCode(CodeFailedPrecondition).
		WithTextCode(GatewayErrorFailedPrecondition)
	if source != nil {
		err.WithMetadata(map[string]any{"cause": source.Error()})
	}
	return err
}

func badInputError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(CodeInvalidArgument).
		WithTextCode(GatewayErrorInvalidArgument)
}
