package memory

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gateway/core"
)

func notFoundError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(core.CodeNotFound).
		WithTextCode(core.GatewayErrorNotFound)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func conflictError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryConflict).
		WithCode(core.CodeFailedPrecondition).
		WithTextCode(core.GatewayErrorFailedPrecondition)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
