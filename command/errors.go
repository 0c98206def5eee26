package command

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gateway/core"
)

func commandDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(core.CodeInternal).
		WithTextCode(core.GatewayErrorConfiguration)
}
