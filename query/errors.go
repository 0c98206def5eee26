package query

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-gateway/core"
)

func queryDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(core.CodeInternal).
		WithTextCode(core.GatewayErrorConfiguration)
}
