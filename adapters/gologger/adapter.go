package gologger

import (
	glog "github.com/goliatone/go-logger/glog"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// Ensure returns the logger or a nop fallback, never nil.
func Ensure(logger glog.Logger) glog.Logger {
	return glog.Ensure(logger)
}

// ChildLogger derives a named logger from a provider, falling back to nop
// when the provider is absent.
func ChildLogger(provider glog.LoggerProvider, name string) glog.Logger {
	if provider == nil {
		return glog.Nop()
	}
	return glog.Ensure(provider.GetLogger(name))
}
