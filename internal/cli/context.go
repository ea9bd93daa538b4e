package cli

import (
	"context"
	"io"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/performance"
	"perftrack/internal/domain/tasks"
	"perftrack/internal/transport/bridge"
)

// Context carries the services every perfctl command runs against.
type Context struct {
	Ctx         context.Context
	Bridge      *bridge.Bridge
	Performance *performance.Service
	Tasks       *tasks.Service
	Auth        *auth.Service
	In          io.Reader
	Out         io.Writer
}
