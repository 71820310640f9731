package cli

import (
	"context"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// contextKey is the key the command Context is stored under.
type contextKey struct{}

// Context carries the resolved configuration and logger to every command.
type Context struct {
	Viper  *viper.Viper
	Logger log.Logger
}

// NewDefaultContext returns a Context with an empty viper and a nop logger.
func NewDefaultContext() *Context {
	return &Context{
		Viper:  viper.New(),
		Logger: log.NewNopLogger(),
	}
}

// SetCmdContext attaches cliCtx to cmd.
func SetCmdContext(cmd *cobra.Command, cliCtx *Context) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(context.WithValue(ctx, contextKey{}, cliCtx))
}

// GetContextFromCmd returns the Context attached to cmd or one of its parents.
func GetContextFromCmd(cmd *cobra.Command) *Context {
	if ctx := cmd.Context(); ctx != nil {
		if cliCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
			return cliCtx
		}
	}

	return NewDefaultContext()
}
