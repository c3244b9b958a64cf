package observers

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

type startKey struct{}

// newNodeHandler logs the start, end and duration of every graph node.
func newNodeHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackInput) context.Context {
			if info == nil {
				return ctx
			}
			logx.Debug().Str("node", info.Name).Str("component", string(info.Component)).Msg("node start")
			return context.WithValue(ctx, startKey{}, time.Now())
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, _ einocb.CallbackOutput) context.Context {
			if info == nil {
				return ctx
			}
			ev := logx.Debug().Str("node", info.Name).Str("component", string(info.Component))
			if start, ok := ctx.Value(startKey{}).(time.Time); ok {
				ev = ev.Dur("duration", time.Since(start))
			}
			ev.Msg("node end")
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			name := ""
			if info != nil {
				name = info.Name
			}
			logx.Error().Err(err).Str("node", name).Msg("node error")
			return ctx
		}).
		Build()
}
