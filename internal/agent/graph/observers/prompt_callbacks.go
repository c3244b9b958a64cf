package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/prompt"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"
	"github.com/rs/zerolog"

	logx "github.com/trip-assistant-poc/server/pkg/logger"
)

// newPromptHandler builds a typed PromptCallbackHandler that logs rendered prompt sizes.
func newPromptHandler() *callbackHelper.PromptCallbackHandler {
	return &callbackHelper.PromptCallbackHandler{
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *prompt.CallbackOutput) context.Context {
			ev := logEvent("prompt", info)
			if output != nil && len(output.Result) > 0 && output.Result[0] != nil {
				ev = ev.Int("prompt_len", len(output.Result[0].Content))
			}
			ev.Msg("prompt rendered")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logErrorEvent("prompt", info, err).Msg("prompt error")
			return ctx
		},
	}
}

func logEvent(kind string, info *einocb.RunInfo) *zerolog.Event {
	ev := logx.Debug().Str("observer", kind)
	if info != nil {
		ev = ev.Str("name", info.Name).Str("type", info.Type)
	}
	return ev
}

func logErrorEvent(kind string, info *einocb.RunInfo, err error) *zerolog.Event {
	ev := logx.Error().Err(err).Str("observer", kind)
	if info != nil {
		ev = ev.Str("name", info.Name).Str("type", info.Type)
	}
	return ev
}
