package hooking

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LogHook writes one log line per invocation.
type LogHook struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewLogHook creates a LogHook that logs at level.
func NewLogHook(logger zerolog.Logger, level zerolog.Level) *LogHook {
	return &LogHook{logger: logger, level: level}
}

// Func logs the position, the item, and the detail of the context.
func (h *LogHook) Func(ctx HookCtx) {
	e := h.logger.WithLevel(h.level)
	if ctx.Pos != nil {
		e = e.Str("pos", ctx.Pos.Name)
	}

	if ctx.Detail != nil {
		e = e.Str("detail", fmt.Sprint(ctx.Detail))
	}

	e.Msg(fmt.Sprint(ctx.Item))
}
