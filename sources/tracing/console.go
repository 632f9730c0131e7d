package tracing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

const (
	ExecutionTime   = "exe_time"
	OutsiderKind    = "outsider_kind"
	ProxyUrl        = "proxy_url"
	ProxyRes        = "proxy_res"
	AiKind          = "ai_kind"
	AiModel         = "ai_model"
	AiTokens        = "ai_tokens"
	AiFailure       = "ai_failure"
	InnerError      = "inner_error"
	UserId          = "user_id"
	UserName        = "user_name"
	TargetUserId    = "target_user_id"
	ChatId          = "chat_id"
	MessageId       = "message_id"
	MessageDate     = "message_date"
	CommandIssued   = "command_issued"
	CallbackData    = "callback_data"
	Gate            = "gate"
	Tier            = "tier"
	PackageName     = "package_name"
	DailyUsed       = "daily_used"
	DailyLimit      = "daily_limit"
	HistoryLength   = "history_length"
	StatisticsDay   = "statistics_day"
	InternalFeature = "internal_feature"
)

type Logger struct {
	log *slog.Logger
	ctx context.Context
}

func NewConsoleLogger() *Logger {
	logger := NewLogger(os.Stdout, slog.LevelDebug)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	logger.log.InfoContext(ctx, "Initializing logger")
	return logger
}

// NewLogger builds a JSON logger over an arbitrary writer, tests pass io.Discard.
func NewLogger(w io.Writer, level slog.Level) *Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return &Logger{log: logger, ctx: context.Background()}
}

func NewDiscardLogger() *Logger {
	return NewLogger(io.Discard, slog.LevelError)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...), ctx: l.ctx}
}

func (l *Logger) D(msg string, args ...any) {
	l.log.DebugContext(l.ctx, msg, args...)
}

func (l *Logger) I(msg string, args ...any) {
	l.log.InfoContext(l.ctx, msg, args...)
}

func (l *Logger) W(msg string, args ...any) {
	l.log.WarnContext(l.ctx, msg, args...)
}

func (l *Logger) E(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
}

func (l *Logger) F(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
	panic(msg)
}
