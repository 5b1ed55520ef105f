package logx

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	traceIDKey   contextKey = "trace_id"
)

var (
	logger *zap.Logger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.Level = level

	_ = SetLevel(os.Getenv("LOG_LEVEL"))

	var err error
	logger, err = zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

// SetLevel changes the level of the package logger. Empty keeps the current level.
func SetLevel(lvl string) error {
	if lvl == "" {
		return nil
	}
	return level.UnmarshalText([]byte(strings.ToLower(lvl)))
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}

// WithFields enriches the base logger with the request and trace ids in ctx.
func WithFields(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if rid := RequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	if tid := TraceID(ctx); tid != "" {
		fields = append(fields, zap.String("trace_id", tid))
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
