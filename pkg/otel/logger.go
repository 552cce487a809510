package otel

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Logger 定义日志接口
type Logger interface {
	// Debug 调试日志
	Debug(msg string, args ...any)
	// Info 信息日志
	Info(msg string, args ...any)
	// Warn 警告日志
	Warn(msg string, args ...any)
	// Error 错误日志
	Error(msg string, args ...any)
	// WithContext 返回带上下文的 Logger（用于关联 Trace ID）
	WithContext(ctx context.Context) Logger
	// WithFields 返回带额外字段的 Logger
	WithFields(fields map[string]any) Logger
}

// SlogLogger slog 适配器
type SlogLogger struct {
	logger *slog.Logger
	attrs  []any
}

// NewSlogLogger 创建 slog 适配器
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

// Debug 调试日志
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, append(l.attrs, args...)...)
}

// Info 信息日志
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, append(l.attrs, args...)...)
}

// Warn 警告日志
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, append(l.attrs, args...)...)
}

// Error 错误日志
func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, append(l.attrs, args...)...)
}

// WithContext 返回带上下文的 Logger
//
// 从上下文提取 Trace ID / Span ID 作为日志字段，便于日志与追踪关联。
func (l *SlogLogger) WithContext(ctx context.Context) Logger {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return l
	}
	attrs := append([]any{}, l.attrs...)
	attrs = append(attrs,
		"trace_id", sc.TraceID().String(),
		"span_id", sc.SpanID().String(),
	)
	return &SlogLogger{logger: l.logger, attrs: attrs}
}

// WithFields 返回带额外字段的 Logger
func (l *SlogLogger) WithFields(fields map[string]any) Logger {
	attrs := append([]any{}, l.attrs...)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return &SlogLogger{logger: l.logger, attrs: attrs}
}

// NoopLogger 空实现日志器
type NoopLogger struct{}

// NewNoopLogger 创建空实现日志器
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, args ...any)            {}
func (l *NoopLogger) Info(msg string, args ...any)             {}
func (l *NoopLogger) Warn(msg string, args ...any)             {}
func (l *NoopLogger) Error(msg string, args ...any)            {}
func (l *NoopLogger) WithContext(ctx context.Context) Logger   { return l }
func (l *NoopLogger) WithFields(fields map[string]any) Logger  { return l }

// 编译时接口检查
var _ Logger = (*SlogLogger)(nil)
var _ Logger = (*NoopLogger)(nil)
