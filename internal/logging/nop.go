package logging

import "context"

// NopLogger is a Logger that discards all output. Use in tests.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (*NopLogger) Debug(context.Context, string, ...any) {}
func (*NopLogger) Info(context.Context, string, ...any)  {}
func (*NopLogger) Warn(context.Context, string, ...any)  {}
func (*NopLogger) Error(context.Context, string, ...any) {}

func (n *NopLogger) With(...any) Logger { return n }
