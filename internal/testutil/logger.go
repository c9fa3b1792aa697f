package testutil

import "github.com/baditaflorin/go_complaint_classifier/internal/ports"

// NopLogger is a ports.Logger that discards everything. Tests use it so
// assertions stay readable without log noise.
type NopLogger struct{}

var _ ports.Logger = NopLogger{}

func (NopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (NopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (NopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (NopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (NopLogger) Close() error                                   { return nil }
