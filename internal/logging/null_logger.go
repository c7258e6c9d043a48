package logging

import "github.com/vvka-141/jcagen/pkg/jcagen"

// NullLogger discards everything. Tests and library callers that do not
// want diagnostics pass it to the parser and the generator.
type NullLogger struct{}

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (*NullLogger) Verbose(string, ...interface{}) {}
func (*NullLogger) Info(string, ...interface{})    {}
func (*NullLogger) Warn(string, ...interface{})    {}
func (*NullLogger) Error(string, ...interface{})   {}

var _ jcagen.Logger = (*NullLogger)(nil)
