package logger

import "github.com/elearning/tcpopt/tcpoptlib"

type noopLogger struct{}

func (n noopLogger) Named(_ string) tcpoptlib.Logger          { return n }
func (n noopLogger) BindInt(_ string, _ int) tcpoptlib.Logger { return n }
func (n noopLogger) BindStr(_, _ string) tcpoptlib.Logger     { return n }
func (n noopLogger) BindJSON(_, _ string) tcpoptlib.Logger    { return n }
func (n noopLogger) Printf(_ string, _ ...interface{})        {}
func (n noopLogger) Info(_ string)                            {}
func (n noopLogger) Warning(_ string)                         {}
func (n noopLogger) Debug(_ string)                           {}
func (n noopLogger) InfoError(_ string, _ error)              {}
func (n noopLogger) WarningError(_ string, _ error)           {}
func (n noopLogger) DebugError(_ string, _ error)             {}

// NewNoopLogger returns a logger which discards all events.
func NewNoopLogger() tcpoptlib.Logger {
	return noopLogger{}
}
