// Package logger contains implementations of [tcpoptlib.Logger].
package logger

import (
	"fmt"
	"strings"

	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/rs/zerolog"
)

type zeroLogContext struct {
	names []string
	log   zerolog.Logger
}

func (z *zeroLogContext) Named(name string) tcpoptlib.Logger {
	names := make([]string, len(z.names), len(z.names)+1)
	copy(names, z.names)

	return &zeroLogContext{
		log:   z.log,
		names: append(names, name),
	}
}

func (z *zeroLogContext) BindInt(name string, value int) tcpoptlib.Logger {
	return &zeroLogContext{
		log:   z.log.With().Int(name, value).Logger(),
		names: z.names,
	}
}

func (z *zeroLogContext) BindStr(name, value string) tcpoptlib.Logger {
	return &zeroLogContext{
		log:   z.log.With().Str(name, value).Logger(),
		names: z.names,
	}
}

func (z *zeroLogContext) BindJSON(name, value string) tcpoptlib.Logger {
	return &zeroLogContext{
		log:   z.log.With().RawJSON(name, []byte(value)).Logger(),
		names: z.names,
	}
}

func (z *zeroLogContext) Printf(format string, args ...interface{}) {
	z.Debug(fmt.Sprintf(format, args...))
}

func (z *zeroLogContext) Info(msg string) {
	z.InfoError(msg, nil)
}

func (z *zeroLogContext) InfoError(msg string, err error) {
	z.emitLog(z.log.Info(), msg, err)
}

func (z *zeroLogContext) Warning(msg string) {
	z.WarningError(msg, nil)
}

func (z *zeroLogContext) WarningError(msg string, err error) {
	z.emitLog(z.log.Warn(), msg, err)
}

func (z *zeroLogContext) Debug(msg string) {
	z.DebugError(msg, nil)
}

func (z *zeroLogContext) DebugError(msg string, err error) {
	z.emitLog(z.log.Debug(), msg, err)
}

func (z *zeroLogContext) emitLog(evt *zerolog.Event, msg string, err error) {
	if len(z.names) > 0 {
		evt = evt.Str("logger", strings.Join(z.names, "."))
	}

	if err != nil {
		evt = evt.Err(err)
	}

	evt.Msg(msg)
}

// NewZeroLogger returns a logger which is using rs/zerolog library.
func NewZeroLogger(log zerolog.Logger) tcpoptlib.Logger {
	return &zeroLogContext{
		log: log,
	}
}
