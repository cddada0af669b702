package clog

import (
	"fmt"
	"io"
	"sync"

	"github.com/apex/log"
)

// ContextLogger routes log entries by area ("apiv1", "views", "translate", ...). Areas without a
// dedicated logger write through the global logger with a ctx field so they can still be filtered.
type ContextLogger struct {
	GlobalLogger   *log.Logger
	ContextLoggers sync.Map
}

const GlobalLoggerCtx = "global"

func NewContextLogger(globalLoggerWriter io.WriteCloser) *ContextLogger {
	return &ContextLogger{
		GlobalLogger: newLogger(globalLoggerWriter),
	}
}

func newLogger(w io.WriteCloser) *log.Logger {
	return &log.Logger{
		Handler: NewHandler(w),
		Level:   log.InfoLevel,
	}
}

func (l *ContextLogger) AddLoggingContext(ctx string, w io.WriteCloser) {
	l.ContextLoggers.Store(ctx, newLogger(w))
}

func (l *ContextLogger) RemoveLoggingContext(ctx string) {
	logger, ok := l.ContextLoggers.LoadAndDelete(ctx)
	if !ok {
		return
	}

	if h := handlerOf(logger.(*log.Logger)); h != nil {
		h.Close()
	}
}

func (l *ContextLogger) SetLevel(ctx string, level log.Level) {
	if logger := l.loggerFor(ctx); logger != nil {
		logger.Level = level
	}
}

func (l *ContextLogger) SetLevelFromString(ctx, s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	l.SetLevel(ctx, level)

	return nil
}

func (l *ContextLogger) SetOutput(ctx string, w io.WriteCloser) error {
	logger := l.loggerFor(ctx)
	if logger == nil {
		return fmt.Errorf("no such logging context %s", ctx)
	}

	h := handlerOf(logger)
	if h == nil {
		return fmt.Errorf("logging context %s has no clog handler", ctx)
	}

	h.SetOutput(w)
	return nil
}

func (l *ContextLogger) UsingCtx(ctx string) *log.Entry {
	if ctx != GlobalLoggerCtx {
		if logger := l.loggerFor(ctx); logger != nil {
			return logger.WithField("ctx", ctx)
		}
	}

	return l.GlobalLogger.WithField("ctx", ctx)
}

func (l *ContextLogger) Global() *log.Entry {
	return l.UsingCtx(GlobalLoggerCtx)
}

// loggerFor returns nil for unknown contexts.
func (l *ContextLogger) loggerFor(ctx string) *log.Logger {
	if ctx == GlobalLoggerCtx {
		return l.GlobalLogger
	}

	logger, ok := l.ContextLoggers.Load(ctx)
	if !ok {
		return nil
	}

	clogger, _ := logger.(*log.Logger)
	return clogger
}

func handlerOf(logger *log.Logger) *Handler {
	if logger == nil {
		return nil
	}

	h, _ := logger.Handler.(*Handler)
	return h
}
