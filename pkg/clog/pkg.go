package clog

import (
	"io"
	"os"

	"github.com/apex/log"
)

var clogger = NewContextLogger(os.Stdout)

func AddLoggingContext(ctx string, w io.WriteCloser) {
	clogger.AddLoggingContext(ctx, w)
}

func RemoveLoggingContext(ctx string) {
	clogger.RemoveLoggingContext(ctx)
}

func SetLevel(ctx string, level log.Level) {
	clogger.SetLevel(ctx, level)
}

func SetGlobalLoggerLevelFromString(s string) error {
	return clogger.SetLevelFromString(GlobalLoggerCtx, s)
}

func SetGlobalOutput(w io.WriteCloser) error {
	return clogger.SetOutput(GlobalLoggerCtx, w)
}

func UsingCtx(ctx string) *log.Entry {
	return clogger.UsingCtx(ctx)
}

func Global() *log.Entry {
	return clogger.Global()
}
