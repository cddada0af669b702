package webapi

import (
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/dukahub/dukaweb/pkg/clog"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LogController changes the global logger's level and output while the server runs.
type LogController struct {
	mu              sync.Mutex
	CurrentLogLevel string `json:"current_log_level"`
	CurrentLogFile  string `json:"current_log_file"`
	openFile        func(path string) (io.WriteCloser, error)
}

func NewLogController(level string) *LogController {
	return &LogController{
		CurrentLogLevel: level,
		CurrentLogFile:  "stdout",
		openFile: func(path string) (io.WriteCloser, error) {
			return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		},
	}
}

type setLoggingRequest struct {
	LogLevel  string `json:"log_level"`
	LogOutput string `json:"log_output"`
}

// SetLogging applies level and output together. When the output can't be changed the level is
// put back.
func (c *LogController) SetLogging(ctx echo.Context) error {
	var req setLoggingRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	oldLevel := c.CurrentLogLevel
	if req.LogLevel != "" {
		if err := c.setLoggingLevel(req.LogLevel); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	if req.LogOutput != "" {
		if err := c.setLoggingOutput(req.LogOutput); err != nil {
			_ = c.setLoggingLevel(oldLevel)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) ShowCurrentLogging(ctx echo.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) setLoggingLevel(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", logLevel)
	}

	if err := clog.SetGlobalLoggerLevelFromString(logLevel); err != nil {
		return err
	}

	c.CurrentLogLevel = level.String()
	return nil
}

func (c *LogController) setLoggingOutput(logOutput string) error {
	var w io.WriteCloser
	switch logOutput {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := c.openFile(logOutput)
		if err != nil {
			return errors.Wrapf(err, "failed to open log output %s", logOutput)
		}
		w = f
	}

	if err := clog.SetGlobalOutput(w); err != nil {
		return err
	}

	c.CurrentLogFile = logOutput
	return nil
}
