package clog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/apex/log"
)

// Handler writes "LEVEL time message k=v ..." lines with fields sorted by name.
type Handler struct {
	mu     sync.Mutex
	Writer io.WriteCloser
}

var levelToStrings = [...]string{
	log.DebugLevel: "DEBUG",
	log.InfoLevel:  "INFO",
	log.WarnLevel:  "WARN",
	log.ErrorLevel: "ERROR",
	log.FatalLevel: "FATAL",
}

func NewHandler(w io.WriteCloser) *Handler {
	return &Handler{Writer: w}
}

func (h *Handler) SetOutput(w io.WriteCloser) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closeWriter()
	h.Writer = w
}

func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closeWriter()
}

// closeWriter never closes stdout or stderr. Caller holds mu.
func (h *Handler) closeWriter() {
	if h.Writer == nil || h.Writer == os.Stdout || h.Writer == os.Stderr {
		return
	}

	_ = h.Writer.Close()
}

func (h *Handler) HandleLog(e *log.Entry) error {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, "%5s %s %-25s", levelToStrings[e.Level], time.Now().Format(time.DateTime), e.Message)

	for _, name := range names {
		_, _ = fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = fmt.Fprintln(h.Writer, b.String())

	return nil
}
