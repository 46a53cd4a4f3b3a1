// Package logging configures the process-wide slog logger. Console
// output goes to stderr; when a Seq endpoint is configured, records fan
// out to it as well.
package logging

import (
	"context"
	"log/slog"
	"os"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

// Options selects the log level and the optional Seq endpoint.
type Options struct {
	Verbose bool
	SeqURL  string
}

// multiHandler forwards log records to multiple handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// Setup installs the global slog default and returns a cleanup function
// that flushes any remote handler.
func Setup(opts Options) func() {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	consoleHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	if opts.SeqURL == "" {
		slog.SetDefault(slog.New(consoleHandler))
		return func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		opts.SeqURL,
		slogseq.WithBatchSize(1),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(&slog.HandlerOptions{
			Level: level,
		}),
	)
	if seqHandler == nil {
		slog.SetDefault(slog.New(consoleHandler))
		return func() {}
	}

	slog.SetDefault(slog.New(&multiHandler{
		handlers: []slog.Handler{consoleHandler, seqHandler},
	}))
	return func() {
		seqHandler.Close()
	}
}
