package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// directory checks emit from several workers.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
	// NewSpanID hands out IDs unique within this tracer; 0 when disabled.
	NewSpanID() uint64
}

// Config selects level, format and destination for New.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "-" or "" means stderr
}

// New builds a StreamTracer for cfg; LevelOff yields Nop. FormatAuto means
// NDJSON for "*.ndjson" paths and text otherwise.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Format == FormatAuto {
		cfg.Format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") {
			cfg.Format = FormatNDJSON
		}
	}
	w := cfg.Output
	switch {
	case w != nil:
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		w = stderrSink{}
	default:
		// #nosec G304 -- path comes from the --trace flag
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		w = f
	}
	return NewStreamTracer(w, cfg.Level, cfg.Format), nil
}

// stderrSink writes to stderr without ever closing it.
type stderrSink struct{}

func (stderrSink) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

// counters gives a tracer its own sequence and span numbering.
type counters struct {
	seq   atomic.Uint64
	spans atomic.Uint64
}

func (c *counters) nextSeq() uint64   { return c.seq.Add(1) }
func (c *counters) NewSpanID() uint64 { return c.spans.Add(1) }
