// Package observ measures how long pipeline phases take for --timings.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase aggregates every run of one named step. A directory check runs
// "load" once per file; all of them land in the same Phase.
type Phase struct {
	Name  string
	Runs  int
	Total time.Duration
	Note  string // note of the latest finished run
}

// Timer collects phase durations in first-seen order. Safe for concurrent
// use and for use through a nil pointer.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	slots  map[string]int
}

func NewTimer() *Timer { return &Timer{slots: make(map[string]int, 8)} }

// Mark is a started run returned by Begin.
type Mark struct {
	slot  int
	start time.Time
}

func (t *Timer) Begin(name string) Mark {
	if t == nil {
		return Mark{slot: -1}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	slot, ok := t.slots[name]
	if !ok {
		slot = len(t.phases)
		t.slots[name] = slot
		t.phases = append(t.phases, Phase{Name: name})
	}
	return Mark{slot: slot, start: time.Now()}
}

// End adds the run started at m; marks from a nil timer are ignored.
func (t *Timer) End(m Mark, note string) {
	if t == nil || m.slot < 0 {
		return
	}
	d := time.Since(m.start)
	t.mu.Lock()
	defer t.mu.Unlock()
	p := &t.phases[m.slot]
	p.Runs++
	p.Total += d
	if note != "" {
		p.Note = note
	}
}

// Track is Begin with a deferred-friendly closer.
//
//	done := timer.Track("parse")
//	defer done("")
func (t *Timer) Track(name string) func(note string) {
	m := t.Begin(name)
	return func(note string) { t.End(m, note) }
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// Summary renders the phases as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		name := p.Name
		if p.Runs > 1 {
			name = fmt.Sprintf("%s x%d", p.Name, p.Runs)
		}
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport: сжатая информация о фазе для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report: агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	for _, p := range t.Phases() {
		ms := p.Total.Seconds() * 1e3
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, Runs: p.Runs, DurationMS: ms, Note: p.Note})
	}
	return r
}
