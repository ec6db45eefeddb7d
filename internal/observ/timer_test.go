package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	tm.End(lex, "12 tokens")
	done := tm.Track("parse")
	done("")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %+v", report.Phases)
	}
	if report.Phases[0].Name != "lex" || report.Phases[0].Note != "12 tokens" || report.Phases[0].Runs != 1 {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}
	summary := tm.Summary()
	for _, want := range []string{"timings:", "lex", "// 12 tokens", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerAggregatesRuns(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("load")("")
		}()
	}
	wg.Wait()
	tm.Track("resolve")("")

	phases := tm.Phases()
	if len(phases) != 2 || phases[0].Name != "load" || phases[0].Runs != 8 {
		t.Fatalf("phases = %+v", phases)
	}
	if !strings.Contains(tm.Summary(), "load x8") {
		t.Fatalf("summary lacks run count:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Fatalf("nil timer report = %+v", got)
	}
}
