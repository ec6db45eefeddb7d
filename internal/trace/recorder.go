package trace

import (
	"slices"
	"sync"
)

// Recorder keeps events in memory for tests.
type Recorder struct {
	counters
	mu     sync.Mutex
	level  Level
	events []Event
}

func NewRecorder(level Level) *Recorder {
	return &Recorder{level: level}
}

func (r *Recorder) Emit(ev *Event) {
	if !r.level.ShouldEmit(ev.Scope) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ev.Seq = r.nextSeq()
	r.events = append(r.events, *ev)
}

func (r *Recorder) Flush() error  { return nil }
func (r *Recorder) Close() error  { return nil }
func (r *Recorder) Level() Level  { return r.level }
func (r *Recorder) Enabled() bool { return r.level > LevelOff }

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Names lists the names of recorded events of kind k.
func (r *Recorder) Names(k Kind) []string {
	var out []string
	for _, ev := range r.Events() {
		if ev.Kind == k {
			out = append(out, ev.Name)
		}
	}
	return out
}
