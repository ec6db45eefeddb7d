package driver

// Stage is the pipeline step a file is in.
type Stage uint8

const (
	StageQueued Stage = iota
	StageParse
	StageImport
	StageResolve
	StageAssemble
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageParse:
		return "parsing"
	case StageImport:
		return "importing"
	case StageResolve:
		return "resolving"
	case StageAssemble:
		return "assembling"
	default:
		return "unknown"
	}
}

// Status tells whether a file is still being worked on.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	StatusCached
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	case StatusCached:
		return "cached"
	default:
		return "unknown"
	}
}

// Event is one progress update for a file of a directory check.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// ProgressFunc receives progress events. CheckDir calls it from worker
// goroutines, so implementations must be safe for concurrent use.
type ProgressFunc func(Event)

func (f ProgressFunc) emit(file string, stage Stage, status Status) {
	if f != nil {
		f(Event{File: file, Stage: stage, Status: status})
	}
}
