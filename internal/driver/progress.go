package driver

import "time"

// Status is the state of one file in a check run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusCached
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "parsing"
	case StatusCached:
		return "cached"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// Finished reports whether no further events follow for the file.
func (s Status) Finished() bool {
	return s == StatusCached || s == StatusDone || s == StatusError
}

// Event describes a status change of one file. StatusError means the file
// produced error diagnostics, not that checking failed.
type Event struct {
	File    string
	Status  Status
	Elapsed time.Duration
}

// ProgressSink receives events from CheckFiles. Sends block, so the
// receiver must drain it until CheckFiles returns.
type ProgressSink chan<- Event

func (s ProgressSink) send(ev Event) {
	if s != nil {
		s <- ev
	}
}
