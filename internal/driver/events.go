package driver

import "time"

// Stage describes a phase of a batch run.
type Stage string

const (
	// StageExpand resolves includes of one entry.
	StageExpand Stage = "expand"
	// StageWrite writes results out.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the entry is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates a worker picked the entry up.
	StatusWorking Status = "working"
	// StatusDone indicates the entry is expanded.
	StatusDone Status = "done"
	// StatusError indicates the entry failed.
	StatusError Status = "error"
)

// Event reports progress for an entry (or for the whole batch when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
