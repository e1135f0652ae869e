package generation

import "ebiten-depths/components"

// Snapshot is one recorded step of a generation run
type Snapshot struct {
	Map   components.Map
	Label string
}

// Recorder receives intermediate maps while a generator works. It only
// observes; nothing it does can change the result.
type Recorder interface {
	Record(m *components.Map, label string)
	Snapshots() []Snapshot
	Clear()
}

type nopRecorder struct{}

func (nopRecorder) Record(*components.Map, string) {}
func (nopRecorder) Snapshots() []Snapshot          { return nil }
func (nopRecorder) Clear()                         {}

// HistoryRecorder keeps a copy of every recorded map
type HistoryRecorder struct {
	snapshots []Snapshot
}

// NewHistoryRecorder creates an empty capturing recorder
func NewHistoryRecorder() *HistoryRecorder {
	return &HistoryRecorder{}
}

// Record stores a copy of m under label
func (h *HistoryRecorder) Record(m *components.Map, label string) {
	h.snapshots = append(h.snapshots, Snapshot{Map: m.Clone(), Label: label})
}

// Snapshots returns the recorded steps in order
func (h *HistoryRecorder) Snapshots() []Snapshot {
	out := make([]Snapshot, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}

// Clear drops every recorded step
func (h *HistoryRecorder) Clear() {
	h.snapshots = nil
}

type options struct {
	recorder Recorder
}

// Option configures optional generator behaviour
type Option func(*options)

// WithHistory makes the generator capture a snapshot after each build phase
func WithHistory() Option {
	return func(o *options) {
		o.recorder = NewHistoryRecorder()
	}
}

// WithRecorder installs a custom recorder
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
