package trace

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Recorder receives every traced access.
type Recorder interface {
	Record(e Event)
	Close() error
}

// NewSession returns a fresh session identifier
func NewSession() string {
	return uuid.New().String()
}

type discard struct{}

func (discard) Record(Event) {}
func (discard) Close() error { return nil }

// Discard drops all events
var Discard Recorder = discard{}

// FileRecorder appends events to a file in CBOR format.
// It is safe for concurrent use.
type FileRecorder struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewFileRecorder opens path for appending, creating it with 0644.
func NewFileRecorder(path string) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileRecorder{
		file:    f,
		encoder: newEncoder(f),
	}, nil
}

// Record writes e. Encoding errors are dropped, tracing must not stop
// the emulation.
func (r *FileRecorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	_ = r.encoder.Encode(e)
}

// Close closes the file. Later Record calls are ignored.
func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// MemoryRecorder keeps events in memory
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

// Record implements Recorder.
func (m *MemoryRecorder) Record(e Event) {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
}

// Close implements Recorder.
func (m *MemoryRecorder) Close() error { return nil }

// Events returns a copy of the recorded events
func (m *MemoryRecorder) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

var (
	_ Recorder = (*FileRecorder)(nil)
	_ Recorder = (*MemoryRecorder)(nil)
)
