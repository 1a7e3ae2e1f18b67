package trace

import (
	"errors"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Reader streams events from a trace file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
}

// NewReader opens the trace at path
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, decoder: newDecoder(f)}, nil
}

// Next returns the next event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	var e Event
	if err := r.decoder.Decode(&e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// ReadAll returns every event in the trace at path
func ReadAll(path string) ([]Event, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var events []Event
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
}
