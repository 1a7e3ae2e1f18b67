package trace

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2026, 10, 15, 9, 30, 0, 123456789, time.UTC)

func sample(session string) []Event {
	return []Event{
		{Timestamp: ts, Session: session, Op: OpWrite, Addr: 0x0b000004, Offset: 0x4, Size: 4, Value: 1},
		{Timestamp: ts.Add(time.Microsecond), Session: session, Op: OpWrite, Addr: 0x0b000008, Offset: 0x8, Size: 4, Value: 0x55, IRQ: true},
		{Timestamp: ts.Add(2 * time.Microsecond), Session: session, Op: OpRead, Addr: 0x0b00000c, Offset: 0xc, Size: 4, Value: 0b10},
		{Timestamp: ts.Add(3 * time.Microsecond), Session: session, Op: OpRead, Addr: 0x10, Size: 4, Err: "not mapped"},
	}
}

func assertSameEvents(t *testing.T, want, got []Event) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp), "event %d timestamp", i)
		w, g := want[i], got[i]
		w.Timestamp, g.Timestamp = time.Time{}, time.Time{}
		assert.Equal(t, w, g, "event %d", i)
	}
}

func TestEncodeDecode(t *testing.T) {
	e := sample("s")[1]
	data, err := Encode(e)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assertSameEvents(t, []Event{e}, []Event{got})

	_, err = Decode([]byte{0xff})
	assert.Error(t, err)
}

func TestFileRecorder_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.cbor")
	session := NewSession()
	_, err := uuid.Parse(session)
	require.NoError(t, err)

	r, err := NewFileRecorder(path)
	require.NoError(t, err)
	for _, e := range sample(session) {
		r.Record(e)
	}
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	// recorded after close, must be dropped
	r.Record(Event{Session: "late"})

	got, err := ReadAll(path)
	require.NoError(t, err)
	assertSameEvents(t, sample(session), got)
}

func TestFileRecorder_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.cbor")
	for i := 0; i < 2; i++ {
		r, err := NewFileRecorder(path)
		require.NoError(t, err)
		r.Record(sample("a")[0])
		require.NoError(t, r.Close())
	}

	got, err := ReadAll(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReadAll_Missing(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "none.cbor"))
	assert.Error(t, err)
}

func TestMemoryRecorder_Concurrent(t *testing.T) {
	var m MemoryRecorder
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Record(Event{Op: OpRead})
		}()
	}
	wg.Wait()
	assert.Len(t, m.Events(), 10)
	assert.NoError(t, m.Close())
}

func TestFormat(t *testing.T) {
	events := sample("s")
	tests := []struct {
		name string
		e    Event
		want []string
	}{
		{"write", events[1], []string{" W ", "0x0b000008", "(+0x8)", "value=0x55", "irq=1"}},
		{"read", events[2], []string{" R ", "value=0x2", "irq=0"}},
		{"bus error", events[3], []string{"err=not mapped"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.e)
			for _, w := range tt.want {
				assert.True(t, strings.Contains(got, w), "%q missing %q", got, w)
			}
		})
	}
}
