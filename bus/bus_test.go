package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ram is a word addressed scratch device
type ram struct {
	words map[uint64]uint32
	last  uint64
}

func newRAM() *ram { return &ram{words: make(map[uint64]uint32)} }

func (r *ram) Read(offset uint64, size int) uint32 {
	r.last = offset
	return r.words[offset]
}

func (r *ram) Write(offset uint64, value uint32, size int) {
	r.last = offset
	r.words[offset] = value
}

func TestBus_Map(t *testing.T) {
	tests := []struct {
		name    string
		base    uint64
		size    uint64
		wantErr error
	}{
		{"below", 0x0, 0x1000, nil},
		{"adjacent above", 0x2000, 0x100, nil},
		{"overlap start", 0x1fff, 0x10, ErrOverlap},
		{"overlap inside", 0x1100, 0x10, ErrOverlap},
		{"zero size", 0x5000, 0, ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			require.NoError(t, b.Map("fixed", 0x1000, 0x1000, newRAM()))
			err := b.Map(tt.name, tt.base, tt.size, newRAM())
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBus_Regions_Sorted(t *testing.T) {
	b := New()
	require.NoError(t, b.Map("c", 0x3000, 0x10, newRAM()))
	require.NoError(t, b.Map("a", 0x1000, 0x10, newRAM()))
	require.NoError(t, b.Map("b", 0x2000, 0x10, newRAM()))

	var names []string
	for _, r := range b.Regions() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestBus_ReadWrite(t *testing.T) {
	b := New()
	lo, hi := newRAM(), newRAM()
	require.NoError(t, b.Map("lo", 0x1000, 0x200, lo))
	require.NoError(t, b.Map("hi", 0x0b000000, 0x200, hi))

	require.NoError(t, b.Write(0x0b000008, 0x55, 4))
	assert.Equal(t, uint64(0x8), hi.last)
	assert.Equal(t, uint32(0x55), hi.words[0x8])
	assert.Empty(t, lo.words)

	v, err := b.Read(0x0b000008, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x55), v)

	require.NoError(t, b.Write(0x11fc, 7, 4))
	assert.Equal(t, uint64(0x1fc), lo.last)
}

func TestBus_Unmapped(t *testing.T) {
	b := New()
	require.NoError(t, b.Map("dev", 0x1000, 0x200, newRAM()))

	for _, addr := range []uint64{0x0, 0xfff, 0x1200, 0xffffffff} {
		_, err := b.Read(addr, 4)
		assert.ErrorIs(t, err, ErrUnmapped, "read %#x", addr)
		assert.ErrorIs(t, b.Write(addr, 1, 4), ErrUnmapped, "write %#x", addr)
	}
}
