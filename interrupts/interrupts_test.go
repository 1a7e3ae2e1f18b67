package interrupts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestController_Line(t *testing.T) {
	tests := []struct {
		name    string
		levels  []bool
		want    bool
		pending []uint16
	}{
		{"never driven", nil, false, nil},
		{"asserted", []bool{true}, true, []uint16{IntVirtFoo}},
		{"asserted then cleared", []bool{true, false}, false, nil},
		{"asserted twice", []bool{true, true}, true, []uint16{IntVirtFoo}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(8)
			l := c.Line(IntVirtFoo)
			for _, lvl := range tt.levels {
				l.SetLevel(lvl)
			}
			assert.Equal(t, tt.want, c.Level(IntVirtFoo))
			assert.Equal(t, tt.pending, c.Pending())
			assert.Len(t, c.Events, len(tt.levels))
		})
	}
}

func TestController_DropsEventsWhenFull(t *testing.T) {
	c := NewController(1)
	l := c.Line(3)
	l.SetLevel(true)
	l.SetLevel(false)

	assert.False(t, c.Level(3))
	assert.Equal(t, Interrupt{Line: 3, Level: true}, <-c.Events)
	assert.Empty(t, c.Events)
}

func TestController_PendingSorted(t *testing.T) {
	c := NewController(0)
	for _, n := range []uint16{9, 2, 5} {
		c.Line(n).SetLevel(true)
	}
	assert.Equal(t, []uint16{2, 5, 9}, c.Pending())
}

func TestLineFunc(t *testing.T) {
	var got []bool
	l := LineFunc(func(high bool) { got = append(got, high) })
	l.SetLevel(true)
	l.SetLevel(false)
	assert.Equal(t, []bool{true, false}, got)

	// nil adapters and detached lines must not panic
	LineFunc(nil).SetLevel(true)
	Detached().SetLevel(true)
}
