package interrupts

import (
	"sort"
	"sync"
)

/**
 * Separate package exists mainly in order to avoid cyclic imports
 * between the devices raising interrupts and the system sampling them.
 */

// Interrupt type - used to signal a level change on an interrupt line
type Interrupt struct {
	Line  uint16
	Level bool
}

// interrupt lines:

// IntVirtFoo : default line of the virt-foo device (SPI 48 on the virt board)
const IntVirtFoo = 0x30

// Line is the output side of a single level-triggered interrupt line.
type Line interface {
	SetLevel(high bool)
}

// LineFunc adapts a function to the Line interface.
type LineFunc func(high bool)

// SetLevel implements Line.
func (f LineFunc) SetLevel(high bool) {
	if f != nil {
		f(high)
	}
}

type detached struct{}

func (detached) SetLevel(bool) {}

// Detached returns a Line that drops all signals.
func Detached() Line {
	return detached{}
}

// Controller keeps the level of every line wired to it.
// Level changes are published on Events; when nobody drains the channel
// the change is still recorded, the notification is dropped.
type Controller struct {
	mu     sync.Mutex
	levels map[uint16]bool

	Events chan Interrupt
}

// NewController returns a controller with an event buffer of the given depth
func NewController(depth int) *Controller {
	return &Controller{
		levels: make(map[uint16]bool),
		Events: make(chan Interrupt, depth),
	}
}

// Line returns the input n of the controller as a Line
func (c *Controller) Line(n uint16) Line {
	return LineFunc(func(high bool) { c.set(n, high) })
}

func (c *Controller) set(n uint16, high bool) {
	c.mu.Lock()
	c.levels[n] = high
	c.mu.Unlock()

	select {
	case c.Events <- Interrupt{Line: n, Level: high}:
	default:
	}
}

// Level reports whether line n is currently asserted.
func (c *Controller) Level(n uint16) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.levels[n]
}

// Pending returns the asserted lines in ascending order.
func (c *Controller) Pending() []uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lines []uint16
	for n, high := range c.levels {
		if high {
			lines = append(lines, n)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })
	return lines
}
