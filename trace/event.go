// Package trace records bus accesses to the device as CBOR events so a
// driver session can be inspected after the fact.
package trace

import (
	"fmt"
	"time"
)

// Event is one bus access as seen by the host.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the access completed.
	Timestamp time.Time `cbor:"1,keyasint"`

	// Session identifies one emulator run (UUID).
	Session string `cbor:"2,keyasint"`

	Op Op `cbor:"3,keyasint"`

	// Addr is the absolute bus address, Offset the one seen by the device.
	Addr   uint64 `cbor:"4,keyasint"`
	Offset uint64 `cbor:"5,keyasint"`
	Size   int    `cbor:"6,keyasint"`

	// Value read or written.
	Value uint32 `cbor:"7,keyasint"`

	// IRQ is the interrupt line level after the access.
	IRQ bool `cbor:"8,keyasint"`

	// Err is set when the bus rejected the access.
	Err string `cbor:"9,keyasint,omitempty"`
}

// Op is the access direction
type Op uint8

const (
	// OpRead is a load from the device.
	OpRead Op = 0
	// OpWrite is a store to the device.
	OpWrite Op = 1
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpRead:
		return "R"
	case OpWrite:
		return "W"
	default:
		return "?"
	}
}

// Format renders e on a single line
func Format(e Event) string {
	irq := 0
	if e.IRQ {
		irq = 1
	}
	s := fmt.Sprintf("%s %s %#08x (+%#x) size=%d value=%#x irq=%d",
		e.Timestamp.Format("15:04:05.000000"), e.Op, e.Addr, e.Offset, e.Size, e.Value, irq)
	if e.Err != "" {
		s += " err=" + e.Err
	}
	return s
}
