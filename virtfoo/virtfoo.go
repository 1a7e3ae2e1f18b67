// Package virtfoo emulates the virt-foo memory mapped peripheral:
// a chip id, an enable register, a single slot command buffer and an
// interrupt status register driving one level-triggered interrupt line.
package virtfoo

import (
	"io"
	"log"

	"virtfoo/interrupts"
)

// Device holds the register file of one virt-foo instance.
// It does no locking; the host serializes accesses.
type Device struct {
	id     uint32
	init   uint32
	cmd    uint32
	status uint32

	irqLevel bool
	irq      interrupts.Line

	log *log.Logger
}

// Option configures a Device in New
type Option func(*Device)

// WithIRQ wires the device interrupt output to l
func WithIRQ(l interrupts.Line) Option {
	return func(d *Device) {
		if l != nil {
			d.irq = l
		}
	}
}

// WithLogger sets the logger receiving diagnostic traces
func WithLogger(l *log.Logger) Option {
	return func(d *Device) {
		if l != nil {
			d.log = l
		}
	}
}

// New returns a disabled device with the chip id loaded and all other
// registers cleared. There is no reset; build a new device instead.
func New(opts ...Option) *Device {
	d := &Device{
		id:  ChipID,
		irq: interrupts.Detached(),
		log: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enabled reports whether the chip enable bit is set
func (d *Device) Enabled() bool {
	return d.init&ChipEnable != 0
}

// IRQ returns the current level of the interrupt output
func (d *Device) IRQ() bool {
	return d.irqLevel
}

func (d *Device) setIRQ(high bool) {
	d.irqLevel = high
	d.irq.SetLevel(high)
}

// Read returns the register at offset. size is accepted for the bus
// interface only, every access is a full 32 bit transfer.
// Reading INT STATUS lowers the interrupt line but keeps the status.
func (d *Device) Read(offset uint64, size int) uint32 {
	if !d.Enabled() {
		d.log.Printf("virt-foo: device is disabled, read at %#x returns 0", offset)
		return 0
	}

	switch Decode(offset) {
	case RegID:
		return d.id
	case RegInit:
		return d.init
	case RegCmd:
		return d.cmd
	case RegIntStatus:
		status := d.status
		d.setIRQ(false)
		return status
	default:
		return 0
	}
}

// Write stores value at offset. Writes are accepted while disabled.
// A command write replaces the buffer, marks it enqueued and raises the
// interrupt line; an unconsumed previous command is overwritten.
func (d *Device) Write(offset uint64, value uint32, size int) {
	switch Decode(offset) {
	case RegInit:
		d.init = value
	case RegCmd:
		d.cmd = value
		d.status = IntBufferEnqueued
		d.setIRQ(true)
	default:
		// ID, INT STATUS and holes ignore writes
	}
}

// State is a copy of the register file taken without side effects
type State struct {
	ID     uint32
	Init   uint32
	Cmd    uint32
	Status uint32
	IRQ    bool
}

// Snapshot returns the raw register values, bypassing the enable gate
// and the status read side effect. Debugger use only.
func (d *Device) Snapshot() State {
	return State{
		ID:     d.id,
		Init:   d.init,
		Cmd:    d.cmd,
		Status: d.status,
		IRQ:    d.irqLevel,
	}
}
