package system

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"virtfoo/bus"
	"virtfoo/config"
	"virtfoo/interrupts"
	"virtfoo/trace"
	"virtfoo/virtfoo"
)

// System definition: one bus with the virt-foo device and an
// interrupt controller sampling its line.
type System struct {
	mu sync.Mutex

	Bus        *bus.Bus
	Interrupts *interrupts.Controller
	Device     *virtfoo.Device

	cfg     config.Config
	log     *log.Logger
	rec     trace.Recorder
	session string
}

// depth of the interrupt event buffer
const eventDepth = 64

// New builds the emulated board described by cfg.
// rec may be nil when no trace is wanted.
func New(cfg config.Config, l *log.Logger, rec trace.Recorder) (*System, error) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	if rec == nil {
		rec = trace.Discard
	}

	sys := &System{
		Bus:        bus.New(),
		Interrupts: interrupts.NewController(eventDepth),
		cfg:        cfg,
		log:        l,
		rec:        rec,
		session:    trace.NewSession(),
	}
	sys.Device = virtfoo.New(
		virtfoo.WithIRQ(sys.Interrupts.Line(cfg.IRQ)),
		virtfoo.WithLogger(l),
	)

	if err := sys.Bus.Map("virt-foo", cfg.Base, virtfoo.RegionSize, sys.Device); err != nil {
		return nil, err
	}
	sys.log.Printf("virt-foo mapped at %#x, irq %#x, session %s", cfg.Base, cfg.IRQ, sys.session)
	return sys, nil
}

// Config returns the machine description the system was built from
func (sys *System) Config() config.Config {
	return sys.cfg
}

// Session returns the trace session id of this run
func (sys *System) Session() string {
	return sys.session
}

// Read performs a bus read, one access at a time.
func (sys *System) Read(addr uint64, size int) (uint32, error) {
	sys.mu.Lock()
	defer sys.mu.Unlock()

	v, err := sys.Bus.Read(addr, size)
	sys.record(trace.OpRead, addr, size, v, err)
	return v, err
}

// Write performs a bus write, one access at a time.
func (sys *System) Write(addr uint64, value uint32, size int) error {
	sys.mu.Lock()
	defer sys.mu.Unlock()

	err := sys.Bus.Write(addr, value, size)
	sys.record(trace.OpWrite, addr, size, value, err)
	return err
}

func (sys *System) record(op trace.Op, addr uint64, size int, value uint32, err error) {
	e := trace.Event{
		Timestamp: time.Now(),
		Session:   sys.session,
		Op:        op,
		Addr:      addr,
		Size:      size,
		Value:     value,
		IRQ:       sys.Device.IRQ(),
	}
	if err != nil {
		e.Err = err.Error()
		sys.log.Printf("bus error: %v", err)
	} else if _, off, rerr := sys.Bus.Resolve(addr); rerr == nil {
		e.Offset = off
	}
	sys.rec.Record(e)
}

// DumpRegisters writes the raw device registers to w without going
// through the read path.
func (sys *System) DumpRegisters(w io.Writer) {
	sys.mu.Lock()
	s := sys.Device.Snapshot()
	sys.mu.Unlock()

	irq := 0
	if s.IRQ {
		irq = 1
	}
	fmt.Fprintf(w, " |ID: %#04x |  |INIT: %#x |  |CMD: %#x |  |INT_STATUS: %#b |  |IRQ: %d | ",
		s.ID, s.Init, s.Cmd, s.Status, irq)
}

// Close flushes and closes the trace.
func (sys *System) Close() error {
	return sys.rec.Close()
}
