package system

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadCommand is returned for monitor input that does not parse
var ErrBadCommand = errors.New("bad command")

const help = `commands:
  r ADDR [SIZE]        read from the bus (ADDR absolute, or +OFF from the device base)
  w ADDR VALUE [SIZE]  write to the bus
  irq                  show pending interrupt lines
  regs                 dump device registers without side effects
  map                  list bus mappings
  help                 this text`

// Exec runs a single monitor command and returns its output.
func (sys *System) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	switch strings.ToLower(fields[0]) {
	case "r", "read":
		return sys.execRead(fields[1:])
	case "w", "write":
		return sys.execWrite(fields[1:])
	case "irq":
		return sys.execIRQ(), nil
	case "regs":
		var b strings.Builder
		sys.DumpRegisters(&b)
		return b.String(), nil
	case "map":
		var b strings.Builder
		for _, r := range sys.Bus.Regions() {
			fmt.Fprintf(&b, "%#08x-%#08x %s\n", r.Base, r.End()-1, r.Name)
		}
		return strings.TrimSuffix(b.String(), "\n"), nil
	case "help", "?":
		return help, nil
	default:
		return "", fmt.Errorf("%w: unknown command %q", ErrBadCommand, fields[0])
	}
}

func (sys *System) execRead(args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("%w: usage r ADDR [SIZE]", ErrBadCommand)
	}
	addr, err := sys.parseAddr(args[0])
	if err != nil {
		return "", err
	}
	size, err := parseSize(args[1:])
	if err != nil {
		return "", err
	}

	v, err := sys.Read(addr, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%#08x: %#x", addr, v), nil
}

func (sys *System) execWrite(args []string) (string, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", fmt.Errorf("%w: usage w ADDR VALUE [SIZE]", ErrBadCommand)
	}
	addr, err := sys.parseAddr(args[0])
	if err != nil {
		return "", err
	}
	v, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return "", fmt.Errorf("%w: value %q", ErrBadCommand, args[1])
	}
	size, err := parseSize(args[2:])
	if err != nil {
		return "", err
	}

	if err := sys.Write(addr, uint32(v), size); err != nil {
		return "", err
	}
	return "", nil
}

func (sys *System) execIRQ() string {
	pending := sys.Interrupts.Pending()
	if len(pending) == 0 {
		return "no interrupts pending"
	}
	lines := make([]string, len(pending))
	for i, n := range pending {
		lines[i] = fmt.Sprintf("%#x", n)
	}
	return "pending: " + strings.Join(lines, " ")
}

// parseAddr accepts absolute addresses or +OFF relative to the device base
func (sys *System) parseAddr(s string) (uint64, error) {
	base := uint64(0)
	if strings.HasPrefix(s, "+") {
		base = sys.cfg.Base
		s = s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: address %q", ErrBadCommand, s)
	}
	return base + v, nil
}

func parseSize(args []string) (int, error) {
	if len(args) == 0 {
		return 4, nil
	}
	switch args[0] {
	case "1", "2", "4", "8":
		n, _ := strconv.Atoi(args[0])
		return n, nil
	default:
		return 0, fmt.Errorf("%w: size %q", ErrBadCommand, args[0])
	}
}
