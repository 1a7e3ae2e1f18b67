// Package config loads the machine description of the emulator.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"virtfoo/interrupts"
)

// DefaultBase is where the virt board places the device
const DefaultBase = 0x0b000000

// Config describes where the device sits and how the emulator runs.
type Config struct {
	// Base is the MMIO base address of the device.
	Base uint64 `yaml:"base"`

	// IRQ is the interrupt controller input the device drives.
	IRQ uint16 `yaml:"irq"`

	// Log is the log file path. Empty logs to stdout.
	Log string `yaml:"log"`

	// Trace is the CBOR access trace file. Empty disables tracing.
	Trace string `yaml:"trace"`

	// GUI selects the gocui front end over the line console.
	GUI bool `yaml:"gui"`
}

// Default returns the built-in machine description
func Default() Config {
	return Config{
		Base: DefaultBase,
		IRQ:  interrupts.IntVirtFoo,
	}
}

// Parse decodes YAML on top of the defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses the config file at path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}
