package main

import (
	"io"
	"os"
)

// Config collects the VM's tuning knobs. Defaults mirror the reference
// implementation's compiled-in constants; the CLI overrides a subset of
// them from flags rather than a config file, since there is nothing here
// that benefits from env/file layering (see DESIGN.md).
type Config struct {
	// FramesMax bounds call depth; exceeding it raises "Stack overflow.".
	FramesMax int

	// InitialGCThreshold is the bytesAllocated level (in bytes) that
	// triggers the VM's first collection.
	InitialGCThreshold int64

	// GCGrowthFactor scales nextGC after each collection.
	GCGrowthFactor int64

	// GCStress forces a collection on every allocation; used by tests to
	// shake out rooting bugs deterministically.
	GCStress bool

	// TraceExecution prints the stack and current instruction before each
	// dispatch iteration.
	TraceExecution bool

	// Disassemble dumps each compiled function's bytecode before running.
	Disassemble bool

	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns the VM's out-of-the-box tuning, matching the
// reference implementation's constants (UINT8_COUNT-based stack size,
// a 1 MiB initial GC threshold doubling on every cycle).
func DefaultConfig() Config {
	return Config{
		FramesMax:          64,
		InitialGCThreshold: 1024 * 1024,
		GCGrowthFactor:     2,
		Stdout:             os.Stdout,
		Stderr:             os.Stderr,
	}
}

const uint8Count = 256

// StackMax returns the fixed value-stack capacity for the given frame
// budget: FRAMES_MAX x UINT8_COUNT slots.
func (c Config) StackMax() int {
	return c.FramesMax * uint8Count
}
