// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/regm/cpu"
	"github.com/ezrec/regm/internal"
)

const (
	TICK_LIMIT = 100_000 // Default tick limit for Run.
)

var _emulator_defines = map[string]string{
	"TICK_LIMIT": fmt.Sprintf("%v", TICK_LIMIT),
}

// Emulator state. The CPU and the program it runs.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator, with an empty program.
func NewEmulator() (emu *Emulator) {
	prog := &cpu.Program{}
	emu = &Emulator{
		Cpu:     cpu.NewCpu(prog),
		Program: prog,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the emulator, loading the current program into the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = emu.Program
	emu.Cpu.Reset()

	if emu.Verbose {
		log.Printf("emulator: %d instructions", emu.Program.Len())
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// Done is true when the program counter is at the end of the program.
func (emu *Emulator) Done() bool {
	return emu.Cpu.Pc == emu.Program.Len()
}

// LineNo returns the source line number for the executing opcode,
// or 0 if the program counter is outside of the program.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
// done is set when the program counter has run off the end of the program.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrPcEnd) {
		err = nil
		done = true
		return
	}

	return
}

// Run ticks the emulator until the program is done, or limit ticks
// have been executed. A limit of 0 runs without limit.
func (emu *Emulator) Run(limit int) (done bool, err error) {
	for ticks := 0; limit == 0 || ticks < limit; ticks++ {
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	if emu.Done() {
		done = true
		return
	}

	err = ErrTickLimit
	return
}
