// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	ls8io "github.com/ezrec/ls8/io"
)

var _emulator_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%v", cpu.REGISTER_COUNT),
}

// Emulator state. CPU + program + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape ls8io.Tape // Console written by PRN.

	TraceOutput io.Writer // If set, receives a trace line before each instruction.
	MaxTicks    int       // If non-zero, limits the instructions per run.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.Cpu = cpu.NewCpu(&emu.Tape)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the CPU, and load the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Tape.Rewind()

	err = emu.Cpu.Load(emu.Program)
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Halted returns true once the program has executed HLT.
func (emu *Emulator) Halted() bool {
	return emu.Cpu.State == cpu.STATE_HALTED
}

// LineNo returns the source line number for the instruction at the PC.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Halted() {
		done = true
		return
	}

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	if emu.TraceOutput != nil {
		_, err = fmt.Fprintln(emu.TraceOutput, emu.Cpu.Trace())
		if err != nil {
			return
		}
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Halted()
	if done && emu.Verbose {
		log.Debugf("emulator: halted after %d ticks", emu.Ticks())
	}

	return
}

// Run ticks the emulator until the program halts, or an error occurs.
func (emu *Emulator) Run() (err error) {
	for {
		if emu.MaxTicks > 0 && emu.Ticks() >= emu.MaxTicks {
			err = &ErrRuntime{Pc: emu.Cpu.Pc, LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
