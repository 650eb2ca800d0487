package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/ls8/emulator"
)

var ErrNotTerminal = errors.New(f("single step requires a terminal"))

// stepProgram executes one instruction per key press, showing the trace
// line before each. 'q' or ^C stops the run.
func stepProgram(emu *emulator.Emulator) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		err = ErrNotTerminal
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}

	// The terminal converts "\n" to "\r\n" while in raw mode.
	terminal := term.NewTerminal(screen, "")
	emu.Tape.Output = terminal
	emu.TraceOutput = nil

	key := make([]byte, 1)
	for {
		fmt.Fprintf(terminal, "%v  line %d\n", emu.Cpu.Trace(), emu.LineNo())

		_, err = os.Stdin.Read(key)
		if err != nil {
			return
		}
		if key[0] == 'q' || key[0] == 3 {
			err = ErrQuit
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
