package cpu

import (
	"fmt"
	"strings"
)

// Trace returns a single diagnostic line with the PC, the three bytes at the
// PC, and all of the registers. Bytes past the end of memory show as 00.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.Memory.peek(cpu.Pc),
		cpu.Memory.peek(cpu.Pc+1),
		cpu.Memory.peek(cpu.Pc+2),
	)

	for _, reg := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", reg)
	}

	return sb.String()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"ir",
		"state",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "sp",
		"stack",
		"ticks",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "ir":
			strval = fmt.Sprintf("%08b %v", uint8(cpu.Ir), cpu.Ir)
		case "state":
			strval = cpu.State.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6":
			strval = fmt.Sprintf("%02X", cpu.Register[reg[1]-'0'])
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Register[REGISTER_SP])
		case "stack":
			val, ok := cpu.Stack().Peek()
			if ok {
				strval = fmt.Sprintf("%02X (depth %d)", val, cpu.Stack().Depth())
			} else {
				strval = "--"
			}
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
