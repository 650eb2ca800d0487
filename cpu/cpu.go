package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/ls8/io"
)

// Console is the output stream written by PRN.
type Console io.Console

// State is the execution state of the Cpu.
type State int

const (
	STATE_RUNNING = State(0) // Executing instructions.
	STATE_HALTED  = State(1) // Stopped by HLT. Terminal.
)

func (state State) String() string {
	if state == STATE_HALTED {
		return "halted"
	}
	return "running"
}

var _cpu_defines = map[string]string{
	"SP":          fmt.Sprintf("r%d", REGISTER_SP),
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"STACK_TOP":   fmt.Sprintf("0x%02x", STACK_TOP),
}

// Cpu is the simulation context of the LS-8 machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory       // Main memory.
	Register RegisterFile // Register bank, r7 is the stack pointer.
	Pc       int          // Address of the next instruction.
	Ir       Code         // Last fetched instruction.
	State    State        // Execution state.

	Output Console // Destination of PRN.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new, reset CPU printing to output.
func NewCpu(output Console) (cpu *Cpu) {
	cpu = &Cpu{
		Output: output,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Stack returns the stack view of the CPU memory.
func (cpu *Cpu) Stack() Stack {
	return Stack{Memory: &cpu.Memory, Register: &cpu.Register}
}

// Reset the CPU state.
// - Clears the registers and points SP at STACK_TOP.
// - Sets the PC to 0.
// - Zeros the tick counter.
// - Memory is left untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Debugf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Pc = 0
	cpu.Ir = 0
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0
}

// Load clears memory and copies the program image to it from address 0.
func (cpu *Cpu) Load(prog *Program) (err error) {
	if len(prog.Bytes) > len(cpu.Memory) {
		err = ErrProgramTooLarge
		return
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[:], prog.Bytes)

	if cpu.Verbose {
		log.Debugf("cpu: loaded %d bytes", len(prog.Bytes))
	}

	return
}

// Fetch reads the instruction at the PC, and the two bytes that follow it.
// Operand bytes past the end of memory read as zero.
func (cpu *Cpu) Fetch() (code Code, operand_a, operand_b byte, err error) {
	ir, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	code = Code(ir)
	operand_a = cpu.Memory.peek(cpu.Pc + 1)
	operand_b = cpu.Memory.peek(cpu.Pc + 2)

	return
}

// Tick executes a single fetch-decode-execute cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State == STATE_HALTED {
		err = ErrHalted
		return
	}

	code, operand_a, operand_b, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(code, operand_a, operand_b)
	return
}

// Execute executes a single decoded instruction, with its candidate operands.
func (cpu *Cpu) Execute(code Code, operand_a, operand_b byte) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Debugf("%02x: %v %02x %02x", cpu.Pc, code, operand_a, operand_b)
	}

	cpu.Ir = code

	operands, alu := code.Decode()
	next_pc := cpu.Pc + 1 + operands

	a := int(operand_a)

	if alu {
		var val_a, val_b, result byte
		val_a, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		val_b, err = cpu.Register.Get(int(operand_b))
		if err != nil {
			return
		}
		result, err = Alu(code, val_a, val_b)
		if err != nil {
			return
		}
		err = cpu.Register.Set(a, result)
		if err != nil {
			return
		}
	} else {
		stack := cpu.Stack()

		switch code {
		case OP_HLT:
			cpu.State = STATE_HALTED
			next_pc = cpu.Pc
		case OP_LDI:
			err = cpu.Register.Set(a, operand_b)
		case OP_PRN:
			var value byte
			value, err = cpu.Register.Get(a)
			if err != nil {
				return
			}
			if cpu.Output == nil {
				err = ErrConsoleMissing
				return
			}
			err = cpu.Output.Print(value)
		case OP_PUSH:
			var value byte
			value, err = cpu.Register.Get(a)
			if err != nil {
				return
			}
			err = stack.Push(value)
		case OP_POP:
			var value byte
			value, err = stack.Pop()
			if err != nil {
				return
			}
			err = cpu.Register.Set(a, value)
		case OP_CALL:
			var target byte
			target, err = cpu.Register.Get(a)
			if err != nil {
				return
			}
			ret := cpu.Pc + 2
			if ret >= MEMORY_SIZE {
				err = errors.Join(ErrAddressOutOfBounds, ErrAddress(ret))
				return
			}
			err = stack.Push(byte(ret))
			if err != nil {
				return
			}
			next_pc = int(target)
		case OP_RET:
			var target byte
			target, err = stack.Pop()
			if err != nil {
				return
			}
			next_pc = int(target)
		case OP_JMP:
			var target byte
			target, err = cpu.Register.Get(a)
			if err != nil {
				return
			}
			next_pc = int(target)
		default:
			err = ErrOpcodeUnknown
		}
		if err != nil {
			return
		}
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}
