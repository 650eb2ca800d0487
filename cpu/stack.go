package cpu

import (
	"errors"
)

// Stack is the push/pop discipline over memory, anchored at the stack
// pointer register. It grows downward from STACK_TOP.
//
// The stack pointer never wraps: pushing below address 0 or popping past
// address 255 fails with ErrAddressOutOfBounds.
type Stack struct {
	Memory   *Memory
	Register *RegisterFile
}

// Pointer returns the current stack pointer.
func (s Stack) Pointer() int {
	return int(s.Register[REGISTER_SP])
}

// Push decrements the stack pointer, then stores value at it.
func (s Stack) Push(value byte) (err error) {
	sp := s.Pointer() - 1
	err = s.Memory.Write(sp, value)
	if err != nil {
		err = errors.Join(ErrStackOverflow, err)
		return
	}

	s.Register[REGISTER_SP] = byte(sp)
	return
}

// Pop loads the value at the stack pointer, then increments it.
func (s Stack) Pop() (value byte, err error) {
	sp := s.Pointer()
	value, err = s.Memory.Read(sp)
	if err != nil {
		return
	}

	sp++
	if sp >= MEMORY_SIZE {
		value = 0
		err = errors.Join(ErrStackUnderflow, ErrAddressOutOfBounds, ErrAddress(sp))
		return
	}

	s.Register[REGISTER_SP] = byte(sp)
	return
}

// Peek returns the value at the top of the stack, if the stack is not empty.
func (s Stack) Peek() (value byte, ok bool) {
	if s.Empty() {
		return
	}

	return s.Memory[s.Pointer()], true
}

// Empty returns true if nothing has been pushed below STACK_TOP.
func (s Stack) Empty() bool {
	return s.Pointer() >= STACK_TOP
}

// Depth returns the number of bytes pushed below STACK_TOP.
func (s Stack) Depth() int {
	if s.Empty() {
		return 0
	}
	return STACK_TOP - s.Pointer()
}
