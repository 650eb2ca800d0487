package cpu

import (
	"errors"
)

const (
	REGISTER_COUNT = 8    // General purpose registers.
	REGISTER_SP    = 7    // Register holding the stack pointer.
	STACK_TOP      = 0xF4 // Initial stack pointer.
)

// RegisterFile is the register bank. Register r7 is the stack pointer.
type RegisterFile [REGISTER_COUNT]byte

// Get returns the value of register index.
func (rf *RegisterFile) Get(index int) (value byte, err error) {
	if index < 0 || index >= len(rf) {
		err = errors.Join(ErrRegisterInvalid, ErrRegister(index))
		return
	}

	value = rf[index]
	return
}

// Set stores value in register index.
func (rf *RegisterFile) Set(index int, value byte) (err error) {
	if index < 0 || index >= len(rf) {
		err = errors.Join(ErrRegisterInvalid, ErrRegister(index))
		return
	}

	rf[index] = value
	return
}

// Reset clears all registers and points the stack pointer at the stack top.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
	rf[REGISTER_SP] = STACK_TOP
}
