package cpu

import (
	"errors"
)

const (
	MEMORY_SIZE = 256 // Addressable bytes.
)

// Memory is the byte addressable storage of the machine.
type Memory [MEMORY_SIZE]byte

// Read returns the byte at address.
func (mem *Memory) Read(address int) (value byte, err error) {
	if address < 0 || address >= len(mem) {
		err = errors.Join(ErrAddressOutOfBounds, ErrAddress(address))
		return
	}

	value = mem[address]
	return
}

// Write stores value at address.
func (mem *Memory) Write(address int, value byte) (err error) {
	if address < 0 || address >= len(mem) {
		err = errors.Join(ErrAddressOutOfBounds, ErrAddress(address))
		return
	}

	mem[address] = value
	return
}

// peek reads address, treating anything outside of memory as zero.
func (mem *Memory) peek(address int) byte {
	if address < 0 || address >= len(mem) {
		return 0
	}
	return mem[address]
}
