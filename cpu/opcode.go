package cpu

import (
	"fmt"
)

// Code is a single instruction byte.
//
//	bits 7-6: number of operand bytes that follow
//	bit    5: ALU operation flag
//	bits 4-0: operation identifier
type Code uint8

// Instruction set.
const (
	OP_HLT  = Code(0b0000_0001) // hlt
	OP_RET  = Code(0b0001_0001) // ret
	OP_PUSH = Code(0b0100_0101) // push
	OP_POP  = Code(0b0100_0110) // pop
	OP_PRN  = Code(0b0100_0111) // prn
	OP_CALL = Code(0b0101_0000) // call
	OP_JMP  = Code(0b0101_0100) // jmp
	OP_LDI  = Code(0b1000_0010) // ldi
	OP_ADD  = Code(0b1010_0000) // add
	OP_SUB  = Code(0b1010_0001) // sub
	OP_MUL  = Code(0b1010_0010) // mul
	OP_DIV  = Code(0b1010_0011) // div
)

const (
	CODE_OPERANDS_MASK  = 0b1100_0000 // Mask of the operand count bits.
	CODE_OPERANDS_SHIFT = 6           // Shift of the operand count bits.
	CODE_ALU_FLAG       = 0b0010_0000 // ALU operation flag.
)

var codeNames = map[Code]string{
	OP_HLT:  "HLT",
	OP_RET:  "RET",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_PRN:  "PRN",
	OP_CALL: "CALL",
	OP_JMP:  "JMP",
	OP_LDI:  "LDI",
	OP_ADD:  "ADD",
	OP_SUB:  "SUB",
	OP_MUL:  "MUL",
	OP_DIV:  "DIV",
}

// Decode returns the operand count and the ALU classification of the code.
// Every byte decodes; whether the code is executable is decided by the Cpu.
func (code Code) Decode() (operands int, alu bool) {
	return code.Operands(), code.IsAlu()
}

// Operands returns the number of operand bytes following the code.
func (code Code) Operands() int {
	return int((uint8(code) & CODE_OPERANDS_MASK) >> CODE_OPERANDS_SHIFT)
}

// IsAlu returns true if the code is routed to the ALU.
func (code Code) IsAlu() bool {
	return (uint8(code) & CODE_ALU_FLAG) != 0
}

// Known returns true if the code is part of the instruction set.
func (code Code) Known() bool {
	_, ok := codeNames[code]
	return ok
}

// String returns the mnemonic of the code, or its hex value if unknown.
func (code Code) String() string {
	name, ok := codeNames[code]
	if !ok {
		return fmt.Sprintf("0x%02X", uint8(code))
	}
	return name
}

// LookupCode returns the code for a mnemonic.
func LookupCode(mnemonic string) (code Code, ok bool) {
	for code, name := range codeNames {
		if name == mnemonic {
			return code, true
		}
	}

	return
}
