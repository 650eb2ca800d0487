// Package cpu implements the LS-8 byte-code machine and its program tools.
//
// The machine consists of 256 bytes of memory, eight 8-bit registers (r7
// doubles as the stack pointer), a program counter, a four-function ALU,
// and a stack that grows downward from 0xF4. Each opcode byte carries its
// own operand count in the top two bits and an ALU flag in bit 5.
//
// The loader reads the binary-literal program format (one 8-digit base-2
// byte per line), and the assembler translates LS-8 mnemonics into that
// format, with labels, equates, and compile-time expression evaluation.
package cpu
