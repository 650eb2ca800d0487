package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doAssemble(t *testing.T, program ...string) (prog *Program, err error) {
	asm := &Assembler{}
	asm.Predefine("SP", "r7")
	asm.Predefine("STACK_TOP", "0xf4")
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func TestAssembler_Basic(t *testing.T) {
	assert := assert.New(t)

	prog, err := doAssemble(t,
		"; print8",
		"LDI R0,8",
		"PRN R0    # print it",
		"HLT",
	)
	assert.NoError(err)
	assert.Equal([]byte{0x82, 0x00, 0x08, 0x47, 0x00, 0x01}, prog.Bytes)
	assert.Equal([]int{2, 2, 2, 3, 3, 4}, prog.Lines)
	assert.Equal("LDI R0,8", prog.Words[0])
	assert.Equal("PRN R0", prog.Words[3])
	assert.Equal("HLT", prog.Words[5])
}

func TestAssembler_Operands(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line  string
		bytes []byte
	}){
		{"ldi r1, 0x10", []byte{0x82, 1, 0x10}},
		{"ldi r1 0b101", []byte{0x82, 1, 5}},
		{"ldi r1, -1", []byte{0x82, 1, 0xff}},
		{"ldi r1, 255", []byte{0x82, 1, 0xff}},
		{"add r2, r3", []byte{0xa0, 2, 3}},
		{"sub r4, r5", []byte{0xa1, 4, 5}},
		{"mul r6, r0", []byte{0xa2, 6, 0}},
		{"div r0, r1", []byte{0xa3, 0, 1}},
		{"push SP", []byte{0x45, 7}},
		{"pop r3", []byte{0x46, 3}},
		{"call r2", []byte{0x50, 2}},
		{"jmp r2", []byte{0x54, 2}},
		{"ret", []byte{0x11}},
		{"ldi r0, STACK_TOP", []byte{0x82, 0, 0xf4}},
		{"ldi r0, $(STACK_TOP - 4)", []byte{0x82, 0, 0xf0}},
		{"ldi r0, $( 3 * (2 + 1) )", []byte{0x82, 0, 9}},
		{".byte 1, 2, 0x30", []byte{1, 2, 0x30}},
	}

	for _, entry := range table {
		prog, err := doAssemble(t, entry.line)
		if !assert.NoError(err, entry.line) {
			continue
		}
		assert.Equal(entry.bytes, prog.Bytes, entry.line)
	}
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	prog, err := doAssemble(t,
		"        LDI R1, SUB   ; forward reference",
		"        CALL R1",
		"        PRN R0",
		"        HLT",
		"SUB:    LDI R0, $(DONE - SUB)",
		"DONE:   RET",
	)
	assert.NoError(err)
	assert.Equal([]byte{
		0x82, 1, 8,
		0x50, 1,
		0x47, 0,
		0x01,
		0x82, 0, 3,
		0x11,
	}, prog.Bytes)
}

func TestAssembler_Equates(t *testing.T) {
	assert := assert.New(t)

	prog, err := doAssemble(t,
		".equ COUNT 3",
		".equ TOTAL $(COUNT * 4)",
		".equ ACC r2",
		"LDI ACC, TOTAL",
		"ADD ACC, ACC",
	)
	assert.NoError(err)
	assert.Equal([]byte{0x82, 2, 12, 0xa0, 2, 2}, prog.Bytes)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
	}){
		{"invalid", []string{"NOP"}, ErrOpcodeInvalid},
		{"extra", []string{"HLT r0"}, ErrOpcodeExtraArgs},
		{"missing", []string{"LDI r0"}, ErrOpcodeValueMissing},
		{"register", []string{"PRN r8"}, ErrRegisterInvalid},
		{"register_value", []string{"ADD r0, 3"}, ErrRegisterInvalid},
		{"range", []string{"LDI r0, 256"}, ErrValueRange},
		{"range_expr", []string{"LDI r0, $(200 + 100)"}, ErrValueRange},
		{"label_dup", []string{"A: HLT", "A: HLT"}, ErrLabelDuplicate},
		{"label_bad", []string{"1A: HLT"}, ErrLabelInvalid},
		{"equ_syntax", []string{".equ A"}, ErrEquateSyntax},
		{"equ_dup", []string{".equ A 1", ".equ A 2"}, ErrEquateDuplicate},
		{"byte_empty", []string{".byte"}, ErrOpcodeValueMissing},
		{"label_missing", []string{"LDI r0, NOWHERE"}, ErrLabelMissing("NOWHERE")},
		{"expr", []string{"LDI r0, $(1 +)"}, ErrParseExpression("1 +")},
		{"large", []string{strings.Repeat("HLT\n", MEMORY_SIZE+1)}, ErrProgramTooLarge},
	}

	for _, entry := range table {
		prog, err := doAssemble(t, entry.program...)
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
		var serr ErrSyntax
		assert.ErrorAs(err, &serr, entry.name)
	}
}

func TestAssembler_PredefineOverride(t *testing.T) {
	assert := assert.New(t)

	prog, err := doAssemble(t,
		".equ STACK_TOP 0x80",
		"LDI r0, STACK_TOP",
	)
	assert.NoError(err)
	assert.Equal([]byte{0x82, 0, 0x80}, prog.Bytes)
}

func TestAssembler_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	prog, err := doAssemble(t,
		"LDI R0,8",
		"PRN R0",
		"HLT",
	)
	assert.NoError(err)

	var sb strings.Builder
	_, err = prog.WriteTo(&sb)
	assert.NoError(err)

	loaded, err := ParseProgram(strings.NewReader(sb.String()))
	assert.NoError(err)
	assert.Equal(prog.Bytes, loaded.Bytes)
	assert.Equal(prog.Words, loaded.Words)
}
