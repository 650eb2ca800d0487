package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrAddressOutOfBounds = errors.New(f("address out of bounds"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrDivisionByZero     = errors.New(f("division by zero"))
	ErrAluUnsupported     = errors.New(f("unsupported alu operation"))
	ErrOpcodeUnknown      = errors.New(f("unknown opcode"))
	ErrStackOverflow      = errors.New(f("stack overflow"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))
	ErrHalted             = errors.New(f("halted"))
	ErrConsoleMissing     = errors.New(f("console missing"))

	// Loader errors
	ErrProgramNotFound = errors.New(f("program not found"))
	ErrProgramDigit    = errors.New(f("expected 8 binary digits"))
	ErrProgramTooLarge = errors.New(f("program exceeds memory"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrAddress reports the memory address of a failed access.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %d", int(ea))
}

// ErrRegister reports the register index of a failed access.
type ErrRegister int

func (er ErrRegister) Error() string {
	return f("register %d", int(er))
}

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("opcode 0b%08b %v", uint8(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
