package cpu

// Alu evaluates an ALU operation on two register values. The result is
// truncated to 8 bits, so ADD, SUB and MUL wrap modulo 256.
func Alu(op Code, a byte, b byte) (result byte, err error) {
	switch op {
	case OP_ADD:
		result = a + b
	case OP_SUB:
		result = a - b
	case OP_MUL:
		result = a * b
	case OP_DIV:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		result = a / b
	default:
		err = ErrAluUnsupported
	}

	return
}
