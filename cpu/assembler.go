// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is a two pass assembler for LS-8 mnemonics.
//
//	label:  MNEMONIC operand, operand   ; comment
//	        .equ NAME value
//	        .byte value, value, ...
//
// Values are numbers (0x, 0b, 0o prefixes allowed), labels, equates, or
// $(expr) compile-time expressions over the numeric equates and labels.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// asmLine is a parsed source line awaiting pass two.
type asmLine struct {
	LineNo    int
	Line      string
	Directive string
	Code      Code
	Args      []string
}

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerOf returns the register index named by word.
func (asm *Assembler) registerOf(word string) (index int, err error) {
	word = asm.expand(word)

	lower := strings.ToLower(word)
	if len(lower) == 2 && lower[0] == 'r' && lower[1] >= '0' && lower[1] < '0'+REGISTER_COUNT {
		index = int(lower[1] - '0')
		return
	}

	err = errors.Join(ErrRegisterInvalid, ErrParseValue(word))
	return
}

// expand replaces a word with its equate, repeatedly.
func (asm *Assembler) expand(word string) string {
	for range 8 {
		value, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = value
	}
	return word
}

// numberOf parses a numeric literal, and checks it fits in a byte.
// Negative values down to -128 are stored as two's complement.
func numberOf(word string) (value byte, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseValue(word)
		return
	}

	if v64 < -128 || v64 > 0xff {
		err = errors.Join(ErrValueRange, ErrParseValue(word))
		return
	}

	value = byte(v64)
	return
}

// valueOf returns the value of an operand word.
func (asm *Assembler) valueOf(word string) (value byte, err error) {
	word = asm.expand(word)

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2 : len(word)-1])
	}

	if addr, ok := asm.Label[word]; ok {
		return numberOf(strconv.Itoa(addr))
	}

	if reIdentifier.MatchString(word) {
		err = ErrLabelMissing(word)
		return
	}

	return numberOf(word)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value byte, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return numberOf(strconv.FormatInt(st_int64, 10))
}

// splitWords splits a line on whitespace and commas, keeping $(...)
// expressions whole.
func splitWords(line string) (words []string) {
	var word strings.Builder
	depth := 0

	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}

	for _, ch := range line {
		switch {
		case ch == '(':
			depth++
			word.WriteRune(ch)
		case ch == ')':
			if depth > 0 {
				depth--
			}
			word.WriteRune(ch)
		case depth == 0 && (ch == ',' || ch == ' ' || ch == '\t'):
			flush()
		default:
			word.WriteRune(ch)
		}
	}
	flush()

	return
}

// stripComment removes a trailing ';' or '#' comment.
func stripComment(line string) string {
	if n := strings.IndexAny(line, ";#"); n >= 0 {
		line = line[:n]
	}
	return strings.TrimSpace(line)
}

// parseLine runs pass one over a single line, returning the number of bytes
// the line will emit.
func (asm *Assembler) parseLine(lineno int, line string, address int) (entry *asmLine, size int, err error) {
	words := splitWords(stripComment(line))

	if len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reIdentifier.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		if _, found := asm.Label[label]; found {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = address
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	entry = &asmLine{
		LineNo: lineno,
		Line:   line,
		Args:   words[1:],
	}

	switch strings.ToLower(words[0]) {
	case ".equ":
		if len(words) != 3 || !reIdentifier.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		name, value := words[1], words[2]
		_, predefined := asm.predefine[name]
		if _, found := asm.Equate[name]; found && !predefined {
			err = ErrEquateDuplicate
			return
		}
		if strings.HasPrefix(value, "$(") {
			var v8 byte
			v8, err = asm.valueOf(value)
			if err != nil {
				return
			}
			value = strconv.Itoa(int(v8))
		}
		asm.Equate[name] = value
		entry = nil
	case ".byte":
		if len(entry.Args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		entry.Directive = ".byte"
		size = len(entry.Args)
	default:
		code, ok := LookupCode(strings.ToUpper(words[0]))
		if !ok {
			err = ErrOpcodeInvalid
			return
		}
		operands := code.Operands()
		switch {
		case len(entry.Args) > operands:
			err = ErrOpcodeExtraArgs
			return
		case len(entry.Args) < operands:
			err = ErrOpcodeValueMissing
			return
		}
		entry.Code = code
		size = 1 + operands
	}

	return
}

// emit runs pass two over a single line.
func (asm *Assembler) emit(prog *Program, entry *asmLine) (err error) {
	if entry.Directive == ".byte" {
		for n, arg := range entry.Args {
			var value byte
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			words := ""
			if n == 0 {
				words = ".byte"
			}
			err = prog.Append(value, entry.LineNo, words)
			if err != nil {
				return
			}
		}
		return
	}

	code := entry.Code
	words := code.String()
	if len(entry.Args) > 0 {
		words += " " + strings.Join(entry.Args, ",")
	}

	if asm.Verbose {
		log.Debugf("asm: %02x: %08b %v", len(prog.Bytes), uint8(code), words)
	}

	err = prog.Append(byte(code), entry.LineNo, words)
	if err != nil {
		return
	}

	for n, arg := range entry.Args {
		var value byte
		if n == 0 || code.IsAlu() {
			var index int
			index, err = asm.registerOf(arg)
			value = byte(index)
		} else {
			value, err = asm.valueOf(arg)
		}
		if err != nil {
			return
		}
		err = prog.Append(value, entry.LineNo, "")
		if err != nil {
			return
		}
	}

	return
}

// Parse assembles LS-8 source into a program.
func (asm *Assembler) Parse(r io.Reader) (prog *Program, err error) {
	asm.Label = map[string]int{}
	asm.Equate = map[string]string{}
	maps.Copy(asm.Equate, asm.predefine)

	var entries []*asmLine

	scanner := bufio.NewScanner(r)
	lineno := 0
	address := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		var entry *asmLine
		var size int
		entry, size, err = asm.parseLine(lineno, line, address)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
		if entry == nil {
			continue
		}

		address += size
		if address > MEMORY_SIZE {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrProgramTooLarge}
			return
		}
		entries = append(entries, entry)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{}
	for _, entry := range entries {
		err = asm.emit(prog, entry)
		if err != nil {
			err = ErrSyntax{LineNo: entry.LineNo, Line: entry.Line, Err: err}
			prog = nil
			return
		}
	}

	return
}
