package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Program is a memory image, with its source listing.
type Program struct {
	Bytes []byte   // Memory image, loaded from address 0.
	Lines []int    // Source line number of each byte.
	Words []string // Listing text of each byte.
}

// Append adds a byte to the program image.
func (prog *Program) Append(value byte, lineno int, words string) (err error) {
	if len(prog.Bytes) >= MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	prog.Bytes = append(prog.Bytes, value)
	prog.Lines = append(prog.Lines, lineno)
	prog.Words = append(prog.Words, words)

	return
}

// LineNo returns the source line of the byte at address, or 0 if unknown.
func (prog *Program) LineNo(address int) int {
	if address < 0 || address >= len(prog.Lines) {
		return 0
	}
	return prog.Lines[address]
}

// WriteTo writes the program in the binary-literal format.
func (prog *Program) WriteTo(w io.Writer) (n int64, err error) {
	for addr, value := range prog.Bytes {
		var line string
		if addr < len(prog.Words) && len(prog.Words[addr]) != 0 {
			line = fmt.Sprintf("%08b # %v\n", value, prog.Words[addr])
		} else {
			line = fmt.Sprintf("%08b\n", value)
		}
		var count int
		count, err = io.WriteString(w, line)
		n += int64(count)
		if err != nil {
			return
		}
	}

	return
}

// ParseProgram parses the binary-literal program format.
//
// A line whose first character is '0' or '1' holds one byte as 8 binary
// digits; anything after the digits is ignored. All other lines are skipped.
func ParseProgram(r io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		if len(line) == 0 || (line[0] != '0' && line[0] != '1') {
			continue
		}

		if len(line) < 8 {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: ErrProgramDigit}
			return
		}

		var value uint64
		value, err = strconv.ParseUint(line[:8], 2, 8)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: errors.Join(ErrProgramDigit, err)}
			return
		}

		var words string
		_, comment, ok := strings.Cut(line[8:], "#")
		if ok {
			words = strings.TrimSpace(comment)
		}

		err = prog.Append(byte(value), lineno, words)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	err = scanner.Err()
	return
}

// ReadProgram parses the program file at path. A file that cannot be opened
// is reported as ErrProgramNotFound.
func ReadProgram(path string) (prog *Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = errors.Join(ErrProgramNotFound, err)
		return
	}
	defer inf.Close()

	return ParseProgram(inf)
}
