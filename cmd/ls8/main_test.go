package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
)

func doExecute(args ...string) (output string, err error) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	output = out.String()
	return
}

func writeFile(t *testing.T, name string, lines ...string) string {
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Print8(t *testing.T) {
	assert := assert.New(t)

	path := writeFile(t, "print8.ls8",
		"# Print the number 8",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	)

	output, err := doExecute(path)
	assert.NoError(err)
	assert.Equal("8\n", output)
	assert.Equal(0, exitStatus(err))
}

func TestRun_NotFound(t *testing.T) {
	assert := assert.New(t)

	output, err := doExecute(filepath.Join(t.TempDir(), "missing.ls8"))
	assert.ErrorIs(err, cpu.ErrProgramNotFound)
	assert.Empty(output)
	assert.Equal(2, exitStatus(err))
}

func TestRun_Fatal(t *testing.T) {
	assert := assert.New(t)

	unknown := writeFile(t, "unknown.ls8", "00000000", "00000001")
	_, err := doExecute(unknown)
	assert.ErrorIs(err, cpu.ErrOpcodeUnknown)
	assert.Equal(1, exitStatus(err))

	divzero := writeFile(t, "divzero.ls8",
		"10100011", // DIV R0,R1
		"00000000",
		"00000001",
		"00000001",
	)
	_, err = doExecute(divzero)
	assert.ErrorIs(err, cpu.ErrDivisionByZero)
	assert.Equal(1, exitStatus(err))
}

func TestRun_Usage(t *testing.T) {
	assert := assert.New(t)

	_, err := doExecute()
	assert.ErrorIs(err, ErrUsage)
	assert.Equal(1, exitStatus(err))
}

func TestAsm(t *testing.T) {
	assert := assert.New(t)

	source := writeFile(t, "call.asm",
		"        LDI R1, DOUBLE",
		"        LDI R0, 21",
		"        CALL R1",
		"        PRN R0",
		"        HLT",
		"DOUBLE: ADD R0, R0",
		"        RET",
	)
	program := filepath.Join(t.TempDir(), "call.ls8")

	output, err := doExecute("asm", "-o", program, source)
	assert.NoError(err)
	assert.Empty(output)

	text, err := os.ReadFile(program)
	assert.NoError(err)
	assert.True(strings.HasPrefix(string(text), "10000010 # LDI R1,DOUBLE\n"))

	output, err = doExecute(program)
	assert.NoError(err)
	assert.Equal("42\n", output)
}

func TestAsm_Stdout(t *testing.T) {
	assert := assert.New(t)

	source := writeFile(t, "hlt.asm", "HLT")

	output, err := doExecute("asm", "-o", "-", source)
	assert.NoError(err)
	assert.Equal("00000001 # HLT\n", output)
}

func TestAsm_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := doExecute("asm", "-o", "-", filepath.Join(t.TempDir(), "missing.asm"))
	assert.ErrorIs(err, cpu.ErrProgramNotFound)
	assert.Equal(2, exitStatus(err))

	source := writeFile(t, "bad.asm", "NOP")
	_, err = doExecute("asm", "-o", "-", source)
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
	assert.Equal(1, exitStatus(err))
}
