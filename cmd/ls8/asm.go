package main

import (
	"errors"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

var asmCmd = &cobra.Command{
	Use:   "asm [flags] source.asm",
	Short: "Assemble LS-8 mnemonics.",
	Long:  `Assemble LS-8 mnemonic source into the binary-literal program format.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAsmCmd,
}

func runAsmCmd(cmd *cobra.Command, args []string) (err error) {
	verbose := GetFlag(cmd, "verbose")
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	inf, err := os.Open(args[0])
	if err != nil {
		err = errors.Join(cpu.ErrProgramNotFound, err)
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emulator.NewEmulator().Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		return
	}

	var out io.Writer
	output := GetString(cmd, "output")
	if output == "-" {
		out = cmd.OutOrStdout()
	} else {
		var ouf *os.File
		ouf, err = os.Create(output)
		if err != nil {
			return
		}
		defer func() {
			cerr := ouf.Close()
			if err == nil {
				err = cerr
			}
		}()
		out = ouf
	}

	_, err = prog.WriteTo(out)
	return
}

func init() {
	asmCmd.Flags().StringP("output", "o", "-", "program file to write")
	rootCmd.AddCommand(asmCmd)
}
