package main

import (
	"errors"
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrUsage = errors.New(f("expected a single program file"))
	ErrQuit  = errors.New(f("quit"))
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd loads and runs a program.
var rootCmd = &cobra.Command{
	Use:   "ls8 [flags] program.ls8",
	Short: "Run an LS-8 program.",
	Long: `Load a binary-literal LS-8 program into memory, and execute it
until it halts. Exits 0 on HLT, 2 if the program file cannot be read,
and 1 for any other failure.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRootCmd,
}

func runRootCmd(cmd *cobra.Command, args []string) (err error) {
	if GetFlag(cmd, "version") {
		printVersion(cmd)
		return
	}

	if len(args) != 1 {
		err = ErrUsage
		return
	}

	verbose := GetFlag(cmd, "verbose")
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	prog, err := cpu.ReadProgram(args[0])
	if err != nil {
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Program = prog
	emu.Tape.Output = cmd.OutOrStdout()
	emu.MaxTicks = int(GetUint(cmd, "max-ticks"))

	if GetFlag(cmd, "trace") {
		emu.TraceOutput = cmd.ErrOrStderr()
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	if GetFlag(cmd, "step") {
		return stepProgram(emu)
	}

	err = emu.Run()
	if verbose {
		log.Debugf("ls8: %d ticks\n%v", emu.Ticks(), emu.Cpu.String())
	}

	return
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	fmt.Fprint(out, "ls8 ")
	if Version != "" {
		// Built via "make"
		fmt.Fprintf(out, "%s", Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		fmt.Fprintf(out, "%s", info.Main.Version)
	} else {
		// Unknown, perhaps "go run"
		fmt.Fprintf(out, "(unknown version)")
	}
	fmt.Fprintln(out)
}

// exitStatus maps the result of a command onto a process exit status.
func exitStatus(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cpu.ErrProgramNotFound):
		return 2
	default:
		return 1
	}
}

// Execute runs the root command, reports any failure, and returns the
// process exit status.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		log.Errorf("ls8: %v", err)
	}

	return exitStatus(err)
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.Flags().BoolP("trace", "t", false, "trace each instruction to stderr")
	rootCmd.Flags().BoolP("step", "s", false, "single step with a key press per instruction")
	rootCmd.Flags().Uint("max-ticks", 0, "stop after this many instructions (0 is unlimited)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
