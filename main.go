package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagTrace       bool
	flagDisassemble bool
	flagGCStress    bool
	flagGCLog       bool
	flagLogLevel    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glox [script]",
	Short: "A bytecode interpreter for the Lox language",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm := buildVM()
		defer vm.Free()

		if len(args) == 1 {
			return runFile(vm, args[0])
		}
		return runREPL(vm)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&flagTrace, "trace", false, "print each instruction and the stack before executing it")
	rootCmd.Flags().BoolVar(&flagDisassemble, "disassemble", false, "print disassembled bytecode for each compiled function")
	rootCmd.Flags().BoolVar(&flagGCStress, "gc-stress", false, "run a collection before every allocation")
	rootCmd.Flags().BoolVar(&flagGCLog, "gc-log", false, "emit a structured log line for every collection")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "level for --gc-log diagnostics")
}

func buildVM() *VM {
	config := DefaultConfig()
	config.TraceExecution = flagTrace
	config.Disassemble = flagDisassemble
	config.GCStress = flagGCStress

	vm := NewVM(config)

	if flagGCLog {
		logger, err := NewLogger(flagLogLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "glox: invalid --log-level: %v\n", err)
			logger = zap.NewNop()
		}
		vm.WithLogger(logger)
	}

	return vm
}

func runFile(vm *VM, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("glox: %w", err)
	}

	switch vm.Interpret(string(source)) {
	case InterpretCompileError:
		os.Exit(65)
	case InterpretRuntimeError:
		os.Exit(70)
	}
	return nil
}

// runREPL drives an interactive session, one statement or expression per
// line. It only shows a ">" prompt when stdin is an actual terminal, so
// piping a script through stdin behaves like a headless run.
func runREPL(vm *VM) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	reader := bufio.NewScanner(os.Stdin)
	reader.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if interactive {
			fmt.Fprint(vm.config.Stdout, "> ")
		}
		if !reader.Scan() {
			if interactive {
				fmt.Fprintln(vm.config.Stdout)
			}
			return reader.Err()
		}
		vm.Interpret(reader.Text())
	}
}
