// Command chef is the command-line front end for the chef language: a
// file runner and an interactive REPL, both wired to the same
// compiler and VM. It plays the same role as the teacher's cmd/smog
// front end, cut down to this language's surface: no .sg bytecode
// files, since chef is not spec'd to persist bytecode to disk (see
// SPEC_FULL §6).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/kristofer/chef/pkg/chunk"
	"github.com/kristofer/chef/pkg/clilog"
	"github.com/kristofer/chef/pkg/compiler"
	"github.com/kristofer/chef/pkg/config"
	"github.com/kristofer/chef/pkg/natives"
	"github.com/kristofer/chef/pkg/vm"
)

const version = "0.1.0"

func main() {
	disasmFlag := flag.Bool("disasm", false, "print bytecode disassembly before running")
	configFlag := flag.String("config", "", "path to a chef.yaml config file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: chef [-disasm] [-config path] [script]")
	}
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(64)
	}
	logger := clilog.New(os.Stderr, clilog.ParseLevel(cfg.LogLevel))

	args := flag.Args()
	switch len(args) {
	case 0:
		repl(cfg, logger, *disasmFlag)
	case 1:
		runFile(cfg, logger, args[0], *disasmFlag)
	default:
		flag.Usage()
		os.Exit(64)
	}
}

// runFile reads, compiles, and runs one script, mapping errors to the
// sysexits-style codes the language promises: 65 for a compile error,
// 70 for a runtime fault, 74 if the file itself can't be read.
func runFile(cfg *config.Config, logger *clilog.Logger, path string, disasm bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		logger.Error("", "could not read %s: %v", path, err)
		fmt.Fprintln(os.Stderr, "Could not read file.")
		os.Exit(74)
	}

	runID := uuid.NewString()
	logger.Info(runID, "running %s (%s)", path, humanize.Bytes(uint64(len(source))))

	fn, err := compiler.Compile(string(source))
	if err != nil {
		logger.Warn(runID, "compile error in %s", path)
		os.Exit(65)
	}

	if disasm {
		printDisassembly(fn)
	}

	machine := newMachine()
	if err := machine.Interpret(fn); err != nil {
		fmt.Fprintln(os.Stderr, colorize(cfg, err.Error()))
		logger.Warn(runID, "runtime error in %s", path)
		os.Exit(70)
	}
	logger.Info(runID, "finished %s", path)
}

// repl runs an interactive read-eval-print loop. Each line is compiled
// and run independently against one persistent VM, so global bindings
// from one line are visible to the next — matching the book VM's REPL
// contract the teacher's cmd/smog front end also followed.
func repl(cfg *config.Config, logger *clilog.Logger, disasm bool) {
	fmt.Printf("chef %s\n", version)
	fmt.Println("Type an expression or statement, Ctrl-D to exit.")

	machine := newMachine()
	scanner := bufio.NewScanner(os.Stdin)
	prompt := "chef > "

	for {
		fmt.Print(colorizePrompt(cfg, prompt))
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.TrimSpace(line) == ":disasm" {
			disasm = !disasm
			fmt.Printf("disassembly %s\n", onOff(disasm))
			continue
		}

		runID := uuid.NewString()
		fn, err := compiler.Compile(line)
		if err != nil {
			logger.Debug(runID, "compile error in REPL input")
			continue
		}
		if disasm {
			printDisassembly(fn)
		}
		if err := machine.Interpret(fn); err != nil {
			fmt.Fprintln(os.Stderr, colorize(cfg, err.Error()))
			logger.Debug(runID, "runtime error in REPL input")
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("", "reading stdin: %v", err)
	}
}

// newMachine builds a VM with every native registered, tracing every
// dispatched instruction to stderr when CHEF_DEBUG_TRACE is set —
// the environment-toggle counterpart to -disasm, for inspecting a
// run in progress rather than the bytecode a compile produced.
func newMachine() *vm.VM {
	machine := vm.New()
	natives.Register(machine.Define)
	if os.Getenv("CHEF_DEBUG_TRACE") != "" {
		machine.Trace = true
	}
	return machine
}

// printDisassembly walks a compiled function and every nested function
// constant it interned, printing each chunk's disassembly once.
func printDisassembly(fn *chunk.Function) {
	name := fn.Name
	if name == "" {
		name = "script"
	}
	fmt.Println(fn.Chunk.Disassemble(name))
	fmt.Printf("(%s)\n", humanize.Bytes(uint64(len(fn.Chunk.Code))))

	for i := 0; i < fn.Chunk.ConstantCount(); i++ {
		c := fn.Chunk.Constant(byte(i))
		if c.IsFunction() {
			printDisassembly(chunk.Unwrap(c))
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// colorEnabled reports whether ANSI color should be used, per the
// color field in chef.yaml and whether stdout is an actual terminal.
func colorEnabled(cfg *config.Config) bool {
	switch cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}

func colorize(cfg *config.Config, s string) string {
	if !colorEnabled(cfg) {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func colorizePrompt(cfg *config.Config, s string) string {
	if !colorEnabled(cfg) {
		return s
	}
	return "\x1b[36m" + s + "\x1b[0m"
}
