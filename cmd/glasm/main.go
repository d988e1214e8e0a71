// Command glasm is the glasm GLSL to asm.js compiler CLI.
//
// Usage:
//
//	glasm [options] [input]
//
// Examples:
//
//	glasm shader.glsl                    # Compile to stdout
//	glasm -o shader.js shader.glsl       # Compile to a file
//	glasm -ignore-main lib.glsl          # Compile functions without main
//	glasm                                # Interactive session
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/gogpu/glasm"
	"github.com/gogpu/glasm/glsl"
)

var (
	output     = flag.String("o", "", "output file (default: stdout)")
	ignoreMain = flag.Bool("ignore-main", false, "do not require a main function")
	validate   = flag.Bool("validate", true, "validate the lowered program")
	stackSize  = flag.Int("stack", 4096, "stack buffer size in bytes (power of two)")
	verbose    = flag.Bool("v", false, "log compilation stages to stderr")
	version    = flag.Bool("version", false, "print version")
)

const glasmVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("glasm version %s\n", glasmVersion)
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := glasm.DefaultOptions()
	opts.IgnoreMain = *ignoreMain
	opts.Validate = *validate
	opts.StackSize = *stackSize

	args := flag.Args()
	if len(args) == 0 && isTerminal(os.Stdin) {
		os.Exit(repl(opts, logger))
	}

	inputPath := "-"
	if len(args) > 0 {
		inputPath = args[0]
	}
	source, err := readSource(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	js, err := compile(source, opts, logger)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(js), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", errors.Wrapf(err, "writing %s", *output))
			os.Exit(1)
		}
		fmt.Printf("Successfully compiled %s to %s (%d bytes)\n", inputPath, *output, len(js))
		return
	}
	if _, err := io.WriteString(os.Stdout, js); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", errors.Wrap(err, "writing output"))
		os.Exit(1)
	}
}

// readSource reads the named file, or stdin for "-".
func readSource(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}

// compile runs the pipeline stage by stage so each can be logged.
func compile(source string, opts glasm.Options, logger *slog.Logger) (string, error) {
	logger.Debug("parsing", "bytes", len(source), "ignoreMain", opts.IgnoreMain)
	program, err := glasm.Parse(source, opts)
	if err != nil {
		return "", err
	}
	logger.Debug("parsed",
		"functions", len(program.Functions),
		"globals", len(program.Globals),
		"imports", program.Imports(),
		"footprint", program.Footprint,
		"stack", program.StackSize)
	if program.Footprint > program.StackSize {
		logger.Warn("allocation sites request more than the stack buffer",
			"footprint", program.Footprint, "stack", program.StackSize)
	}

	if opts.Validate {
		errs, err := glasm.Validate(program)
		if err != nil {
			return "", errors.Wrap(err, "validation error")
		}
		for _, e := range errs {
			logger.Error("validation", "error", e.Error())
		}
		if len(errs) > 0 {
			return "", errors.Wrap(&errs[0], "validation failed")
		}
		logger.Debug("validated")
	}

	js, err := glasm.Generate(program, opts)
	if err != nil {
		return "", err
	}
	logger.Debug("generated", "bytes", len(js))
	return js, nil
}

// reportError prints a compilation error, with source context when the
// error carries a position.
func reportError(err error) {
	var se *glsl.SourceError
	if errors.As(err, &se) {
		fmt.Fprint(os.Stderr, se.FormatWithContext())
		return
	}
	fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: glasm [options] [input.glsl]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  glasm shader.glsl               Compile to stdout\n")
	fmt.Fprintf(os.Stderr, "  glasm -o shader.js shader.glsl  Compile to file\n")
	fmt.Fprintf(os.Stderr, "  glasm < shader.glsl             Compile stdin\n")
	fmt.Fprintf(os.Stderr, "  glasm                           Interactive session\n")
}
