package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/gogpu/glasm"
	"github.com/gogpu/glasm/glsl"
)

const (
	banner      = "glasm " + glasmVersion + ": enter GLSL declarations, :quit to exit"
	historyFile = ".glasm_history"
	promptMain  = "glsl> "
	promptCont  = "...   "
)

// repl compiles each complete unit typed at the prompt and prints the
// module. Units are independent and compiled without the main check.
func repl(opts glasm.Options, logger *slog.Logger) int {
	fmt.Println(banner)
	opts.IgnoreMain = true

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, err := readUnit(ln)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", errors.Wrap(err, "reading input"))
			return 1
		}

		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ":"):
			if trimmed == ":quit" || trimmed == ":q" {
				return 0
			}
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		js, err := compile(src, opts, logger)
		if err != nil {
			reportError(err)
			continue
		}
		fmt.Print(js)
	}
}

// readUnit reads lines until they form a complete unit.
func readUnit(ln *liner.State) (string, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if complete(b.String()) {
			return b.String(), nil
		}
	}
}

// complete reports whether src can be compiled as is: its braces and
// parentheses balance and it ends with ; or }. Commands and blank input are
// always complete.
func complete(src string) bool {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || strings.HasPrefix(trimmed, ":") {
		return true
	}
	tokens, _ := glsl.NewLexer(src).Tokenize()
	depth := 0
	last := glsl.TokenEOF
	for _, tok := range tokens {
		switch tok.Kind {
		case glsl.TokenLeftBrace, glsl.TokenLeftParen:
			depth++
		case glsl.TokenRightBrace, glsl.TokenRightParen:
			depth--
		case glsl.TokenEOF:
			continue
		}
		last = tok.Kind
	}
	if depth > 0 {
		return false
	}
	return last == glsl.TokenSemicolon || last == glsl.TokenRightBrace || depth < 0
}
