package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"slate-lang/internal/ast"
	"slate-lang/internal/parser"
)

// cmdRepl reads statements interactively, parses each complete input and
// prints the resulting AST. Multi-line input is accumulated while braces are
// unbalanced.
func cmdRepl(c *cli.Context) error {
	// History file: ~/.slate_history
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".slate_history")
	}

	prompt := color.GreenString("slate> ")
	contPrompt := color.HiBlackString("...    ")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("readline init failed: %v", err), 1)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s %s\n\n",
		color.New(color.Bold, color.FgCyan).Sprint("slate REPL"),
		color.HiBlackString("(type 'exit' or Ctrl+D to quit)"))

	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt(contPrompt)
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if braceDepth > 0 {
					// Cancel multi-line input
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s\n", color.HiBlackString("(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		// Count braces for multi-line input
		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		source := accumulated.String()
		accumulated.Reset()

		if strings.TrimSpace(source) == "" {
			continue
		}

		prog, parseErr := parser.Parse(source, "<repl>")
		if parseErr != nil {
			printDiag(rl.Stderr(), parseErr)
			continue
		}
		printJSON(ast.ProgramToMap(prog))
	}

	return nil
}
