// Command slate is the CLI entry point for the slate front end.
//
// Usage:
//
//	slate tokens <file> [--json]   Tokenize and print tokens
//	slate parse  <file>            Parse and print AST (JSON)
//	slate check  <file>            Parse and report diagnostics only
//	slate repl                     Start interactive REPL
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"slate-lang/internal/ast"
	"slate-lang/internal/lexer"
	"slate-lang/internal/parser"
)

func main() {
	app := &cli.App{
		Name:  "slate",
		Usage: "front end for the slate scripting language",
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "Tokenize a source file and print the token stream",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Print tokens as JSON",
					},
				},
				Action: cmdTokens,
			},
			{
				Name:      "parse",
				Usage:     "Parse a source file and print the AST as JSON",
				ArgsUsage: "<file>",
				Action:    cmdParse,
			},
			{
				Name:      "check",
				Usage:     "Parse a source file and report diagnostics",
				ArgsUsage: "<file>",
				Action:    cmdCheck,
			},
			{
				Name:   "repl",
				Usage:  "Start an interactive parse-and-dump REPL",
				Action: cmdRepl,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func sourceArg(c *cli.Context) (string, string, error) {
	filename := c.Args().First()
	if filename == "" {
		return "", "", cli.Exit("error: missing file argument", 1)
	}
	source, err := os.ReadFile(filename)
	if err != nil {
		return "", "", cli.Exit(fmt.Sprintf("error: cannot read file %s: %v", filename, err), 1)
	}
	return string(source), filename, nil
}

func cmdTokens(c *cli.Context) error {
	source, filename, err := sourceArg(c)
	if err != nil {
		return err
	}

	tokens, lexErr := lexer.New(source, filename).Tokenize()
	if c.Bool("json") {
		printTokensJSON(tokens, lexErr)
	} else {
		printTokensText(tokens, lexErr)
	}
	if lexErr != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func cmdParse(c *cli.Context) error {
	source, filename, err := sourceArg(c)
	if err != nil {
		return err
	}

	prog, parseErr := parser.Parse(source, filename)
	if parseErr != nil {
		printJSON(map[string]interface{}{
			"ast":         nil,
			"diagnostics": []interface{}{diagToMap(parseErr)},
		})
		return cli.Exit("", 1)
	}

	printJSON(map[string]interface{}{
		"ast":         ast.ProgramToMap(prog),
		"diagnostics": []interface{}{},
	})
	return nil
}

func cmdCheck(c *cli.Context) error {
	source, filename, err := sourceArg(c)
	if err != nil {
		return err
	}

	if _, parseErr := parser.Parse(source, filename); parseErr != nil {
		printDiag(os.Stderr, parseErr)
		return cli.Exit("", 1)
	}
	fmt.Printf("%s: ok\n", filename)
	return nil
}
