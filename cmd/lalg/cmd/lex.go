package cmd

import (
	"fmt"
	"os"

	"github.com/lalg-lang/lalg/internal/driver"
	"github.com/lalg-lang/lalg/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	showPos  bool
	showType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize an LALG file and print the resulting tokens",
	Long: `Tokenize an LALG program and print the resulting tokens, one per line.

Examples:
  lalg lex program.lalg
  lalg lex --show-type --show-pos program.lalg`,
	Args: cobra.ExactArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexScript(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tokens, scanErrs, err := driver.Lex(path, cfg)
	if err != nil {
		return reportError(err, false)
	}

	for _, tok := range tokens {
		printToken(tok)
	}

	if len(scanErrs) > 0 {
		// Lexical errors are compile-time errors too: spec.md §6/§7 put
		// every compile/runtime error message on stdout, not stderr.
		for _, e := range scanErrs {
			fmt.Fprintln(os.Stdout, e.Error())
		}
		return fmt.Errorf("lexing found %d error(s)", len(scanErrs))
	}
	return nil
}

func printToken(tok lexer.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}

	switch {
	case tok.Type == lexer.EOF:
		output += " EOF"
	case tok.Literal == "":
		output += fmt.Sprintf(" %s", tok.Type)
	default:
		output += fmt.Sprintf(" %q", tok.Literal)
	}

	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}

	fmt.Println(output)
}
