package cmd

import (
	"fmt"
	"os"

	"github.com/lalg-lang/lalg/internal/driver"
	"github.com/lalg-lang/lalg/internal/errors"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and run an LALG program",
	Long: `Compile an LALG source file to bytecode and execute it immediately.

Examples:
  lalg run program.lalg
  lalg run --quiet program.pas < input.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

var runQuiet bool

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "suppress the Done!/Flushing... banners")
}

func runScript(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Quiet = cfg.Quiet || runQuiet

	verbose, _ := cmd.Flags().GetBool("verbose")

	result, runErr := driver.Compile(path, cfg)
	if result != nil && len(result.Parser.Errors()) > 0 {
		printCompileErrors(result.Parser.Errors(), verbose)
		return fmt.Errorf("compilation failed with %d error(s)", len(result.Parser.Errors()))
	}
	if runErr != nil {
		return reportError(runErr, verbose)
	}

	if execErr := driver.Execute(result, cfg, os.Stdin, os.Stdout); execErr != nil {
		return reportError(execErr, verbose)
	}
	return nil
}

// printCompileErrors and reportError both write to stdout, not stderr:
// spec.md §6/§7 require the error message to land on stdout, interleaved
// with whatever program output was already flushed, rather than a
// separate stderr stream.
func printCompileErrors(errs []*errors.CompilerError, verbose bool) {
	for i, e := range errs {
		if verbose {
			fmt.Fprintln(os.Stdout, e.Format(true))
		} else {
			fmt.Fprintln(os.Stdout, e.Error())
		}
		if verbose && i < len(errs)-1 {
			fmt.Fprintln(os.Stdout)
		}
	}
}

func reportError(err error, verbose bool) error {
	if ce, ok := err.(*errors.CompilerError); ok {
		if verbose {
			fmt.Fprintln(os.Stdout, ce.Format(true))
		} else {
			fmt.Fprintln(os.Stdout, ce.Error())
		}
		return fmt.Errorf("%s", ce.Kind)
	}
	fmt.Fprintln(os.Stdout, err)
	return err
}
