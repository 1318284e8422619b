package cmd

import (
	"fmt"
	"os"

	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/driver"
	"github.com/spf13/cobra"
)

var disassemble bool

// compileCmd checks an LALG program for compile-time errors and, on
// request, prints its disassembled bytecode. It never writes an object
// file to disk: spec.md §1 lists "producing a standalone object file" as
// an explicit non-goal, and the bytecode buffer is an in-memory
// collaborator between the parser and the VM, not a persisted format.
var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile an LALG program and report any errors",
	Long: `Compile an LALG source file to bytecode without running it.

Examples:
  lalg compile program.lalg
  lalg compile --disasm program.lalg`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&disassemble, "disasm", false, "print the disassembled bytecode after a successful compile")
}

func compileScript(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	result, compileErr := driver.Compile(path, cfg)
	if result == nil {
		return reportError(compileErr, verbose)
	}
	if errs := result.Parser.Errors(); len(errs) > 0 {
		printCompileErrors(errs, verbose)
		return fmt.Errorf("compilation failed with %d error(s)", len(errs))
	}

	fmt.Printf("%s compiled cleanly (%d bytes of bytecode)\n", path, result.Buffer.Len())
	if disassemble {
		fmt.Fprintln(os.Stdout, bytecode.Disassemble(result.Buffer))
	}
	return nil
}
