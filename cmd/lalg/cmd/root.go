package cmd

import (
	"fmt"

	"github.com/lalg-lang/lalg/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	rootInput  string
	rootOutput string
)

// rootCmd, run bare with --input, is the `prog --input <path> [--output
// <path>]` surface spec.md §6 specifies directly: it compiles and
// executes in one step, identically to the `run` subcommand. --output
// is accepted for compatibility but unused, per §6 ("declared but unused
// in the source").
var rootCmd = &cobra.Command{
	Use:   "lalg",
	Short: "LALG compiler and virtual machine",
	Long: `lalg compiles and runs programs written in LALG, a small Pascal-dialect
teaching language.

The pipeline is a single-pass recursive-descent parser/code generator
that emits bytecode directly as it recognizes productions, and a
stack-based virtual machine that interprets that bytecode.`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rootInput == "" {
			return cmd.Help()
		}
		return runScript(cmd, []string{rootInput})
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var (
	configFile   string
	keywordsFile string
)

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a TOML config file (buffer capacity, extensions, ...)")
	rootCmd.PersistentFlags().StringVar(&keywordsFile, "keywords", "", "path to a reserved-word file overriding the built-in keyword set")

	rootCmd.Flags().StringVarP(&rootInput, "input", "i", "", "input source file (compiles and runs it directly)")
	rootCmd.Flags().StringVarP(&rootOutput, "output", "o", "", "output file (declared for compatibility; unused)")
}

// loadConfig builds the driver config for this invocation: the optional
// --config file, overridden by an explicit --keywords flag if given.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}
	if keywordsFile != "" {
		cfg.KeywordsFile = keywordsFile
	}
	return cfg, nil
}
