// Command lalg compiles and runs LALG programs: a small Pascal-dialect
// teaching language compiled to a stack-machine bytecode and executed by
// an interpreter, both implemented under internal/.
package main

import (
	"os"

	"github.com/lalg-lang/lalg/cmd/lalg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
