package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chippy8/chippy8/internal/disasm"
)

// disassembleCmd writes a mnemonic listing of a ROM to stdout.
var disassembleCmd = &cobra.Command{
	Use:   "disassemble [path/to/rom]",
	Short: "print a disassembly of a CHIP-8 ROM",
	Args:  cobra.MaximumNArgs(1),
	Run:   runDisassemble,
}

func runDisassemble(cmd *cobra.Command, args []string) {
	path, err := romPath(args)
	exitOnError(err)

	rom, err := os.ReadFile(path)
	exitOnError(err)

	exitOnError(disasm.Disassemble(os.Stdout, rom))
}
