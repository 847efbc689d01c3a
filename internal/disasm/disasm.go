// Package disasm renders a CHIP-8 ROM as a human-readable instruction
// listing, one line per 16-bit word, reusing the core decoder so the
// listing and the VM's debug dump always agree on a word's mnemonic.
package disasm

import (
	"fmt"
	"io"

	"github.com/chippy8/chippy8/internal/chip8"
)

const wordSize = 2

// Disassemble writes the 2-line header "HEX\tOP\tARG1\tARG2\tARG3" plus
// rule, then one line per decoded word of rom:
// "0xHHHH\tMNEMONIC[\tARG1[\tARG2[\tARG3]]]". An odd trailing byte is
// padded with a zero low byte, matching the original assembler's
// end-of-stream handling. A word matching no instruction row renders as
// "DATA\txxxx" rather than aborting the listing.
func Disassemble(w io.Writer, rom []byte) error {
	fmt.Fprintln(w, "HEX\tOP\tARG1\tARG2\tARG3")
	fmt.Fprintln(w, "---\t--\t----\t----\t----")

	for i := 0; i < len(rom); i += wordSize {
		hi := rom[i]
		var lo byte
		if i+1 < len(rom) {
			lo = rom[i+1]
		}

		op, _ := chip8.Decode(hi, lo)
		addr := chip8.ProgramStart + i

		if _, err := fmt.Fprintf(w, "%#04x\t%s\n", addr, op.String()); err != nil {
			return err
		}
	}

	return nil
}
