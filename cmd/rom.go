package cmd

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
)

// romPath resolves the ROM path for a command invocation: the positional
// argument if one was given, otherwise a native file-picker dialog,
// matching massung-CHIP-8/main.go's open() fallback.
func romPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	dlg := dialog.File().Title("Load CHIP-8 ROM")
	dlg.Filter("All Files", "*")
	dlg.Filter("ROM Files", "rom", "ch8", "c8")

	path, err := dlg.Load()
	if err != nil {
		return "", fmt.Errorf("no rom selected: %w", err)
	}

	return path, nil
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
