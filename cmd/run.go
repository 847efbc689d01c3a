package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/chippy8/chippy8/internal/chip8"
	"github.com/chippy8/chippy8/internal/pixel"
)

var debugFlag bool

// runCmd runs the chippy8 virtual machine against a ROM until the window
// is closed or the process receives an interrupt.
var runCmd = &cobra.Command{
	Use:   "run [path/to/rom]",
	Short: "run a ROM in the chippy8 emulator",
	Args:  cobra.MaximumNArgs(1),
	Run:   runChippy,
}

func init() {
	runCmd.Flags().BoolVar(&debugFlag, "debug", false, "print a per-cycle state dump to stdout")
}

func runChippy(cmd *cobra.Command, args []string) {
	path, err := romPath(args)
	exitOnError(err)

	win, err := pixel.NewWindow()
	exitOnError(err)

	sound, err := chip8.NewSound()
	exitOnError(err)

	vm := chip8.New(win, win, sound)
	exitOnError(vm.LoadROM(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := vm.Run(ctx, debugFlag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
