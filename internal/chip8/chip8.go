// Package chip8 is a CHIP-8 virtual machine: the decoder from raw bytes to
// a typed opcode, the instruction-semantics dispatcher that mutates CPU
// state, and the fetch-tick loop that drives execution at a bounded rate
// while pumping timers, video, keypad, and sound.
//
// System memory map
//
//	+---------------+= 0xFFF (4095) End CHIP-8 RAM
//	| 0x200 to 0xEA0|
//	|   Program /   |
//	|   Data Space  |
//	+---------------+= 0x200 (512) Start of most CHIP-8 programs
//	| 0x000 to 0x1FF|
//	| Font / sprite |
//	|     table     |
//	+---------------+= 0x000 Begin CHIP-8 RAM
package chip8

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// Display is the capability set the dispatcher needs from a rendering
// backend: clear, XOR-blit one sprite row, present, and report the logical
// screen size. A headless test harness can satisfy this without opening a
// window.
type Display interface {
	Clear()
	DrawRow(x, y int, row byte) bool
	Render()
	ScreenDimensions() (int, int)
}

// Keypad is the capability set the dispatcher needs from an input backend:
// a nonblocking control-action poll, a brief hex-key poll, and a blocking
// hex-key wait.
type Keypad interface {
	PollControl() (InputAction, bool)
	KeyPressed() (byte, bool)
	WaitForKey() byte
}

// SoundGate is the capability set the dispatcher needs from an audio
// backend: two total, idempotent operations.
type SoundGate interface {
	Play()
	Stop()
}

// InputAction is a non-hex control signal the fetch-tick loop reacts to.
type InputAction int

const (
	ActionNone InputAction = iota
	ActionQuit
	ActionReset
	ActionPause
	ActionDecreaseTick
	ActionIncreaseTick
	ActionDebugInfo
)

const (
	numRegisters  = 16
	stackCapacity = 16
	defaultTick   = 16 * time.Millisecond
	minTick       = 4 * time.Millisecond
	tickStep      = 4 * time.Millisecond
	wordSize      = 2
	flagRegister  = 0xF
	initialPC     = programStart
)

// VM holds the complete CHIP-8 machine state and the peripherals it drives.
// It exclusively owns Memory, V, Stack, timers, I, and PC; Display, Keypad,
// and Sound are referenced but never mutate VM state themselves.
type VM struct {
	Memory [memorySize]byte
	V      [numRegisters]byte
	I      uint16
	PC     uint16
	Stack  []uint16

	DelayTimer byte
	SoundTimer byte

	Display Display
	Keypad  Keypad
	Sound   SoundGate

	rng *rand.Rand

	tickInterval time.Duration
	paused       bool
	dumpState    bool

	lastOp Opcode
}

// New constructs a VM wired to the given peripherals, with memory zeroed
// and the font table loaded. It does not load a program; call LoadROM or
// LoadProgram next.
func New(display Display, keypad Keypad, sound SoundGate) *VM {
	vm := &VM{
		Display:      display,
		Keypad:       keypad,
		Sound:        sound,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		tickInterval: defaultTick,
	}
	LoadFonts(&vm.Memory)
	vm.resetState()
	return vm
}

// resetState re-initializes registers, stack, timers, I, and PC, and clears
// the display. Memory (fonts + program) is left untouched, matching spec's
// Reset control action.
func (vm *VM) resetState() {
	vm.V = [numRegisters]byte{}
	vm.I = 0
	vm.PC = initialPC
	vm.Stack = make([]uint16, 0, stackCapacity)
	vm.DelayTimer = 0
	vm.SoundTimer = 0
	vm.paused = false
	if vm.Display != nil {
		vm.Display.Clear()
	}
}

// LoadROM reads a ROM file from disk and loads it into memory behind the
// font table. This is the LoadError failure class: reported to the caller,
// never raised by the core during Run.
func (vm *VM) LoadROM(path string) error {
	rom, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("chip8: loading rom: %w", err)
	}
	vm.LoadProgram(rom)
	return nil
}

// LoadProgram loads fonts and the given ROM bytes into memory, starting
// fresh from an all-zero memory image.
func (vm *VM) LoadProgram(rom []byte) {
	vm.Memory = [memorySize]byte{}
	LoadFonts(&vm.Memory)
	LoadProgram(&vm.Memory, rom)
}

// Run drives the fetch-tick loop until ctx is cancelled or a Quit control
// action is observed. debug enables a continuous per-iteration state dump.
func (vm *VM) Run(ctx context.Context, debug bool) error {
	vm.dumpState = debug

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if vm.Keypad != nil {
			if action, ok := vm.Keypad.PollControl(); ok {
				if quit := vm.handleControl(action); quit {
					return nil
				}
			}
		}

		if vm.paused {
			time.Sleep(vm.tickInterval)
			continue
		}

		if vm.dumpState {
			fmt.Println(vm.DebugLine())
		}

		hi, lo := vm.Memory[vm.PC], vm.Memory[vm.PC+1]
		op, matched := Decode(hi, lo)
		vm.lastOp = op

		if matched {
			if err := vm.Step(op); err != nil {
				return err
			}
		} else {
			vm.PC += wordSize
		}

		vm.tick()
		time.Sleep(vm.tickInterval)
	}
}

// handleControl applies a polled InputAction and reports whether the loop
// should terminate (Quit).
func (vm *VM) handleControl(action InputAction) (quit bool) {
	switch action {
	case ActionQuit:
		return true
	case ActionReset:
		vm.resetState()
	case ActionPause:
		vm.paused = !vm.paused
	case ActionDecreaseTick:
		if vm.tickInterval > minTick {
			vm.tickInterval -= tickStep
		}
		if vm.tickInterval < minTick {
			vm.tickInterval = minTick
		}
	case ActionIncreaseTick:
		vm.tickInterval += tickStep
	case ActionDebugInfo:
		if !vm.dumpState {
			fmt.Println(vm.DebugLine())
		}
	}
	return false
}

// tick decrements the delay and sound timers by one step each, gating the
// sound backend on SoundTimer's non-zero state. Called once per loop
// iteration, so timers track wall-clock time at the loop's pacing interval
// rather than draining to zero inside a single call.
func (vm *VM) tick() {
	if vm.DelayTimer > 0 {
		vm.DelayTimer--
	}
	if vm.SoundTimer > 0 {
		vm.SoundTimer--
		if vm.Sound != nil {
			vm.Sound.Play()
		}
	} else if vm.Sound != nil {
		vm.Sound.Stop()
	}
}

// DebugLine renders one line of the per-iteration state dump:
// PC[0xHHHH]  DELAY[d]  SOUND[d]  I[0xHHH]  V0[d] .. VF[d]  mnemonic.
func (vm *VM) DebugLine() string {
	line := fmt.Sprintf("PC[%#04x]\tDELAY[%d]\tSOUND[%d]\tI[%#03x]", vm.PC, vm.DelayTimer, vm.SoundTimer, vm.I)
	for i := 0; i < numRegisters; i++ {
		line += fmt.Sprintf("\tV%X[%d]", i, vm.V[i])
	}
	hi, lo := vm.Memory[vm.PC], vm.Memory[vm.PC+1]
	op, _ := Decode(hi, lo)
	return line + "\t" + op.String()
}
