package chip8

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDisplay is a headless Display that records blitted rows instead of
// presenting them, so draw/collision semantics can be asserted directly.
type fakeDisplay struct {
	pixels  [32][64]bool
	renders int
	cleared int
}

func (d *fakeDisplay) Clear() {
	d.pixels = [32][64]bool{}
	d.cleared++
}

func (d *fakeDisplay) ScreenDimensions() (int, int) { return 64, 32 }

func (d *fakeDisplay) DrawRow(x, y int, row byte) bool {
	collision := false
	for bit := 0; bit < 8; bit++ {
		if row&(0x80>>uint(bit)) == 0 {
			continue
		}
		px, py := (x+bit)%64, y%32
		if d.pixels[py][px] {
			collision = true
		}
		d.pixels[py][px] = !d.pixels[py][px]
	}
	return collision
}

func (d *fakeDisplay) Render() { d.renders++ }

// fakeKeypad is a Keypad whose held key and queued control actions are set
// directly by a test.
type fakeKeypad struct {
	held    byte
	holding bool
	actions []InputAction
}

func (k *fakeKeypad) PollControl() (InputAction, bool) {
	if len(k.actions) == 0 {
		return ActionNone, false
	}
	a := k.actions[0]
	k.actions = k.actions[1:]
	return a, true
}

func (k *fakeKeypad) KeyPressed() (byte, bool) { return k.held, k.holding }
func (k *fakeKeypad) WaitForKey() byte         { return k.held }

// fakeSound counts every Play/Stop call.
type fakeSound struct{ plays, stops int }

func (s *fakeSound) Play() { s.plays++ }
func (s *fakeSound) Stop() { s.stops++ }

func newTestVM() (*VM, *fakeDisplay, *fakeKeypad, *fakeSound) {
	d := &fakeDisplay{}
	k := &fakeKeypad{}
	s := &fakeSound{}
	return New(d, k, s), d, k, s
}

func TestNewLoadsFontTableAndResetsState(t *testing.T) {
	vm, _, _, _ := newTestVM()
	assert.Equal(t, byte(0xF0), vm.Memory[fontStart], "font table is loaded at 0")
	assert.Equal(t, uint16(initialPC), vm.PC)
	assert.Equal(t, uint16(0), vm.I)
	assert.Equal(t, 0, len(vm.Stack))
}

func TestLoadProgramPlacesFontsAndROM(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.LoadProgram([]byte{0x00, 0xE0})
	assert.Equal(t, byte(0xF0), vm.Memory[0], "font table should start at 0")
	assert.Equal(t, byte(0x00), vm.Memory[programStart])
	assert.Equal(t, byte(0xE0), vm.Memory[programStart+1])
}

func TestStepGoto(t *testing.T) {
	vm, _, _, _ := newTestVM()
	op, _ := Decode(0x12, 0x34)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, uint16(0x234), vm.PC)
}

func TestStepCallAndReturn(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.PC = 0x200

	call, _ := Decode(0x23, 0x00)
	require.NoError(t, vm.Step(call))
	assert.Equal(t, uint16(0x300), vm.PC)
	assert.Equal(t, []uint16{0x202}, vm.Stack)

	ret, _ := Decode(0x00, 0xEE)
	require.NoError(t, vm.Step(ret))
	assert.Equal(t, uint16(0x202), vm.PC)
	assert.Empty(t, vm.Stack)
}

func TestStepReturnOnEmptyStackIsStackUnderflow(t *testing.T) {
	vm, _, _, _ := newTestVM()
	ret, _ := Decode(0x00, 0xEE)
	err := vm.Step(ret)
	assert.ErrorIs(t, err, ErrStackUnderflow)
}

func TestStepAddAssignRegSetsCarry(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[0] = 0xFF
	vm.V[1] = 0x02

	op, _ := Decode(0x80, 0x14)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, byte(0x01), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF])
}

func TestStepSubAssignRegSetsNoBorrowFlag(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[0] = 0x05
	vm.V[1] = 0x02

	op, _ := Decode(0x80, 0x15)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, byte(0x03), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF], "VF is 1 when no borrow occurs")
}

func TestStepShiftLeftMasksTopBit(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[0] = 0x80

	op, _ := Decode(0x80, 0x0E)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, byte(0x00), vm.V[0])
	assert.Equal(t, byte(1), vm.V[0xF])
}

func TestStepShiftRightReadsVyWritesVx(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[1] = 0x00
	vm.V[2] = 0x03

	op, _ := Decode(0x81, 0x26) // SHR V1, V2
	require.NoError(t, vm.Step(op))
	assert.Equal(t, byte(0x01), vm.V[1], "Vx takes Vy's shifted value")
	assert.Equal(t, byte(0x03), vm.V[2], "Vy is left unchanged")
	assert.Equal(t, byte(1), vm.V[0xF], "VF takes Vy's low bit")
}

func TestStepShiftLeftReadsVyWritesVx(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[1] = 0x00
	vm.V[2] = 0x81

	op, _ := Decode(0x81, 0x2E) // SHL V1, V2
	require.NoError(t, vm.Step(op))
	assert.Equal(t, byte(0x02), vm.V[1], "Vx takes Vy's shifted value")
	assert.Equal(t, byte(0x81), vm.V[2], "Vy is left unchanged")
	assert.Equal(t, byte(1), vm.V[0xF], "VF takes Vy's high bit")
}

func TestStepJumpOffsetAddsV0(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[0] = 0x05

	op, _ := Decode(0xB1, 0x00)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, uint16(0x105), vm.PC)
}

func TestStepSetRandMasksWithKK(t *testing.T) {
	vm, _, _, _ := newTestVM()
	op, _ := Decode(0xC0, 0x00) // mask 0x00 zeroes any random draw
	require.NoError(t, vm.Step(op))
	assert.Equal(t, byte(0x00), vm.V[0])
}

func TestStepDrawCollisionAndWraparound(t *testing.T) {
	vm, d, _, _ := newTestVM()
	vm.I = 0 // the '0' glyph, 5 rows of 0xF0,0x90,0x90,0x90,0xF0
	vm.V[0] = 62 // wraps at the right edge
	vm.V[1] = 0

	draw, _ := Decode(0xD0, 0x15)
	require.NoError(t, vm.Step(draw))
	assert.Equal(t, byte(0), vm.V[0xF], "first draw cannot collide")
	assert.Equal(t, 1, d.renders)

	require.NoError(t, vm.Step(draw))
	assert.Equal(t, byte(1), vm.V[0xF], "redrawing the same sprite collides with itself")
}

func TestStepBinaryCodedDecimal(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[0] = 234
	vm.I = 0x300

	op, _ := Decode(0xF0, 0x33)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, byte(2), vm.Memory[0x300])
	assert.Equal(t, byte(3), vm.Memory[0x301])
	assert.Equal(t, byte(4), vm.Memory[0x302])
}

func TestStepStoreSpriteAddress(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[0] = 5

	op, _ := Decode(0xF0, 0x29)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, uint16(25), vm.I)
}

func TestStepDumpAndLoadRoundTrip(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.V[0], vm.V[1], vm.V[2] = 1, 2, 3
	vm.I = 0x300

	dump, _ := Decode(0xF2, 0x55)
	require.NoError(t, vm.Step(dump))
	assert.Equal(t, uint16(0x303), vm.I)

	vm.V[0], vm.V[1], vm.V[2] = 0, 0, 0
	vm.I = 0x300

	load, _ := Decode(0xF2, 0x65)
	require.NoError(t, vm.Step(load))
	assert.Equal(t, byte(1), vm.V[0])
	assert.Equal(t, byte(2), vm.V[1])
	assert.Equal(t, byte(3), vm.V[2])
}

func TestStepSkipKeyPressAndNoKeyPress(t *testing.T) {
	vm, _, k, _ := newTestVM()
	vm.V[0] = 0xA
	k.held, k.holding = 0xA, true

	base := vm.PC
	op, _ := Decode(0xE0, 0x9E)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, base+4, vm.PC, "skip-key-press skips when the held key matches Vx")

	vm.PC = base
	k.holding = false
	op, _ = Decode(0xE0, 0xA1)
	require.NoError(t, vm.Step(op))
	assert.Equal(t, base+4, vm.PC, "skip-no-key-press skips when no key is held")
}

func TestFakeSoundCountsPlayAndStopCalls(t *testing.T) {
	s := &fakeSound{}
	s.Play()
	s.Play()
	s.Stop()
	assert.Equal(t, 2, s.plays)
	assert.Equal(t, 1, s.stops)
}

func TestTickDecrementsTimersOnceAndGatesSound(t *testing.T) {
	vm, _, _, s := newTestVM()
	vm.DelayTimer = 2
	vm.SoundTimer = 1

	vm.tick()
	assert.Equal(t, byte(1), vm.DelayTimer)
	assert.Equal(t, byte(0), vm.SoundTimer)
	assert.Equal(t, 1, s.plays)

	vm.tick()
	assert.Equal(t, byte(0), vm.DelayTimer)
	assert.Equal(t, 1, s.stops)
}

func TestRunQuitsOnControlAction(t *testing.T) {
	vm, _, k, _ := newTestVM()
	vm.LoadProgram([]byte{0x00, 0xE0})
	vm.tickInterval = time.Millisecond
	k.actions = []InputAction{ActionQuit}

	done := make(chan error, 1)
	go func() { done <- vm.Run(context.Background(), false) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after a Quit control action")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	vm, _, _, _ := newTestVM()
	vm.LoadProgram([]byte{0x00, 0xE0})
	vm.tickInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- vm.Run(ctx, false) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
