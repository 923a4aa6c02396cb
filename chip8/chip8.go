// Package chip8 is the main logic for pulling together a CHIP-8 interpreter.
// The instruction execution is implemented in the cpu package and most of the
// logic here is scheduling: running a fixed number of instructions per 60Hz
// frame, decrementing the timers between them and reporting the display and
// tone to the frontend.
package chip8

import (
	"context"
	"errors"
	"fmt"
	goio "io"
	"log"
	"sync"
	"time"

	"github.com/jmchacon/chip8/cpu"
	"github.com/jmchacon/chip8/io"
	"github.com/jmchacon/chip8/memory"
	"github.com/jmchacon/chip8/signal"
)

// State is an enumeration of the machine states.
type State int

const (
	STATE_UNIMPLEMENTED State = iota // Start of valid state enumerations.
	STATE_IDLE                       // No program running. Programs can be loaded.
	STATE_RUNNING                    // Frames execute instructions (unless paused).
	STATE_MAX                        // End of state enumerations.
)

func (s State) String() string {
	switch s {
	case STATE_IDLE:
		return "IDLE"
	case STATE_RUNNING:
		return "RUNNING"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	// DEFAULT_TICKS_PER_FRAME is the number of instructions run per frame if Def doesn't say.
	DEFAULT_TICKS_PER_FRAME = 10
	// FRAME_RATE is the rate in Hz frames are meant to be run at (and so the timer rate).
	FRAME_RATE = 60
)

// Def defines the pieces needed to setup a machine.
type Def struct {
	// Keypad is required. If it also has a Reset() method that's called when the machine resets.
	Keypad io.Keypad
	// TicksPerFrame is the number of instructions run per frame. Defaults to DEFAULT_TICKS_PER_FRAME.
	TicksPerFrame int
	// FrameDone is called with a snapshot of the display after any frame which drew a sprite.
	// If nil the draw signal stays raised until DrawNeeded is called.
	FrameDone func(memory.FrameBuffer)
	// ToneChanged is called whenever the tone turns on or off.
	ToneChanged func(bool)
	// Rand is passed through to the cpu for RND. Nil means a time seeded source.
	Rand cpu.Random
	// Logger receives notices and faults. If nil nothing is logged.
	Logger *log.Logger
	// Debug emits a trace line for every instruction to Logger.
	Debug bool
	// BlockingKeyWait makes LD Vx, K wait for a key instead of falling through.
	BlockingKeyWait bool
	// CanonicalSUBN computes SUBN as Vy - Vx.
	CanonicalSUBN bool
}

// Machine is a complete CHIP-8 interpreter. All methods are safe to call from
// multiple goroutines. The callbacks in Def run without the machine locked so
// they may use the accessors.
type Machine struct {
	mu          sync.Mutex
	cpu         *cpu.Chip
	mem         *memory.Memory
	keys        io.Keypad
	ticks       int
	frameDone   func(memory.FrameBuffer)
	toneChanged func(bool)
	logger      *log.Logger
	state       State
	paused      bool
	program     []uint8 // Retained for Reset.
	loaded      bool
	redraw      signal.Edge
	tone        signal.Level
	err         error
}

// Init returns an initialized and powered on machine in STATE_IDLE with no program loaded.
func Init(def *Def) (*Machine, error) {
	if def == nil {
		return nil, errors.New("nil Def")
	}
	if def.Keypad == nil {
		return nil, errors.New("Keypad must be non-nil in def")
	}
	ticks := def.TicksPerFrame
	if ticks == 0 {
		ticks = DEFAULT_TICKS_PER_FRAME
	}
	if ticks < 0 {
		return nil, fmt.Errorf("TicksPerFrame must be positive, got %d", ticks)
	}
	m := &Machine{
		mem:         memory.New(),
		keys:        def.Keypad,
		ticks:       ticks,
		frameDone:   def.FrameDone,
		toneChanged: def.ToneChanged,
		logger:      def.Logger,
		state:       STATE_IDLE,
	}
	c, err := cpu.Init(&cpu.ChipDef{
		Memory:          m.mem,
		Keypad:          def.Keypad,
		Rand:            def.Rand,
		Redraw:          &m.redraw,
		Logger:          def.Logger,
		Debug:           def.Debug,
		BlockingKeyWait: def.BlockingKeyWait,
		CanonicalSUBN:   def.CanonicalSUBN,
	})
	if err != nil {
		return nil, fmt.Errorf("can't initialize cpu: %w", err)
	}
	m.cpu = c
	return m, nil
}

// LoadProgram copies the program into memory at 0x200 and resets the cpu to run it.
// The display is cleared and a redraw is signaled. It's only allowed while idle. Programs over memory.MAX_PROGRAM_SIZE are rejected
// with memory.ProgramTooLarge and leave the machine untouched.
func (m *Machine) LoadProgram(rom []uint8) error {
	m.mu.Lock()
	if m.state == STATE_RUNNING {
		m.mu.Unlock()
		return errors.New("can't load a program while running, stop it first")
	}
	if err := m.mem.LoadProgram(rom); err != nil {
		m.mu.Unlock()
		return err
	}
	m.program = append(m.program[:0], rom...)
	m.loaded = true
	m.cpu.Reset()
	// The display was cleared so the next frame hands it to FrameDone.
	m.redraw.Raise()
	m.err = nil
	m.paused = false
	changed := m.tone.Set(false)
	m.mu.Unlock()
	m.notifyTone(changed, false)
	return nil
}

// Start moves an idle machine with a program loaded into STATE_RUNNING.
// Starting a running machine does nothing.
func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == STATE_RUNNING {
		return nil
	}
	if !m.loaded {
		return errors.New("no program loaded")
	}
	if m.err != nil {
		return fmt.Errorf("program faulted, Reset or load a new one: %w", m.err)
	}
	m.state = STATE_RUNNING
	m.paused = false
	return nil
}

// Stop moves the machine to STATE_IDLE and silences the tone.
func (m *Machine) Stop() {
	m.mu.Lock()
	m.state = STATE_IDLE
	m.paused = false
	changed := m.tone.Set(false)
	m.mu.Unlock()
	m.notifyTone(changed, false)
}

// Pause stops frames from executing anything and silences the tone. It only applies while running.
func (m *Machine) Pause() {
	m.mu.Lock()
	if m.state != STATE_RUNNING || m.paused {
		m.mu.Unlock()
		return
	}
	m.paused = true
	changed := m.tone.Set(false)
	m.mu.Unlock()
	m.notifyTone(changed, false)
}

// Resume undoes Pause, turning the tone back on if the sound timer is still running.
func (m *Machine) Resume() {
	m.mu.Lock()
	if !m.paused {
		m.mu.Unlock()
		return
	}
	m.paused = false
	on := m.cpu.ST != 0
	changed := m.tone.Set(on)
	m.mu.Unlock()
	m.notifyTone(changed, on)
}

// Reset reloads the last program and restarts it from 0x200. Keys are released,
// the display is cleared (and a redraw signaled), the tone is silenced, any pause or fault is cleared and the machine stays in
// its current state.
func (m *Machine) Reset() error {
	m.mu.Lock()
	if !m.loaded {
		m.mu.Unlock()
		return errors.New("no program loaded")
	}
	if r, ok := m.keys.(interface{ Reset() }); ok {
		r.Reset()
	}
	if err := m.mem.LoadProgram(m.program); err != nil {
		m.mu.Unlock()
		return err
	}
	m.cpu.Reset()
	m.redraw.Raise()
	m.err = nil
	m.paused = false
	changed := m.tone.Set(false)
	m.mu.Unlock()
	m.notifyTone(changed, false)
	return nil
}

// Frame runs one 60Hz frame: half the ticks, the timer update, then the rest.
// It does nothing unless the machine is running and not paused.
// A fault stops the frame, moves the machine to STATE_IDLE and is returned (and kept for Err).
func (m *Machine) Frame() error {
	m.mu.Lock()
	if m.state != STATE_RUNNING || m.paused {
		m.mu.Unlock()
		return nil
	}
	half := m.ticks / 2
	err := m.run(half)
	if err == nil {
		m.cpu.Timers()
		err = m.run(m.ticks - half)
	}
	on := m.cpu.ST != 0
	if err != nil {
		m.err = err
		m.state = STATE_IDLE
		on = false
		if m.logger != nil {
			m.logger.Printf("program stopped: %v", err)
		}
	}
	changed := m.tone.Set(on)
	var fb memory.FrameBuffer
	draw := false
	if m.frameDone != nil && m.redraw.Consume() {
		fb = m.mem.Frame
		draw = true
	}
	m.mu.Unlock()

	m.notifyTone(changed, on)
	if draw {
		m.frameDone(fb)
	}
	return err
}

func (m *Machine) run(n int) error {
	for i := 0; i < n; i++ {
		if err := m.cpu.Tick(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) notifyTone(changed, on bool) {
	if changed && m.toneChanged != nil {
		m.toneChanged(on)
	}
}

// Run calls Frame hz times a second (FRAME_RATE if hz <= 0) until the context is
// done or a frame faults. The fault or the context error is returned.
func (m *Machine) Run(ctx context.Context, hz int) error {
	if hz <= 0 {
		hz = FRAME_RATE
	}
	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := m.Frame(); err != nil {
				return err
			}
		}
	}
}

// FrameBuffer returns a snapshot of the display.
func (m *Machine) FrameBuffer() memory.FrameBuffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mem.Frame
}

// DrawNeeded reports whether a sprite was drawn since the last call (or the last
// FrameDone) and clears the signal.
func (m *Machine) DrawNeeded() bool {
	return m.redraw.Consume()
}

// SoundActive reports whether the tone should currently be playing.
func (m *Machine) SoundActive() bool {
	return m.tone.Raised()
}

// CPU returns a snapshot of the registers.
func (m *Machine) CPU() cpu.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpu.State
}

// State returns the current machine state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Running is true in STATE_RUNNING, paused or not.
func (m *Machine) Running() bool {
	return m.State() == STATE_RUNNING
}

// Paused is true if a running machine has been paused.
func (m *Machine) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Err returns the fault which last stopped the program, if any.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Dump writes the registers, the stack and a hex dump of memory.
func (m *Machine) Dump(w goio.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.cpu.State
	if _, err := fmt.Fprintf(w, "PC: 0x%.4X I: 0x%.4X SP: %d DT: %d ST: %d\nV: % X\n", s.PC, s.I, s.SP, s.DT, s.ST, s.V[:]); err != nil {
		return err
	}
	if err := m.mem.DumpStack(w); err != nil {
		return err
	}
	return m.mem.Dump(w)
}
