// Package cpu defines the CHIP-8 machine state and provides
// the methods needed to run instructions against it and
// interface with it for emulation.
package cpu

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jmchacon/chip8/disassemble"
	"github.com/jmchacon/chip8/instruction"
	"github.com/jmchacon/chip8/io"
	"github.com/jmchacon/chip8/memory"
	"github.com/jmchacon/chip8/signal"
)

const (
	NUM_REGISTERS = 16
	FLAG          = 0xF // VF is the carry/borrow/collision flag.
)

// State is the register file. It's a plain struct so copying it gives a snapshot.
type State struct {
	V  [NUM_REGISTERS]uint8 // General purpose registers V0-VF.
	I  uint16               // Index register.
	PC uint16               // Program counter.
	SP uint8                // Number of entries currently on the stack.
	DT uint8                // Delay timer.
	ST uint8                // Sound timer.
}

// Random is the source RND draws from. *rand.Rand implements it.
type Random interface {
	Intn(n int) int
}

// A few custom error types to distinguish why the chip stopped

// MemoryFault represents a fetch or data access outside of RAM.
type MemoryFault struct {
	PC     uint16
	Opcode instruction.Instruction
	Addr   int
}

// Error implements the interface for error types.
func (e MemoryFault) Error() string {
	return fmt.Sprintf("memory fault at PC 0x%.4X (opcode %s): address 0x%.4X out of range", e.PC, e.Opcode, e.Addr)
}

// StackFault represents a CALL with a full stack or a RET with an empty one.
type StackFault struct {
	PC       uint16
	Opcode   instruction.Instruction
	SP       uint8
	Overflow bool
}

// Error implements the interface for error types.
func (e StackFault) Error() string {
	kind := "underflow"
	if e.Overflow {
		kind = "overflow"
	}
	return fmt.Sprintf("stack %s at PC 0x%.4X (opcode %s) with SP %d", kind, e.PC, e.Opcode, e.SP)
}

// InvalidKind represents a decoded kind with no handler.
type InvalidKind struct {
	Opcode instruction.Instruction
	Kind   instruction.Kind
}

// Error implements the interface for error types.
func (e InvalidKind) Error() string {
	return fmt.Sprintf("no handler for %s (opcode %s)", e.Kind, e.Opcode)
}

// ChipDef defines a chip. Memory and Keypad are required.
type ChipDef struct {
	Memory *memory.Memory
	Keypad io.Keypad
	// Rand is used by RND. If nil a time seeded source is used.
	Rand Random
	// Redraw is raised whenever DRW runs. If nil the chip allocates its own.
	Redraw *signal.Edge
	// Logger receives unknown opcode notices, faults and (with Debug) a trace of every instruction.
	// If nil nothing is logged.
	Logger *log.Logger
	Debug  bool
	// BlockingKeyWait makes LD Vx, K re-execute until a key is down instead of falling through.
	BlockingKeyWait bool
	// CanonicalSUBN computes SUBN as Vy - Vx instead of Vx - Vy.
	CanonicalSUBN bool
}

// Chip runs instructions against a State, Memory and Keypad.
type Chip struct {
	State
	mem             *memory.Memory
	keys            io.Keypad
	rand            Random
	redraw          *signal.Edge
	logger          *log.Logger
	debug           bool
	blockingKeyWait bool
	canonicalSUBN   bool
	opPC            uint16                  // PC of the instruction currently executing.
	op              instruction.Instruction // Instruction currently executing.
	halted          bool                    // If stopped due to a fault.
	haltErr         error                   // Fault that caused the halt.
}

// Init will create a new chip from the definition and return it in powered on state.
// The memory passed in will also be powered on.
func Init(def *ChipDef) (*Chip, error) {
	if def == nil {
		return nil, errors.New("nil ChipDef")
	}
	if def.Memory == nil {
		return nil, errors.New("ChipDef.Memory must be set")
	}
	if def.Keypad == nil {
		return nil, errors.New("ChipDef.Keypad must be set")
	}
	c := &Chip{
		mem:             def.Memory,
		keys:            def.Keypad,
		rand:            def.Rand,
		redraw:          def.Redraw,
		logger:          def.Logger,
		debug:           def.Debug,
		blockingKeyWait: def.BlockingKeyWait,
		canonicalSUBN:   def.CanonicalSUBN,
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.redraw == nil {
		c.redraw = &signal.Edge{}
	}
	c.mem.PowerOn()
	c.PowerOn()
	return c, nil
}

// PowerOn zeroes the registers and resets the chip. Memory isn't touched.
func (c *Chip) PowerOn() {
	c.State = State{}
	c.Reset()
}

// Reset zeroes the registers, points PC at the program start and clears any halt.
// Memory (and so any loaded program) isn't touched.
func (c *Chip) Reset() {
	c.State = State{PC: memory.PROGRAM_START}
	c.halted = false
	c.haltErr = nil
	c.op = 0
	c.opPC = 0
	c.redraw.Clear()
}

// Memory returns the memory the chip executes from.
func (c *Chip) Memory() *memory.Memory {
	return c.mem
}

// Redraw returns the signal raised each time a sprite is drawn.
func (c *Chip) Redraw() *signal.Edge {
	return c.redraw
}

// Halted returns the fault which stopped the chip or nil if it's still running.
func (c *Chip) Halted() error {
	return c.haltErr
}

// Timers decrements DT and ST once each if they're non-zero. It's meant to be called at 60Hz.
func (c *Chip) Timers() {
	if c.DT > 0 {
		c.DT--
	}
	if c.ST > 0 {
		c.ST--
	}
}

// Tick fetches, decodes and executes one instruction.
// An error is returned if the instruction faults which halts the chip.
// Once halted every Tick returns the same error until Reset (or PowerOn).
// A faulting instruction leaves State and Memory exactly as they were before it.
func (c *Chip) Tick() error {
	// Fast path if halted. The PC won't advance. i.e. we just keep returning the same error.
	if c.halted {
		return c.haltErr
	}
	c.opPC = c.PC
	c.op = 0
	if err := c.check(int(c.PC), 2); err != nil {
		return c.halt(err)
	}
	hi, _ := c.mem.Read(c.PC)
	lo, _ := c.mem.Read(c.PC + 1)
	c.op = instruction.FromBytes(hi, lo)
	c.PC += 2

	k := c.op.Decode()
	if c.debug {
		c.logf("%.4X %s  %s  %s", c.opPC, c.op, disassemble.Instruction(c.op), c.registers())
	}
	if k < 0 || k >= instruction.KIND_MAX || handlers[k] == nil {
		c.PC = c.opPC
		return c.halt(InvalidKind{Opcode: c.op, Kind: k})
	}
	if err := handlers[k](c, c.op); err != nil {
		c.PC = c.opPC
		return c.halt(err)
	}
	return nil
}

func (c *Chip) halt(err error) error {
	c.halted = true
	c.haltErr = err
	c.logf("halted: %v", err)
	return err
}

// check returns a MemoryFault for the current instruction if [addr, addr+n) isn't all in RAM.
func (c *Chip) check(addr int, n int) error {
	err := c.mem.Check(addr, n)
	if err == nil {
		return nil
	}
	f := MemoryFault{PC: c.opPC, Opcode: c.op, Addr: addr}
	var oor memory.OutOfRange
	if errors.As(err, &oor) {
		f.Addr = oor.Addr
	}
	return f
}

func (c *Chip) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func (c *Chip) registers() string {
	return fmt.Sprintf("V:% X I:%.4X SP:%d DT:%.2X ST:%.2X", c.V[:], c.I, c.SP, c.DT, c.ST)
}
