// Package memory defines the CHIP-8 memory map: 4k of RAM with the
// built in font, the call stack slots and the 64x32 frame buffer.
// Since other components (the disassembler for one) only need byte
// access the basic Bank interface is kept separate from the implementation.
//
// Memory Map (http://devernay.free.fr/hacks/chip8/C8TECH10.HTM#3.0)
//
//	0xFFF +---------------+ End of RAM
//	      | Program/Data  |
//	0x200 +---------------+ Start of most programs
//	      | Reserved for  |
//	      |  interpreter  | (font glyphs at 0x050-0x09F)
//	0x000 +---------------+
package memory

import (
	"fmt"
	"io"
)

type Bank interface {
	// Read returns the data byte stored at addr or an error if addr isn't mapped.
	Read(addr uint16) (uint8, error)
	// Write updates addr with the new value or returns an error if addr isn't mapped.
	Write(addr uint16, val uint8) error
	// PowerOn resets the memory to its initial state.
	PowerOn()
}

const (
	RAM_SIZE         = 4096
	PROGRAM_START    = 0x200
	MAX_PROGRAM_SIZE = RAM_SIZE - PROGRAM_START // 3584 bytes
	FONT_LOCATION    = 0x050
	GLYPH_SIZE       = 5
	FONT_SIZE        = 16 * GLYPH_SIZE
	STACK_SIZE       = 16
)

var _ = Bank(&Memory{})

// font holds the hex digit glyphs 0-F. Each is 4 pixels wide (high nibble) and 5 rows tall.
var font = [FONT_SIZE]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Glyph returns the 5 bytes making up the font glyph for the given hex digit (0-F).
func Glyph(digit uint8) [GLYPH_SIZE]uint8 {
	var g [GLYPH_SIZE]uint8
	d := int(digit&0x0F) * GLYPH_SIZE
	copy(g[:], font[d:d+GLYPH_SIZE])
	return g
}

// OutOfRange represents an access past the end of RAM.
type OutOfRange struct {
	Addr int
}

// Error implements the interface for error types.
func (e OutOfRange) Error() string {
	return fmt.Sprintf("address 0x%.4X is outside of RAM (0x0000-0x%.4X)", e.Addr, RAM_SIZE-1)
}

// ProgramTooLarge is returned when a program can't fit in the program area.
type ProgramTooLarge struct {
	Size int
}

// Error implements the interface for error types.
func (e ProgramTooLarge) Error() string {
	return fmt.Sprintf("program of %d bytes exceeds maximum of %d bytes", e.Size, MAX_PROGRAM_SIZE)
}

// Memory is the complete addressable state owned by a running program.
// The stack slots live here and the stack pointer in the cpu state.
type Memory struct {
	ram   [RAM_SIZE]uint8
	Stack [STACK_SIZE]uint16
	Frame FrameBuffer
}

// New returns a powered on Memory.
func New() *Memory {
	m := &Memory{}
	m.PowerOn()
	return m
}

// PowerOn implements the Bank interface. RAM, stack and frame buffer are
// all zero'd and the font is copied into place.
func (m *Memory) PowerOn() {
	m.ram = [RAM_SIZE]uint8{}
	m.Stack = [STACK_SIZE]uint16{}
	m.Frame.Clear()
	copy(m.ram[FONT_LOCATION:], font[:])
}

// Check verifies n bytes starting at addr all lie within RAM.
// Addresses are ints since callers compute them from I plus an offset
// which can go past 16 bits.
func (m *Memory) Check(addr int, n int) error {
	if addr < 0 {
		return OutOfRange{addr}
	}
	if end := addr + n - 1; n > 0 && end >= RAM_SIZE {
		if addr >= RAM_SIZE {
			return OutOfRange{addr}
		}
		return OutOfRange{end}
	}
	return nil
}

// Read implements the Bank interface.
func (m *Memory) Read(addr uint16) (uint8, error) {
	if int(addr) >= RAM_SIZE {
		return 0, OutOfRange{int(addr)}
	}
	return m.ram[addr], nil
}

// Write implements the Bank interface.
func (m *Memory) Write(addr uint16, val uint8) error {
	if int(addr) >= RAM_SIZE {
		return OutOfRange{int(addr)}
	}
	m.ram[addr] = val
	return nil
}

// LoadProgram powers on the memory and copies the program image to PROGRAM_START.
// Anything larger than MAX_PROGRAM_SIZE is rejected before memory is touched.
func (m *Memory) LoadProgram(prog []uint8) error {
	if len(prog) > MAX_PROGRAM_SIZE {
		return ProgramTooLarge{len(prog)}
	}
	m.PowerOn()
	copy(m.ram[PROGRAM_START:], prog)
	return nil
}

// Dump writes a hex dump of RAM, 16 bytes per line grouped into 16 bit words.
func (m *Memory) Dump(w io.Writer) error {
	for i := 0; i < RAM_SIZE; i += 16 {
		if _, err := fmt.Fprintf(w, "%.4x ", i); err != nil {
			return err
		}
		for j := i; j < i+16; j += 2 {
			if _, err := fmt.Fprintf(w, "%.2x%.2x ", m.ram[j], m.ram[j+1]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// DumpStack writes each stack slot on its own line.
func (m *Memory) DumpStack(w io.Writer) error {
	for i, a := range m.Stack {
		if _, err := fmt.Fprintf(w, "%.2d 0x%.4X\n", i, a); err != nil {
			return err
		}
	}
	return nil
}
