// Package instruction defines the CHIP-8 instruction word and the decoder
// which classifies any 16 bit word into one of the operation kinds the
// interpreter knows how to execute.
//
// Descriptions follow http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
package instruction

import "fmt"

// Instruction is a single big endian 16 bit CHIP-8 opcode word.
// All of the operand fields are derived from the bits and never stored.
type Instruction uint16

// Msn returns the most significant nibble which selects the operation family.
func (i Instruction) Msn() uint8 {
	return uint8(i >> 12)
}

// X returns the lower 4 bits of the high byte. Generally a register index.
func (i Instruction) X() uint8 {
	return uint8((i & 0x0F00) >> 8)
}

// Y returns the upper 4 bits of the low byte. Generally a register index.
func (i Instruction) Y() uint8 {
	return uint8((i & 0x00F0) >> 4)
}

// N returns the lowest 4 bits.
func (i Instruction) N() uint8 {
	return uint8(i & 0x000F)
}

// KK returns the lowest 8 bits.
func (i Instruction) KK() uint8 {
	return uint8(i & 0x00FF)
}

// Addr returns the lowest 12 bits.
func (i Instruction) Addr() uint16 {
	return uint16(i & 0x0FFF)
}

// String implements fmt.Stringer and returns the raw word as hex.
func (i Instruction) String() string {
	return fmt.Sprintf("%.4X", uint16(i))
}

// FromBytes assembles an instruction from the 2 bytes as stored in memory (high byte first).
func FromBytes(hi, lo uint8) Instruction {
	return Instruction(uint16(hi)<<8 | uint16(lo))
}

// Decode classifies the instruction. See the package level Decode.
func (i Instruction) Decode() Kind {
	return Decode(i)
}
