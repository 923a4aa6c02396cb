// Package disassemble implements a disassembler for CHIP-8 opcodes
// using the mnemonics from Cowgod's CHIP-8 technical reference.
package disassemble

import (
	"fmt"

	"github.com/jmchacon/chip8/instruction"
	"github.com/jmchacon/chip8/memory"
)

const (
	kMODE_IMPLIED = iota
	kMODE_ADDR
	kMODE_VX_KK
	kMODE_VX_VY
	kMODE_VX
	kMODE_I_ADDR
	kMODE_V0_ADDR
	kMODE_SPRITE
	kMODE_VX_DT
	kMODE_VX_K
	kMODE_DT_VX
	kMODE_ST_VX
	kMODE_I_VX
	kMODE_F_VX
	kMODE_B_VX
	kMODE_MEM_VX
	kMODE_VX_MEM
)

var modes = [instruction.KIND_MAX]int{
	instruction.CLS:        kMODE_IMPLIED,
	instruction.RET:        kMODE_IMPLIED,
	instruction.SYS:        kMODE_ADDR,
	instruction.JP:         kMODE_ADDR,
	instruction.CALL:       kMODE_ADDR,
	instruction.SE_VX_KK:   kMODE_VX_KK,
	instruction.SNE_VX_KK:  kMODE_VX_KK,
	instruction.SE_VX_VY:   kMODE_VX_VY,
	instruction.LD_VX_KK:   kMODE_VX_KK,
	instruction.ADD_VX_KK:  kMODE_VX_KK,
	instruction.LD_VX_VY:   kMODE_VX_VY,
	instruction.OR_VX_VY:   kMODE_VX_VY,
	instruction.AND_VX_VY:  kMODE_VX_VY,
	instruction.XOR_VX_VY:  kMODE_VX_VY,
	instruction.ADD_VX_VY:  kMODE_VX_VY,
	instruction.SUB_VX_VY:  kMODE_VX_VY,
	instruction.SHR_VX:     kMODE_VX,
	instruction.SUBN_VX_VY: kMODE_VX_VY,
	instruction.SHL_VX:     kMODE_VX,
	instruction.SNE_VX_VY:  kMODE_VX_VY,
	instruction.LD_I:       kMODE_I_ADDR,
	instruction.JP_V0:      kMODE_V0_ADDR,
	instruction.RND_VX_KK:  kMODE_VX_KK,
	instruction.DRW_VX_VY:  kMODE_SPRITE,
	instruction.SKP_VX:     kMODE_VX,
	instruction.SKNP_VX:    kMODE_VX,
	instruction.LD_VX_DT:   kMODE_VX_DT,
	instruction.LD_VX_K:    kMODE_VX_K,
	instruction.LD_DT_VX:   kMODE_DT_VX,
	instruction.LD_ST_VX:   kMODE_ST_VX,
	instruction.ADD_I_VX:   kMODE_I_VX,
	instruction.LD_F_VX:    kMODE_F_VX,
	instruction.LD_B_VX:    kMODE_B_VX,
	instruction.LD_I_VX:    kMODE_MEM_VX,
	instruction.LD_VX_I:    kMODE_VX_MEM,
	instruction.UNKNOWN:    kMODE_IMPLIED,
}

// Operands returns the assembler style operand list for an instruction.
func Operands(op instruction.Instruction) string {
	x, y := op.X(), op.Y()
	k := op.Decode()
	if k < 0 || k >= instruction.KIND_MAX {
		return ""
	}
	switch modes[k] {
	case kMODE_ADDR:
		return fmt.Sprintf("$%.3X", op.Addr())
	case kMODE_VX_KK:
		return fmt.Sprintf("V%X, $%.2X", x, op.KK())
	case kMODE_VX_VY:
		return fmt.Sprintf("V%X, V%X", x, y)
	case kMODE_VX:
		return fmt.Sprintf("V%X", x)
	case kMODE_I_ADDR:
		return fmt.Sprintf("I, $%.3X", op.Addr())
	case kMODE_V0_ADDR:
		return fmt.Sprintf("V0, $%.3X", op.Addr())
	case kMODE_SPRITE:
		return fmt.Sprintf("V%X, V%X, %d", x, y, op.N())
	case kMODE_VX_DT:
		return fmt.Sprintf("V%X, DT", x)
	case kMODE_VX_K:
		return fmt.Sprintf("V%X, K", x)
	case kMODE_DT_VX:
		return fmt.Sprintf("DT, V%X", x)
	case kMODE_ST_VX:
		return fmt.Sprintf("ST, V%X", x)
	case kMODE_I_VX:
		return fmt.Sprintf("I, V%X", x)
	case kMODE_F_VX:
		return fmt.Sprintf("F, V%X", x)
	case kMODE_B_VX:
		return fmt.Sprintf("B, V%X", x)
	case kMODE_MEM_VX:
		return fmt.Sprintf("[I], V%X", x)
	case kMODE_VX_MEM:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// Instruction returns the mnemonic and operands for a single opcode, e.g. "LD V1, $2A".
func Instruction(op instruction.Instruction) string {
	m := op.Decode().Mnemonic()
	if o := Operands(op); o != "" {
		return m + " " + o
	}
	return m
}

// Step will take the given PC value and disassemble the instruction at that location
// returning a string for the disassembly and the bytes forward the PC should move to get to
// the next instruction. This does not interpret the instructions so a JP followed by data
// will disassemble the data as instructions.
// Every CHIP-8 instruction is 2 bytes. If either byte can't be read the line says so
// instead of decoding.
func Step(pc uint16, r memory.Bank) (string, int) {
	hi, err := r.Read(pc)
	if err != nil {
		return fmt.Sprintf("%.4X ?? ??  (%v)", pc, err), 2
	}
	lo, err := r.Read(pc + 1)
	if err != nil {
		return fmt.Sprintf("%.4X %.2X ??  (%v)", pc, hi, err), 2
	}
	op := instruction.FromBytes(hi, lo)
	return fmt.Sprintf("%.4X %.2X %.2X  %s", pc, hi, lo, Instruction(op)), 2
}
