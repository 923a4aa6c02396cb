package cpu

import (
	"github.com/jmchacon/chip8/instruction"
	"github.com/jmchacon/chip8/memory"
)

// handler executes a single decoded instruction. PC has already been advanced past it.
// Any error returned must leave State and Memory untouched.
type handler func(c *Chip, op instruction.Instruction) error

var handlers = [instruction.KIND_MAX]handler{
	instruction.CLS:        iCLS,
	instruction.RET:        iRET,
	instruction.SYS:        iSYS,
	instruction.JP:         iJP,
	instruction.CALL:       iCALL,
	instruction.SE_VX_KK:   iSE_VX_KK,
	instruction.SNE_VX_KK:  iSNE_VX_KK,
	instruction.SE_VX_VY:   iSE_VX_VY,
	instruction.LD_VX_KK:   iLD_VX_KK,
	instruction.ADD_VX_KK:  iADD_VX_KK,
	instruction.LD_VX_VY:   iLD_VX_VY,
	instruction.OR_VX_VY:   iOR_VX_VY,
	instruction.AND_VX_VY:  iAND_VX_VY,
	instruction.XOR_VX_VY:  iXOR_VX_VY,
	instruction.ADD_VX_VY:  iADD_VX_VY,
	instruction.SUB_VX_VY:  iSUB_VX_VY,
	instruction.SHR_VX:     iSHR_VX,
	instruction.SUBN_VX_VY: iSUBN_VX_VY,
	instruction.SHL_VX:     iSHL_VX,
	instruction.SNE_VX_VY:  iSNE_VX_VY,
	instruction.LD_I:       iLD_I,
	instruction.JP_V0:      iJP_V0,
	instruction.RND_VX_KK:  iRND_VX_KK,
	instruction.DRW_VX_VY:  iDRW_VX_VY,
	instruction.SKP_VX:     iSKP_VX,
	instruction.SKNP_VX:    iSKNP_VX,
	instruction.LD_VX_DT:   iLD_VX_DT,
	instruction.LD_VX_K:    iLD_VX_K,
	instruction.LD_DT_VX:   iLD_DT_VX,
	instruction.LD_ST_VX:   iLD_ST_VX,
	instruction.ADD_I_VX:   iADD_I_VX,
	instruction.LD_F_VX:    iLD_F_VX,
	instruction.LD_B_VX:    iLD_B_VX,
	instruction.LD_I_VX:    iLD_I_VX,
	instruction.LD_VX_I:    iLD_VX_I,
	instruction.UNKNOWN:    iUNKNOWN,
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// skip moves PC over the next instruction.
func (c *Chip) skip(b bool) {
	if b {
		c.PC += 2
	}
}

// 00E0
func iCLS(c *Chip, op instruction.Instruction) error {
	c.mem.Frame.Clear()
	return nil
}

// 00EE
func iRET(c *Chip, op instruction.Instruction) error {
	if c.SP == 0 {
		return StackFault{PC: c.opPC, Opcode: op, SP: c.SP}
	}
	c.PC = c.mem.Stack[c.SP-1]
	c.SP--
	return nil
}

// 0nnn is a machine code call on the original hardware. It's ignored.
func iSYS(c *Chip, op instruction.Instruction) error {
	return nil
}

// 1nnn
func iJP(c *Chip, op instruction.Instruction) error {
	c.PC = op.Addr()
	return nil
}

// 2nnn
func iCALL(c *Chip, op instruction.Instruction) error {
	if int(c.SP) >= memory.STACK_SIZE {
		return StackFault{PC: c.opPC, Opcode: op, SP: c.SP, Overflow: true}
	}
	c.SP++
	c.mem.Stack[c.SP-1] = c.PC
	c.PC = op.Addr()
	return nil
}

// 3xkk
func iSE_VX_KK(c *Chip, op instruction.Instruction) error {
	c.skip(c.V[op.X()] == op.KK())
	return nil
}

// 4xkk
func iSNE_VX_KK(c *Chip, op instruction.Instruction) error {
	c.skip(c.V[op.X()] != op.KK())
	return nil
}

// 5xy0
func iSE_VX_VY(c *Chip, op instruction.Instruction) error {
	c.skip(c.V[op.X()] == c.V[op.Y()])
	return nil
}

// 6xkk
func iLD_VX_KK(c *Chip, op instruction.Instruction) error {
	c.V[op.X()] = op.KK()
	return nil
}

// 7xkk doesn't touch VF.
func iADD_VX_KK(c *Chip, op instruction.Instruction) error {
	c.V[op.X()] += op.KK()
	return nil
}

// 8xy0
func iLD_VX_VY(c *Chip, op instruction.Instruction) error {
	c.V[op.X()] = c.V[op.Y()]
	return nil
}

// 8xy1
func iOR_VX_VY(c *Chip, op instruction.Instruction) error {
	c.V[op.X()] |= c.V[op.Y()]
	return nil
}

// 8xy2
func iAND_VX_VY(c *Chip, op instruction.Instruction) error {
	c.V[op.X()] &= c.V[op.Y()]
	return nil
}

// 8xy3
func iXOR_VX_VY(c *Chip, op instruction.Instruction) error {
	c.V[op.X()] ^= c.V[op.Y()]
	return nil
}

// 8xy4 writes the sum and then the carry. With x == F the carry wins.
func iADD_VX_VY(c *Chip, op instruction.Instruction) error {
	sum := uint16(c.V[op.X()]) + uint16(c.V[op.Y()])
	c.V[op.X()] = uint8(sum)
	c.V[FLAG] = uint8(sum >> 8)
	return nil
}

// The subtract and shift ops below all compute from the values before the
// instruction, then write VF and then Vx. With x == F the result wins.

// 8xy5
func iSUB_VX_VY(c *Chip, op instruction.Instruction) error {
	vx, vy := c.V[op.X()], c.V[op.Y()]
	c.V[FLAG] = flag(vx >= vy)
	c.V[op.X()] = vx - vy
	return nil
}

// 8xy6 ignores Vy.
func iSHR_VX(c *Chip, op instruction.Instruction) error {
	vx := c.V[op.X()]
	c.V[FLAG] = vx & 0x01
	c.V[op.X()] = vx >> 1
	return nil
}

// 8xy7 sets VF as Vy >= Vx. The result is Vx - Vy unless the canonical quirk is on.
func iSUBN_VX_VY(c *Chip, op instruction.Instruction) error {
	vx, vy := c.V[op.X()], c.V[op.Y()]
	c.V[FLAG] = flag(vy >= vx)
	if c.canonicalSUBN {
		c.V[op.X()] = vy - vx
		return nil
	}
	c.V[op.X()] = vx - vy
	return nil
}

// 8xyE ignores Vy.
func iSHL_VX(c *Chip, op instruction.Instruction) error {
	vx := c.V[op.X()]
	c.V[FLAG] = vx >> 7
	c.V[op.X()] = vx << 1
	return nil
}

// 9xy0
func iSNE_VX_VY(c *Chip, op instruction.Instruction) error {
	c.skip(c.V[op.X()] != c.V[op.Y()])
	return nil
}

// Annn
func iLD_I(c *Chip, op instruction.Instruction) error {
	c.I = op.Addr()
	return nil
}

// Bnnn. The target isn't checked here, the next fetch faults if it's out of range.
func iJP_V0(c *Chip, op instruction.Instruction) error {
	c.PC = op.Addr() + uint16(c.V[0])
	return nil
}

// Cxkk
func iRND_VX_KK(c *Chip, op instruction.Instruction) error {
	c.V[op.X()] = uint8(c.rand.Intn(256)) & op.KK()
	return nil
}

// Dxyn XORs an 8xn sprite from I onto the frame buffer at (Vx, Vy), wrapping
// at the edges. VF ends up 1 if any lit pixel was turned off.
func iDRW_VX_VY(c *Chip, op instruction.Instruction) error {
	n := int(op.N())
	if err := c.check(int(c.I), n); err != nil {
		return err
	}
	x, y := int(c.V[op.X()]), int(c.V[op.Y()])
	collision := false
	for row := 0; row < n; row++ {
		b, _ := c.mem.Read(c.I + uint16(row))
		for col := 0; col < 8; col++ {
			if b&(0x80>>col) == 0 {
				continue
			}
			if c.mem.Frame.Flip(x+col, y+row) {
				collision = true
			}
		}
	}
	c.V[FLAG] = flag(collision)
	c.redraw.Raise()
	return nil
}

// Ex9E
func iSKP_VX(c *Chip, op instruction.Instruction) error {
	c.skip(c.keys.IsDown(c.V[op.X()]))
	return nil
}

// ExA1
func iSKNP_VX(c *Chip, op instruction.Instruction) error {
	c.skip(!c.keys.IsDown(c.V[op.X()]))
	return nil
}

// Fx07
func iLD_VX_DT(c *Chip, op instruction.Instruction) error {
	c.V[op.X()] = c.DT
	return nil
}

// Fx0A loads the lowest numbered key down (0-E) into Vx. If none are down it
// falls through, or with BlockingKeyWait rewinds PC so it runs again next tick.
func iLD_VX_K(c *Chip, op instruction.Instruction) error {
	for k := uint8(0); k < 0x0F; k++ {
		if c.keys.IsDown(k) {
			c.V[op.X()] = k
			return nil
		}
	}
	if c.blockingKeyWait {
		c.PC -= 2
	}
	return nil
}

// Fx15
func iLD_DT_VX(c *Chip, op instruction.Instruction) error {
	c.DT = c.V[op.X()]
	return nil
}

// Fx18
func iLD_ST_VX(c *Chip, op instruction.Instruction) error {
	c.ST = c.V[op.X()]
	return nil
}

// Fx1E doesn't touch VF.
func iADD_I_VX(c *Chip, op instruction.Instruction) error {
	c.I += uint16(c.V[op.X()])
	return nil
}

// Fx29
func iLD_F_VX(c *Chip, op instruction.Instruction) error {
	c.I = memory.FONT_LOCATION + uint16(c.V[op.X()])*memory.GLYPH_SIZE
	return nil
}

// Fx33
func iLD_B_VX(c *Chip, op instruction.Instruction) error {
	if err := c.check(int(c.I), 3); err != nil {
		return err
	}
	v := c.V[op.X()]
	c.mem.Write(c.I, v/100)
	c.mem.Write(c.I+1, (v/10)%10)
	c.mem.Write(c.I+2, v%10)
	return nil
}

// Fx55 stores V0-Vx starting at I. I isn't changed.
func iLD_I_VX(c *Chip, op instruction.Instruction) error {
	n := int(op.X()) + 1
	if err := c.check(int(c.I), n); err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		c.mem.Write(c.I+uint16(k), c.V[k])
	}
	return nil
}

// Fx65 loads V0-Vx starting at I. I isn't changed.
func iLD_VX_I(c *Chip, op instruction.Instruction) error {
	n := int(op.X()) + 1
	if err := c.check(int(c.I), n); err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		c.V[k], _ = c.mem.Read(c.I + uint16(k))
	}
	return nil
}

func iUNKNOWN(c *Chip, op instruction.Instruction) error {
	c.logf("unknown opcode %s at 0x%.4X ignored", op, c.opPC)
	return nil
}
