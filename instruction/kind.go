package instruction

import "fmt"

// Kind is an enumeration of every operation the interpreter executes.
type Kind int

const (
	CLS        Kind = iota // 00E0 - clear the display.
	RET                    // 00EE - return from subroutine.
	SYS                    // 0nnn - legacy machine code call, ignored.
	JP                     // 1nnn - jump to nnn.
	CALL                   // 2nnn - call subroutine at nnn.
	SE_VX_KK               // 3xkk - skip if Vx == kk.
	SNE_VX_KK              // 4xkk - skip if Vx != kk.
	SE_VX_VY               // 5xy0 - skip if Vx == Vy.
	LD_VX_KK               // 6xkk - Vx = kk.
	ADD_VX_KK              // 7xkk - Vx += kk.
	LD_VX_VY               // 8xy0 - Vx = Vy.
	OR_VX_VY               // 8xy1 - Vx |= Vy.
	AND_VX_VY              // 8xy2 - Vx &= Vy.
	XOR_VX_VY              // 8xy3 - Vx ^= Vy.
	ADD_VX_VY              // 8xy4 - Vx += Vy, VF = carry.
	SUB_VX_VY              // 8xy5 - Vx -= Vy, VF = not borrow.
	SHR_VX                 // 8xy6 - Vx >>= 1, VF = old bit 0.
	SUBN_VX_VY             // 8xy7 - subtract, VF = Vy >= Vx.
	SHL_VX                 // 8xyE - Vx <<= 1, VF = old bit 7.
	SNE_VX_VY              // 9xy0 - skip if Vx != Vy.
	LD_I                   // Annn - I = nnn.
	JP_V0                  // Bnnn - jump to nnn + V0.
	RND_VX_KK              // Cxkk - Vx = random & kk.
	DRW_VX_VY              // Dxyn - draw n byte sprite at (Vx, Vy), VF = collision.
	SKP_VX                 // Ex9E - skip if key Vx is down.
	SKNP_VX                // ExA1 - skip if key Vx is up.
	LD_VX_DT               // Fx07 - Vx = DT.
	LD_VX_K                // Fx0A - Vx = key down.
	LD_DT_VX               // Fx15 - DT = Vx.
	LD_ST_VX               // Fx18 - ST = Vx.
	ADD_I_VX               // Fx1E - I += Vx.
	LD_F_VX                // Fx29 - I = font glyph for Vx.
	LD_B_VX                // Fx33 - BCD of Vx at I, I+1, I+2.
	LD_I_VX                // Fx55 - store V0..Vx at I.
	LD_VX_I                // Fx65 - load V0..Vx from I.
	UNKNOWN                // Anything not matching a pattern above.
	KIND_MAX               // End of kind enumerations.
)

var kindNames = [KIND_MAX]string{
	CLS:        "CLS",
	RET:        "RET",
	SYS:        "SYS",
	JP:         "JP",
	CALL:       "CALL",
	SE_VX_KK:   "SE",
	SNE_VX_KK:  "SNE",
	SE_VX_VY:   "SE",
	LD_VX_KK:   "LD",
	ADD_VX_KK:  "ADD",
	LD_VX_VY:   "LD",
	OR_VX_VY:   "OR",
	AND_VX_VY:  "AND",
	XOR_VX_VY:  "XOR",
	ADD_VX_VY:  "ADD",
	SUB_VX_VY:  "SUB",
	SHR_VX:     "SHR",
	SUBN_VX_VY: "SUBN",
	SHL_VX:     "SHL",
	SNE_VX_VY:  "SNE",
	LD_I:       "LD",
	JP_V0:      "JP",
	RND_VX_KK:  "RND",
	DRW_VX_VY:  "DRW",
	SKP_VX:     "SKP",
	SKNP_VX:    "SKNP",
	LD_VX_DT:   "LD",
	LD_VX_K:    "LD",
	LD_DT_VX:   "LD",
	LD_ST_VX:   "LD",
	ADD_I_VX:   "ADD",
	LD_F_VX:    "LD",
	LD_B_VX:    "LD",
	LD_I_VX:    "LD",
	LD_VX_I:    "LD",
	UNKNOWN:    "???",
}

// Mnemonic returns the assembler mnemonic for the kind. Several kinds share one
// (LD, ADD, SE, ...) and are told apart by their operands.
func (k Kind) Mnemonic() string {
	if k < 0 || k >= KIND_MAX {
		return "???"
	}
	return kindNames[k]
}

var kindStrings = [KIND_MAX]string{
	CLS:        "CLS",
	RET:        "RET",
	SYS:        "SYS",
	JP:         "JP",
	CALL:       "CALL",
	SE_VX_KK:   "SE_VX_KK",
	SNE_VX_KK:  "SNE_VX_KK",
	SE_VX_VY:   "SE_VX_VY",
	LD_VX_KK:   "LD_VX_KK",
	ADD_VX_KK:  "ADD_VX_KK",
	LD_VX_VY:   "LD_VX_VY",
	OR_VX_VY:   "OR_VX_VY",
	AND_VX_VY:  "AND_VX_VY",
	XOR_VX_VY:  "XOR_VX_VY",
	ADD_VX_VY:  "ADD_VX_VY",
	SUB_VX_VY:  "SUB_VX_VY",
	SHR_VX:     "SHR_VX",
	SUBN_VX_VY: "SUBN_VX_VY",
	SHL_VX:     "SHL_VX",
	SNE_VX_VY:  "SNE_VX_VY",
	LD_I:       "LD_I",
	JP_V0:      "JP_V0",
	RND_VX_KK:  "RND_VX_KK",
	DRW_VX_VY:  "DRW_VX_VY",
	SKP_VX:     "SKP_VX",
	SKNP_VX:    "SKNP_VX",
	LD_VX_DT:   "LD_VX_DT",
	LD_VX_K:    "LD_VX_K",
	LD_DT_VX:   "LD_DT_VX",
	LD_ST_VX:   "LD_ST_VX",
	ADD_I_VX:   "ADD_I_VX",
	LD_F_VX:    "LD_F_VX",
	LD_B_VX:    "LD_B_VX",
	LD_I_VX:    "LD_I_VX",
	LD_VX_I:    "LD_VX_I",
	UNKNOWN:    "UNKNOWN",
}

// String implements fmt.Stringer and returns the constant name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= KIND_MAX {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindStrings[k]
}
