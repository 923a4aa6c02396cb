package instruction

// Decode classifies a word into its Kind. It's total over all 65536 words:
// anything which doesn't match a known pattern is UNKNOWN rather than an error.
// The 0x0, 0x8, 0xE and 0xF families multiplex several operations and are
// further keyed on Addr, N and KK respectively.
func Decode(i Instruction) Kind {
	switch i.Msn() {
	case 0x0:
		switch i.Addr() {
		case 0x0E0:
			return CLS
		case 0x0EE:
			return RET
		}
		return SYS
	case 0x1:
		return JP
	case 0x2:
		return CALL
	case 0x3:
		return SE_VX_KK
	case 0x4:
		return SNE_VX_KK
	case 0x5:
		// The low nibble isn't checked so 5xy1-5xyF still compare.
		return SE_VX_VY
	case 0x6:
		return LD_VX_KK
	case 0x7:
		return ADD_VX_KK
	case 0x8:
		return arithmetic[i.N()]
	case 0x9:
		return SNE_VX_VY
	case 0xA:
		return LD_I
	case 0xB:
		return JP_V0
	case 0xC:
		return RND_VX_KK
	case 0xD:
		return DRW_VX_VY
	case 0xE:
		switch i.KK() {
		case 0x9E:
			return SKP_VX
		case 0xA1:
			return SKNP_VX
		}
		return UNKNOWN
	}
	// Only 0xF is left from a 4 bit value.
	switch i.KK() {
	case 0x07:
		return LD_VX_DT
	case 0x0A:
		return LD_VX_K
	case 0x15:
		return LD_DT_VX
	case 0x18:
		return LD_ST_VX
	case 0x1E:
		return ADD_I_VX
	case 0x29:
		return LD_F_VX
	case 0x33:
		return LD_B_VX
	case 0x55:
		return LD_I_VX
	case 0x65:
		return LD_VX_I
	}
	return UNKNOWN
}

// arithmetic maps the low nibble of an 8xyN word.
var arithmetic = [16]Kind{
	0x0: LD_VX_VY,
	0x1: OR_VX_VY,
	0x2: AND_VX_VY,
	0x3: XOR_VX_VY,
	0x4: ADD_VX_VY,
	0x5: SUB_VX_VY,
	0x6: SHR_VX,
	0x7: SUBN_VX_VY,
	0x8: UNKNOWN,
	0x9: UNKNOWN,
	0xA: UNKNOWN,
	0xB: UNKNOWN,
	0xC: UNKNOWN,
	0xD: UNKNOWN,
	0xE: SHL_VX,
	0xF: UNKNOWN,
}
