package instruction

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFields(t *testing.T) {
	tests := []struct {
		in   Instruction
		msn  uint8
		x    uint8
		y    uint8
		n    uint8
		kk   uint8
		addr uint16
	}{
		{0x0000, 0x0, 0x0, 0x0, 0x0, 0x00, 0x000},
		{0xFFFF, 0xF, 0xF, 0xF, 0xF, 0xFF, 0xFFF},
		{0xD12F, 0xD, 0x1, 0x2, 0xF, 0x2F, 0x12F},
		{0x8AB4, 0x8, 0xA, 0xB, 0x4, 0xB4, 0xAB4},
		{0x1234, 0x1, 0x2, 0x3, 0x4, 0x34, 0x234},
	}
	for _, test := range tests {
		t.Run(test.in.String(), func(t *testing.T) {
			assert.Equal(t, test.msn, test.in.Msn())
			assert.Equal(t, test.x, test.in.X())
			assert.Equal(t, test.y, test.in.Y())
			assert.Equal(t, test.n, test.in.N())
			assert.Equal(t, test.kk, test.in.KK())
			assert.Equal(t, test.addr, test.in.Addr())
		})
	}
}

func TestFromBytes(t *testing.T) {
	assert.Equal(t, Instruction(0xA2F0), FromBytes(0xA2, 0xF0))
	assert.Equal(t, "A2F0", FromBytes(0xA2, 0xF0).String())
}

// pattern is an independent mask/value description of an opcode used to
// cross check the decoder's decision tree.
type pattern struct {
	mask  uint16
	value uint16
	kind  Kind
}

// Order matters: CLS/RET have to match ahead of SYS.
var patterns = []pattern{
	{0xFFFF, 0x00E0, CLS},
	{0xFFFF, 0x00EE, RET},
	{0xF000, 0x0000, SYS},
	{0xF000, 0x1000, JP},
	{0xF000, 0x2000, CALL},
	{0xF000, 0x3000, SE_VX_KK},
	{0xF000, 0x4000, SNE_VX_KK},
	{0xF000, 0x5000, SE_VX_VY},
	{0xF000, 0x6000, LD_VX_KK},
	{0xF000, 0x7000, ADD_VX_KK},
	{0xF00F, 0x8000, LD_VX_VY},
	{0xF00F, 0x8001, OR_VX_VY},
	{0xF00F, 0x8002, AND_VX_VY},
	{0xF00F, 0x8003, XOR_VX_VY},
	{0xF00F, 0x8004, ADD_VX_VY},
	{0xF00F, 0x8005, SUB_VX_VY},
	{0xF00F, 0x8006, SHR_VX},
	{0xF00F, 0x8007, SUBN_VX_VY},
	{0xF00F, 0x800E, SHL_VX},
	{0xF000, 0x9000, SNE_VX_VY},
	{0xF000, 0xA000, LD_I},
	{0xF000, 0xB000, JP_V0},
	{0xF000, 0xC000, RND_VX_KK},
	{0xF000, 0xD000, DRW_VX_VY},
	{0xF0FF, 0xE09E, SKP_VX},
	{0xF0FF, 0xE0A1, SKNP_VX},
	{0xF0FF, 0xF007, LD_VX_DT},
	{0xF0FF, 0xF00A, LD_VX_K},
	{0xF0FF, 0xF015, LD_DT_VX},
	{0xF0FF, 0xF018, LD_ST_VX},
	{0xF0FF, 0xF01E, ADD_I_VX},
	{0xF0FF, 0xF029, LD_F_VX},
	{0xF0FF, 0xF033, LD_B_VX},
	{0xF0FF, 0xF055, LD_I_VX},
	{0xF0FF, 0xF065, LD_VX_I},
}

func classify(w uint16) Kind {
	for _, p := range patterns {
		if w&p.mask == p.value {
			return p.kind
		}
	}
	return UNKNOWN
}

func TestDecodeAllWords(t *testing.T) {
	var seen [KIND_MAX]int
	for w := 0; w <= 0xFFFF; w++ {
		got := Decode(Instruction(w))
		if got < 0 || got >= KIND_MAX {
			t.Fatalf("%.4X decoded to out of range kind %d", w, got)
		}
		if want := classify(uint16(w)); got != want {
			t.Errorf("%.4X: got %s want %s", w, got, want)
		}
		seen[got]++
	}
	for k, cnt := range seen {
		if cnt == 0 {
			t.Errorf("%s never decoded from any word", Kind(k))
		}
	}
	// 0x8 has 7 unused low nibbles, 0xE has 254 unused low bytes and 0xF has 247.
	if got, want := seen[UNKNOWN], 16*16*7+16*254+16*247; got != want {
		t.Errorf("UNKNOWN count: got %d want %d", got, want)
	}
}

func TestDecodeFixtures(t *testing.T) {
	tests := []struct {
		in   Instruction
		want Kind
	}{
		{0x00E0, CLS},
		{0x00EE, RET},
		{0x0123, SYS},
		{0x00E1, SYS},
		{0x1ABC, JP},
		{0x2ABC, CALL},
		{0x3A12, SE_VX_KK},
		{0x4A12, SNE_VX_KK},
		{0x5AB0, SE_VX_VY},
		{0x5AB7, SE_VX_VY},
		{0x6A12, LD_VX_KK},
		{0x7A12, ADD_VX_KK},
		{0x8AB0, LD_VX_VY},
		{0x8AB1, OR_VX_VY},
		{0x8AB2, AND_VX_VY},
		{0x8AB3, XOR_VX_VY},
		{0x8AB4, ADD_VX_VY},
		{0x8AB5, SUB_VX_VY},
		{0x8AB6, SHR_VX},
		{0x8AB7, SUBN_VX_VY},
		{0x8AB8, UNKNOWN},
		{0x8ABE, SHL_VX},
		{0x8ABF, UNKNOWN},
		{0x9AB0, SNE_VX_VY},
		{0xA123, LD_I},
		{0xB123, JP_V0},
		{0xCA12, RND_VX_KK},
		{0xDAB5, DRW_VX_VY},
		{0xEA9E, SKP_VX},
		{0xEAA1, SKNP_VX},
		{0xEA9F, UNKNOWN},
		{0xFA07, LD_VX_DT},
		{0xFA0A, LD_VX_K},
		{0xFA15, LD_DT_VX},
		{0xFA18, LD_ST_VX},
		{0xFA1E, ADD_I_VX},
		{0xFA29, LD_F_VX},
		{0xFA33, LD_B_VX},
		{0xFA55, LD_I_VX},
		{0xFA65, LD_VX_I},
		{0xFA00, UNKNOWN},
		{0xFAFF, UNKNOWN},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s-%s", test.in, test.want), func(t *testing.T) {
			assert.Equal(t, test.want, test.in.Decode())
		})
	}
}

func TestKindStrings(t *testing.T) {
	for k := CLS; k < KIND_MAX; k++ {
		if k.String() == "" || k.Mnemonic() == "" {
			t.Errorf("kind %d missing a name", int(k))
		}
	}
	assert.Equal(t, "SUBN_VX_VY", SUBN_VX_VY.String())
	assert.Equal(t, "SUBN", SUBN_VX_VY.Mnemonic())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Equal(t, "???", Kind(-1).Mnemonic())
}
