// Package functionality does basic end-end verification
// of the interpreter by running small programs through a machine.
package functionality

import (
	"errors"
	"flag"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/jmchacon/chip8/chip8"
	"github.com/jmchacon/chip8/cpu"
	"github.com/jmchacon/chip8/disassemble"
	"github.com/jmchacon/chip8/display"
	"github.com/jmchacon/chip8/io"
	"github.com/jmchacon/chip8/memory"
)

var (
	testImageDir   = flag.String("test_image_dir", "", "If set will generate images from tests to this directory")
	testImageScale = flag.Int("test_image_scale", 4, "The amount to scale the output PNGs")
)

func words(prog ...uint16) []uint8 {
	var b []uint8
	for _, w := range prog {
		b = append(b, uint8(w>>8), uint8(w))
	}
	return b
}

func setup(t *testing.T, def *chip8.Def, prog []uint8) (*chip8.Machine, *io.Keys) {
	t.Helper()
	keys := &io.Keys{}
	def.Keypad = keys
	m, err := chip8.Init(def)
	if err != nil {
		t.Fatalf("Can't init machine: %v", err)
	}
	if err := m.LoadProgram(prog); err != nil {
		t.Fatalf("Can't load program: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("Can't start: %v", err)
	}
	return m, keys
}

func frames(t *testing.T, m *chip8.Machine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := m.Frame(); err != nil {
			t.Fatalf("frame %d: %v\n%s", i, err, spew.Sdump(m.CPU()))
		}
	}
}

func saveImage(t *testing.T, fb memory.FrameBuffer) {
	if *testImageDir == "" {
		return
	}
	i, err := display.Render(&fb, *testImageScale)
	if err != nil {
		t.Fatal(err)
	}
	o, err := os.Create(filepath.Join(*testImageDir, t.Name()+".png"))
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()
	if err := png.Encode(o, i); err != nil {
		t.Fatal(err)
	}
}

// digits draws all 16 font glyphs in 2 rows of 8.
var digits = words(
	0x6000, // 200: LD V0, 00     digit
	0x6100, // 202: LD V1, 00     x
	0x6200, // 204: LD V2, 00     y
	0xF029, // 206: LD F, V0
	0xD125, // 208: DRW V1, V2, 5
	0x7001, // 20A: ADD V0, 01
	0x7108, // 20C: ADD V1, 08
	0x4140, // 20E: SNE V1, 40
	0x2220, // 210: CALL 220
	0x3010, // 212: SE V0, 10
	0x1206, // 214: JP 206
	0x1216, // 216: JP 216
	0x0000, // 218
	0x0000, // 21A
	0x0000, // 21C
	0x0000, // 21E
	0x6100, // 220: LD V1, 00
	0x7206, // 222: ADD V2, 06
	0x00EE, // 224: RET
)

func TestDigits(t *testing.T) {
	var got memory.FrameBuffer
	draws := 0
	m, _ := setup(t, &chip8.Def{
		FrameDone: func(fb memory.FrameBuffer) {
			got = fb
			draws++
		},
	}, digits)
	frames(t, m, 20)
	saveImage(t, got)

	var want memory.FrameBuffer
	for d := uint8(0); d < 16; d++ {
		g := memory.Glyph(d)
		x0, y0 := int(d%8)*8, int(d/8)*6
		for r, b := range g {
			for c := 0; c < 8; c++ {
				if b&(0x80>>c) != 0 {
					want.Flip(x0+c, y0+r)
				}
			}
		}
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("display differs:\ngot\n%s\nwant\n%s", got.String(), want.String())
	}
	if diff := deep.Equal(m.FrameBuffer(), got); diff != nil {
		t.Errorf("last FrameDone isn't the current display: %v", diff)
	}
	if draws == 0 || draws > 16 {
		t.Errorf("FrameDone called %d times", draws)
	}
	s := m.CPU()
	if s.PC != 0x216 || s.SP != 0 || s.V[cpu.FLAG] != 0 || s.V[0] != 0x10 {
		t.Errorf("bad final state %s", spew.Sdump(s))
	}
}

func TestDisassembleDigits(t *testing.T) {
	mem := memory.New()
	if err := mem.LoadProgram(digits); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"0200 60 00  LD V0, $00",
		"0202 61 00  LD V1, $00",
		"0204 62 00  LD V2, $00",
		"0206 F0 29  LD F, V0",
		"0208 D1 25  DRW V1, V2, 5",
		"020A 70 01  ADD V0, $01",
		"020C 71 08  ADD V1, $08",
		"020E 41 40  SNE V1, $40",
		"0210 22 20  CALL $220",
	}
	pc := uint16(memory.PROGRAM_START)
	for _, w := range want {
		got, off := disassemble.Step(pc, mem)
		if got != w {
			t.Errorf("0x%.4X: got %q want %q", pc, got, w)
		}
		pc += uint16(off)
	}
}

func TestBCD(t *testing.T) {
	m, _ := setup(t, &chip8.Def{}, words(
		0x6089, // LD V0, 89 (137)
		0xA300, // LD I, 300
		0xF033, // LD B, V0
		0xF265, // LD V2, [I]
		0x1208, // JP 208
	))
	frames(t, m, 1)
	s := m.CPU()
	if got, want := s.V[:3], []uint8{1, 3, 7}; string(got) != string(want) {
		t.Errorf("digits: got %v want %v", got, want)
	}
}

func TestCountdown(t *testing.T) {
	m, _ := setup(t, &chip8.Def{}, words(
		0x6005, // 200: LD V0, 05
		0xF015, // 202: LD DT, V0
		0xF107, // 204: LD V1, DT
		0x3100, // 206: SE V1, 00
		0x1204, // 208: JP 204
		0x6201, // 20A: LD V2, 01
		0x120C, // 20C: JP 20C
	))
	frames(t, m, 4)
	if s := m.CPU(); s.V[2] != 0 || s.DT != 1 {
		t.Fatalf("finished early: %s", spew.Sdump(s))
	}
	frames(t, m, 1)
	if s := m.CPU(); s.V[2] != 1 || s.DT != 0 {
		t.Errorf("didn't finish after 5 frames: %s", spew.Sdump(s))
	}
}

func TestKeyWait(t *testing.T) {
	var tones []bool
	m, keys := setup(t, &chip8.Def{
		BlockingKeyWait: true,
		ToneChanged:     func(on bool) { tones = append(tones, on) },
	}, words(
		0xF00A, // 200: LD V0, K
		0xF018, // 202: LD ST, V0
		0x1204, // 204: JP 204
	))
	frames(t, m, 3)
	if s := m.CPU(); s.PC != memory.PROGRAM_START || s.V[0] != 0 {
		t.Fatalf("didn't wait for a key: %s", spew.Sdump(s))
	}
	keys.Press(7)
	frames(t, m, 1)
	// ST was set in the first half so this frame's timer update already took one off.
	if s := m.CPU(); s.V[0] != 7 || s.PC != 0x204 || s.ST != 6 {
		t.Errorf("key not taken: %s", spew.Sdump(s))
	}
	if !m.SoundActive() {
		t.Error("tone not on")
	}
	frames(t, m, 7)
	if diff := deep.Equal(tones, []bool{true, false}); diff != nil {
		t.Errorf("tone changes: %v", diff)
	}
}

func TestRecursionFault(t *testing.T) {
	m, _ := setup(t, &chip8.Def{}, words(0x2200))
	err := m.Frame()
	if err == nil {
		err = m.Frame()
	}
	var e cpu.StackFault
	if !errors.As(err, &e) || !e.Overflow {
		t.Fatalf("expected stack overflow, got %T - %v", err, err)
	}
	if m.Running() {
		t.Error("machine still running after fault")
	}
	if got, want := m.CPU().SP, uint8(memory.STACK_SIZE); got != want {
		t.Errorf("SP: got %d want %d", got, want)
	}
}
