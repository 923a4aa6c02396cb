// chip8emu runs a CHIP-8 ROM either in an SDL window or, with -terminal,
// directly in the terminal.
//
// Keys 0-F are mapped onto the left of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
//
// In the window Escape pauses/resumes, Backspace resets and closing the window quits.
// In the terminal space pauses/resumes, Backspace resets and Ctrl-C quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmchacon/chip8/audio"
	"github.com/jmchacon/chip8/chip8"
	"github.com/jmchacon/chip8/io"
	"github.com/jmchacon/chip8/memory"
	"github.com/jmchacon/chip8/rom"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	romPath         = flag.String("rom", "", "Path to ROM image to load")
	ticks           = flag.Int("ticks", chip8.DEFAULT_TICKS_PER_FRAME, "Instructions executed per frame")
	scale           = flag.Int("scale", 10, "Window pixels per CHIP-8 pixel")
	hz              = flag.Int("hz", chip8.FRAME_RATE, "Frames per second")
	debug           = flag.Bool("debug", false, "If true will emit full CPU debugging while running and dump memory on a fault")
	terminal        = flag.Bool("terminal", false, "If true run in the terminal instead of opening a window")
	mute            = flag.Bool("mute", false, "If true don't open the audio device")
	blockingKeyWait = flag.Bool("blocking_key_wait", false, "If true LD Vx, K waits for a key instead of falling through")
	canonicalSUBN   = flag.Bool("canonical_subn", false, "If true SUBN computes Vy - Vx")
)

// frontend is implemented by the window and terminal hosts.
type frontend interface {
	// frameDone is handed to the machine to show each new frame.
	frameDone(fb memory.FrameBuffer)
	// run drives the machine until the user quits or it faults.
	run(m *chip8.Machine) error
	close()
}

func main() {
	flag.Parse()
	if *romPath == "" && len(flag.Args()) == 1 {
		*romPath = flag.Args()[0]
	}
	if *romPath == "" {
		log.Fatalf("Invalid command: %s [flags] -rom <filename>", os.Args[0])
	}
	if err := checkFlags(*hz, *ticks, *scale); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	b, err := rom.Load(*romPath)
	if err != nil {
		log.Fatalf("Can't load rom: %v", err)
	}

	tone := &audio.Tone{}
	if !*mute {
		p, err := audio.NewPlayer(tone)
		if err != nil {
			log.Printf("Can't open audio, continuing without it: %v", err)
		} else {
			defer p.Close()
		}
	}

	keys := &io.Keys{}
	if *terminal {
		t, err := newTerminal(keys)
		if err != nil {
			log.Fatalf("Can't start terminal: %v", err)
		}
		emulate(t, keys, tone, b)
		return
	}
	// SDL needs the main thread so everything else runs inside sdl.Main.
	sdl.Main(func() {
		w, err := newWindow(keys, *scale)
		if err != nil {
			log.Fatalf("Can't create window: %v", err)
		}
		emulate(w, keys, tone, b)
	})
}

// emulate runs the program on the frontend until the user quits or it faults.
func emulate(f frontend, keys *io.Keys, tone *audio.Tone, prog []uint8) {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	m, err := chip8.Init(&chip8.Def{
		Keypad:          keys,
		TicksPerFrame:   *ticks,
		FrameDone:       f.frameDone,
		ToneChanged:     tone.SetActive,
		Logger:          logger,
		Debug:           *debug,
		BlockingKeyWait: *blockingKeyWait,
		CanonicalSUBN:   *canonicalSUBN,
	})
	if err == nil {
		err = m.LoadProgram(prog)
	}
	if err == nil {
		err = m.Start()
	}
	if err != nil {
		f.close()
		log.Fatalf("Can't start program: %v", err)
	}

	err = f.run(m)
	f.close()
	tone.SetActive(false)
	if err != nil {
		if *debug {
			if err := m.Dump(os.Stderr); err != nil {
				log.Printf("Can't dump state: %v", err)
			}
		}
		log.Fatalf("Program stopped: %v", err)
	}
}

// checkFlags rejects rates and sizes the frontends can't use.
func checkFlags(hz, ticks, scale int) error {
	if hz <= 0 {
		return fmt.Errorf("-hz must be positive, got %d", hz)
	}
	if ticks <= 0 {
		return fmt.Errorf("-ticks must be positive, got %d", ticks)
	}
	if scale <= 0 {
		return fmt.Errorf("-scale must be positive, got %d", scale)
	}
	return nil
}

// reset restarts the program, logging if it can't.
func reset(m *chip8.Machine) {
	if err := m.Reset(); err != nil {
		log.Printf("Can't reset: %v", err)
	}
}
