package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/jmchacon/chip8/chip8"
	"github.com/jmchacon/chip8/display"
	"github.com/jmchacon/chip8/io"
	"github.com/jmchacon/chip8/memory"
	"golang.org/x/term"
)

// Terminals only send key presses, so a key counts as held until this long
// after the last byte for it arrives (auto repeat keeps it held).
const keyHold = 150 * time.Millisecond

// terminalHost draws the display with text and reads keys from stdin in raw mode.
type terminalHost struct {
	keys     *io.Keys
	fd       int
	oldState *term.State
	mu       sync.Mutex
	release  [io.NUM_KEYS]*time.Timer
}

func newTerminal(keys *io.Keys) (*terminalHost, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin isn't a terminal")
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < memory.DISPLAY_WIDTH || h < memory.DISPLAY_HEIGHT/2) {
		log.Printf("Terminal is %dx%d, at least %dx%d is needed to see the whole display", w, h, memory.DISPLAY_WIDTH, memory.DISPLAY_HEIGHT/2)
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("can't set raw mode: %w", err)
	}
	// Clear the screen and hide the cursor.
	fmt.Print("\x1b[2J\x1b[?25l")
	return &terminalHost{
		keys:     keys,
		fd:       fd,
		oldState: old,
	}, nil
}

func (t *terminalHost) frameDone(fb memory.FrameBuffer) {
	fmt.Print("\x1b[H" + display.Text(&fb))
}

// run reads stdin until Ctrl-C while the machine runs in the background.
func (t *terminalHost) run(m *chip8.Machine) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go t.read(ctx, cancel, m)
	err := m.Run(ctx, *hz)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (t *terminalHost) read(ctx context.Context, cancel context.CancelFunc, m *chip8.Machine) {
	buf := make([]byte, 16)
	for ctx.Err() == nil {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			cancel()
			return
		}
		for _, b := range buf[:n] {
			switch b {
			case 0x03: // Ctrl-C
				cancel()
				return
			case ' ':
				if m.Paused() {
					m.Resume()
				} else {
					m.Pause()
				}
			case 0x7F, 0x08:
				reset(m)
			default:
				if k, ok := io.KeyFor(rune(b)); ok {
					t.press(k)
				}
			}
		}
	}
}

// press holds k down and (re)arms its release.
func (t *terminalHost) press(k uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.keys.Press(k)
	if r := t.release[k]; r != nil {
		r.Stop()
	}
	t.release[k] = time.AfterFunc(keyHold, func() { t.keys.Release(k) })
}

func (t *terminalHost) close() {
	// Show the cursor again and move below the display.
	fmt.Printf("\x1b[?25h\x1b[%d;1H", memory.DISPLAY_HEIGHT/2+1)
	if t.oldState != nil {
		term.Restore(t.fd, t.oldState)
		t.oldState = nil
	}
}
