package main

import (
	"time"

	"github.com/jmchacon/chip8/chip8"
	"github.com/jmchacon/chip8/display"
	"github.com/jmchacon/chip8/io"
	"github.com/jmchacon/chip8/memory"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"
)

// window shows the display in an SDL window and takes keys from it.
// It must be used from inside sdl.Main and all SDL calls go through sdl.Do.
type window struct {
	keys    *io.Keys
	disp    *display.Display
	window  *sdl.Window
	surface *sdl.Surface
}

func newWindow(keys *io.Keys, scale int) (*window, error) {
	disp, err := display.Init(&display.Def{})
	if err != nil {
		return nil, err
	}
	w := &window{
		keys: keys,
		disp: disp,
	}
	sdl.Do(func() {
		if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
			return
		}
		w.window, err = sdl.CreateWindow("chip8", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(memory.DISPLAY_WIDTH*scale), int32(memory.DISPLAY_HEIGHT*scale), sdl.WINDOW_SHOWN)
		if err != nil {
			return
		}
		w.surface, err = w.window.GetSurface()
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *window) frameDone(fb memory.FrameBuffer) {
	i := w.disp.Render(&fb)
	sdl.Do(func() {
		draw.NearestNeighbor.Scale(w.surface, w.surface.Bounds(), i, i.Bounds(), draw.Src, nil)
		w.window.UpdateSurface()
	})
}

// run polls events and runs one frame per tick.
func (w *window) run(m *chip8.Machine) error {
	t := time.NewTicker(time.Second / time.Duration(*hz))
	defer t.Stop()
	for range t.C {
		quit := false
		sdl.Do(func() {
			for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
				switch e := ev.(type) {
				case *sdl.QuitEvent:
					quit = true
				case *sdl.KeyboardEvent:
					w.key(m, e)
				}
			}
		})
		if quit {
			return nil
		}
		if err := m.Frame(); err != nil {
			return err
		}
	}
	return nil
}

func (w *window) key(m *chip8.Machine, e *sdl.KeyboardEvent) {
	down := e.Type == sdl.KEYDOWN
	switch e.Keysym.Sym {
	case sdl.K_ESCAPE:
		if !down || e.Repeat != 0 {
			return
		}
		if m.Paused() {
			m.Resume()
			return
		}
		m.Pause()
		return
	case sdl.K_BACKSPACE:
		if down && e.Repeat == 0 {
			reset(m)
		}
		return
	}
	k, ok := io.KeyFor(rune(e.Keysym.Sym))
	if !ok {
		return
	}
	if down {
		w.keys.Press(k)
		return
	}
	w.keys.Release(k)
}

func (w *window) close() {
	sdl.Do(func() {
		w.window.Destroy()
		sdl.Quit()
	})
}
