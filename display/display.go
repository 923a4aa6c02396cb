// Package display turns the CHIP-8 frame buffer into something a host can show:
// an image for windowed frontends (and test output) or text for terminals.
package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/jmchacon/chip8/memory"
	"golang.org/x/image/draw"
)

var (
	kBlack = color.NRGBA{0x00, 0x00, 0x00, 0xFF}
	kWhite = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

// Def defines a display.
type Def struct {
	// Scale is the integer factor each pixel is enlarged by. 0 means 1.
	Scale int
	// On and Off are the pixel colors. If both are zero white on black is used.
	On, Off color.NRGBA
}

// Display renders frame buffers into a reused image.
type Display struct {
	on, off color.NRGBA
	picture *image.NRGBA // The unscaled 64x32 frame.
	scaled  *image.NRGBA // The picture at the requested scale (nil if scale is 1).
}

// Init returns a Display for the given definition.
func Init(def *Def) (*Display, error) {
	if def == nil {
		return nil, errors.New("nil Def")
	}
	scale := def.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %d", scale)
	}
	d := &Display{
		on:      def.On,
		off:     def.Off,
		picture: image.NewNRGBA(image.Rect(0, 0, memory.DISPLAY_WIDTH, memory.DISPLAY_HEIGHT)),
	}
	if d.on == (color.NRGBA{}) && d.off == (color.NRGBA{}) {
		d.on, d.off = kWhite, kBlack
	}
	if scale > 1 {
		d.scaled = image.NewNRGBA(image.Rect(0, 0, memory.DISPLAY_WIDTH*scale, memory.DISPLAY_HEIGHT*scale))
	}
	return d, nil
}

// Render draws the frame buffer and returns the (possibly scaled) image.
// The image is reused by the next call so callers wanting to keep it must copy it.
func (d *Display) Render(fb *memory.FrameBuffer) *image.NRGBA {
	for y := 0; y < memory.DISPLAY_HEIGHT; y++ {
		for x := 0; x < memory.DISPLAY_WIDTH; x++ {
			c := d.off
			if fb[x+y*memory.DISPLAY_WIDTH] {
				c = d.on
			}
			d.picture.SetNRGBA(x, y, c)
		}
	}
	if d.scaled == nil {
		return d.picture
	}
	draw.NearestNeighbor.Scale(d.scaled, d.scaled.Bounds(), d.picture, d.picture.Bounds(), draw.Src, nil)
	return d.scaled
}

// Render is a one shot version of Display.Render using white on black.
func Render(fb *memory.FrameBuffer, scale int) (*image.NRGBA, error) {
	d, err := Init(&Def{Scale: scale})
	if err != nil {
		return nil, err
	}
	return d.Render(fb), nil
}

// Text renders the frame buffer for a terminal using half block characters so
// each line of text holds 2 rows of pixels. Lines end in \r\n so it works
// with a terminal in raw mode.
func Text(fb *memory.FrameBuffer) string {
	var b strings.Builder
	for y := 0; y < memory.DISPLAY_HEIGHT; y += 2 {
		for x := 0; x < memory.DISPLAY_WIDTH; x++ {
			top := fb[x+y*memory.DISPLAY_WIDTH]
			bottom := fb[x+(y+1)*memory.DISPLAY_WIDTH]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteString("\r\n")
	}
	return b.String()
}
