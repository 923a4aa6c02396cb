package memory

const (
	DISPLAY_WIDTH  = 64
	DISPLAY_HEIGHT = 32
	DISPLAY_SIZE   = DISPLAY_WIDTH * DISPLAY_HEIGHT
)

// FrameBuffer is the 64x32 monochrome display, row major.
// It's a plain array so assigning it takes a consistent snapshot.
type FrameBuffer [DISPLAY_SIZE]bool

// Index returns the offset of (x, y) after wrapping each axis on its own.
// Wrapping the combined index instead would move pixels which fall off the
// right edge down a row.
func Index(x, y int) int {
	x %= DISPLAY_WIDTH
	if x < 0 {
		x += DISPLAY_WIDTH
	}
	y %= DISPLAY_HEIGHT
	if y < 0 {
		y += DISPLAY_HEIGHT
	}
	return x + y*DISPLAY_WIDTH
}

// Pixel returns whether (x, y) is lit. Coordinates wrap.
func (f *FrameBuffer) Pixel(x, y int) bool {
	return f[Index(x, y)]
}

// Flip toggles (x, y) and returns true if it was lit beforehand (a collision).
func (f *FrameBuffer) Flip(x, y int) bool {
	i := Index(x, y)
	was := f[i]
	f[i] = !was
	return was
}

// Clear turns every pixel off.
func (f *FrameBuffer) Clear() {
	*f = FrameBuffer{}
}

// Lit returns the number of pixels currently on.
func (f *FrameBuffer) Lit() int {
	n := 0
	for _, p := range f {
		if p {
			n++
		}
	}
	return n
}

// String renders the buffer as text, '#' for lit pixels and '.' otherwise, one row per line.
func (f *FrameBuffer) String() string {
	b := make([]byte, 0, DISPLAY_SIZE+DISPLAY_HEIGHT)
	for y := 0; y < DISPLAY_HEIGHT; y++ {
		for x := 0; x < DISPLAY_WIDTH; x++ {
			c := byte('.')
			if f[x+y*DISPLAY_WIDTH] {
				c = '#'
			}
			b = append(b, c)
		}
		b = append(b, '\n')
	}
	return string(b)
}
