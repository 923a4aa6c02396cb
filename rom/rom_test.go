package rom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmchacon/chip8/memory"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, size int) string {
		p := filepath.Join(dir, name)
		b := make([]byte, size)
		for i := range b {
			b[i] = byte(i)
		}
		assert.NoError(t, os.WriteFile(p, b, 0o644))
		return p
	}

	b, err := Load(write("small.ch8", 4))
	assert.NoError(t, err)
	assert.Equal(t, []uint8{0, 1, 2, 3}, b)

	b, err = Load(write("full.ch8", memory.MAX_PROGRAM_SIZE))
	assert.NoError(t, err)
	assert.Equal(t, memory.MAX_PROGRAM_SIZE, len(b))

	_, err = Load(write("big.ch8", memory.MAX_PROGRAM_SIZE+1))
	var tl TooLarge
	assert.True(t, errors.As(err, &tl))
	assert.Equal(t, int64(memory.MAX_PROGRAM_SIZE+1), tl.Size)

	b, err = Load(write("empty.ch8", 0))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(b))

	_, err = Load(filepath.Join(dir, "missing.ch8"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(dir)
	assert.True(t, err != nil)
}
