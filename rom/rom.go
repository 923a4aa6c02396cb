// Package rom reads CHIP-8 program images. A ROM is a raw big endian opcode
// stream with no header which loads at 0x200, so the only check possible is
// whether it fits.
package rom

import (
	"fmt"
	"os"

	"github.com/jmchacon/chip8/memory"
)

// TooLarge is returned for files which won't fit in the program area.
type TooLarge struct {
	Path string
	Size int64
}

// Error implements the interface for error types.
func (e TooLarge) Error() string {
	return fmt.Sprintf("%s: %d bytes is larger than the %d bytes available", e.Path, e.Size, memory.MAX_PROGRAM_SIZE)
}

// Load reads the ROM at path. The size is checked before reading so a huge
// file isn't pulled into memory.
func Load(path string) ([]uint8, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("can't stat ROM: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > memory.MAX_PROGRAM_SIZE {
		return nil, TooLarge{path, fi.Size()}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read ROM: %w", err)
	}
	if len(b) > memory.MAX_PROGRAM_SIZE {
		return nil, TooLarge{path, int64(len(b))}
	}
	return b, nil
}
