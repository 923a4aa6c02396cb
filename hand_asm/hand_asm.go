// hand_asm takes a filename and produces a CHIP-8 ROM
// from parsing it as a hand assembled file
// of the form:
//
// XXXX HHLL <anything>
// XXXX HH LL <anything>
//
// Where XXXX is the address field and HHLL (or HH LL) is the opcode.
// The second form is what the disassembler emits so its output can be
// edited and reassembled. Lines not starting with an address are ignored
// as is anything after the opcode. Addresses must be at or above 0x200
// and any gaps are zero filled.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"

	"github.com/jmchacon/chip8/memory"
)

var lineRE = regexp.MustCompile(`^([0-9A-Fa-f]{4})\s+([0-9A-Fa-f]{2})\s?([0-9A-Fa-f]{2})\b`)

// assemble parses the hand assembled input and returns the ROM image starting at 0x200.
func assemble(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	var output []byte
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		toks := lineRE.FindStringSubmatch(t)
		if toks == nil {
			continue
		}
		addr, err := strconv.ParseUint(toks[1], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d %q - %v", l, t, err)
		}
		if addr < memory.PROGRAM_START || addr+1 >= memory.RAM_SIZE {
			return nil, fmt.Errorf("line %d %q - address 0x%.4X outside of 0x%.4X-0x%.4X", l, t, addr, memory.PROGRAM_START, memory.RAM_SIZE-2)
		}
		off := int(addr) - memory.PROGRAM_START
		for len(output) < off+2 {
			output = append(output, 0x00)
		}
		for i, v := range toks[2:] {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d %q - %v", l, t, err)
			}
			output[off+i] = byte(b)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return output, nil
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s <input> <output>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	in, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	output, err := assemble(in)
	in.Close()
	if err != nil {
		log.Fatalf("Can't process %q - %v", fn, err)
	}
	of, err := os.Create(out)
	if err != nil {
		log.Fatalf("Can't open output %q - %v", out, err)
	}
	n, err := of.Write(output)
	if got, want := n, len(output); got != want {
		log.Fatalf("Short write to %q. Got %d and want %d", out, got, want)
	}
	if err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
	if err := of.Close(); err != nil {
		log.Fatalf("Error closing %q - %v", out, err)
	}
}
