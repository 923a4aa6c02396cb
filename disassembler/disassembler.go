// disassembler takes a CHIP-8 ROM filename, loads it at 0x200 the way the
// interpreter does and disassembles it to stdout. Since code and data are
// mixed in ROMs every 2 bytes are shown as an instruction.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmchacon/chip8/disassemble"
	"github.com/jmchacon/chip8/memory"
	"github.com/jmchacon/chip8/rom"
)

var (
	startPC = flag.Int("start_pc", memory.PROGRAM_START, "PC value to start disassembling. Must be within the loaded ROM.")
	dump    = flag.Bool("dump", false, "If set also emit a hex dump of all of memory after the disassembly")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [-start_pc <PC>] [-dump] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	b, err := rom.Load(fn)
	if err != nil {
		log.Fatalf("Can't load %s - %v", fn, err)
	}
	m := memory.New()
	if err := m.LoadProgram(b); err != nil {
		log.Fatalf("Can't load %s - %v", fn, err)
	}
	end := memory.PROGRAM_START + len(b)
	if *startPC < memory.PROGRAM_START || *startPC >= end {
		log.Fatalf("start_pc 0x%.4X outside of ROM (0x%.4X-0x%.4X)", *startPC, memory.PROGRAM_START, end-1)
	}
	fmt.Printf("0x%.2X bytes at pc: %.4X\n", len(b), memory.PROGRAM_START)
	for pc := *startPC; pc < end; {
		dis, off := disassemble.Step(uint16(pc), m)
		pc += off
		fmt.Printf("%s\n", dis)
	}
	if *dump {
		if err := m.Dump(os.Stdout); err != nil {
			log.Fatalf("Can't dump memory - %v", err)
		}
	}
}
