// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ezrec/regm/cpu"
	"github.com/ezrec/regm/emulator"
	"github.com/ezrec/regm/monitor"
)

// demo is run when no program is given: it counts R0 down onto the
// stack, forever.
var demo = []string{
	"ADD R0 100",
	"ADD R1 2",
	"PUSH R0",
	"SUB R0 1",
	"JMP R1",
}

// defines collects -D NAME=VALUE flags.
type defines map[string]string

func (d defines) String() string {
	var list []string
	for key, value := range d {
		list = append(list, key+"="+value)
	}
	return strings.Join(list, ",")
}

func (d defines) Set(text string) error {
	key, value, ok := strings.Cut(text, "=")
	if !ok || len(key) == 0 {
		return fmt.Errorf("expected NAME=VALUE, not %q", text)
	}
	d[key] = value
	return nil
}

// demoFinished is true when the demo stopped the way it always does: with
// the stack full, or out of ticks when run with a small -n.
func demoFinished(err error) bool {
	return errors.Is(err, cpu.ErrStackFull) || errors.Is(err, emulator.ErrTickLimit)
}

func main() {
	var compile string
	var verbose bool
	var limit int
	var interactive bool
	var dump bool
	predefine := defines{}

	flag.StringVar(&compile, "c", "", "program source file to assemble")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&limit, "n", emulator.TICK_LIMIT, "Maximum instructions to run, 0 for no limit")
	flag.BoolVar(&interactive, "i", false, "Interactive monitor")
	flag.BoolVar(&dump, "dump", false, "Print the machine state when done")
	flag.Var(predefine, "D", "Predefine an equate, NAME=VALUE")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}
	for key, value := range predefine {
		asm.Predefine(key, value)
	}

	var err error
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		emu.Program, err = asm.Parse(strings.NewReader(strings.Join(demo, "\n")))
		if err != nil {
			log.Fatalf("demo: %v", err)
		}
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if interactive {
		rl, err := readline.NewEx(&readline.Config{
			InterruptPrompt: "^C",
			HistoryFile:     monitor.HistoryPath(),
		})
		if err != nil {
			log.Fatal(err)
		}
		defer rl.Close()

		mon := monitor.NewMonitor(emu, rl.Stdout())
		mon.Limit = limit
		mon.Serve(rl)
		return
	}

	_, err = emu.Run(limit)
	if len(compile) == 0 && demoFinished(err) {
		log.Printf("demo: %v", err)
		err = nil
		dump = true
	}
	if dump || err != nil {
		fmt.Print(emu.Cpu.String())
	}
	if err != nil {
		log.Fatal(err)
	}
}
