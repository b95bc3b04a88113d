// Package monitor is an interactive stepper for the register machine:
// single-step, run, and inspect the machine state from a prompt.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/shibukawa/configdir"

	"github.com/ezrec/regm/cpu"
	"github.com/ezrec/regm/emulator"
)

const (
	MEMORY_COLUMNS = 16 // Words per line of a memory dump.
)

var help = []string{
	"step [n]          execute n instructions (default 1); an empty line steps once",
	"run [n]           run until the program ends, or n instructions",
	"regs              show registers, pc, sp and flags",
	"mem [from [to]]   show memory words",
	"list              show the program, marking the next instruction",
	"reset             reset the machine",
	"help, ?           show this help",
	"quit              leave the monitor",
}

// Monitor drives an emulator from text commands.
type Monitor struct {
	Emulator *emulator.Emulator // Emulator being driven.
	Out      io.Writer          // Command output.
	Limit    int                // Tick limit for 'run' without an argument.
}

// NewMonitor creates a monitor for an emulator.
func NewMonitor(emu *emulator.Emulator, out io.Writer) *Monitor {
	return &Monitor{
		Emulator: emu,
		Out:      out,
		Limit:    emulator.TICK_LIMIT,
	}
}

// HistoryPath returns the readline history file in the user's cache
// folder, or the empty string if there is none.
func HistoryPath() string {
	dirs := configdir.New("regm", "monitor")
	cache := dirs.QueryCacheFolder()
	if err := cache.MkdirAll(); err != nil {
		return ""
	}

	return filepath.Join(cache.Path, "history")
}

// Prompt returns the prompt for the current machine state.
func (mon *Monitor) Prompt() string {
	return fmt.Sprintf("%02d> ", mon.Emulator.Pc())
}

// count parses an optional count argument.
func count(args []string, def int) (n int, err error) {
	if len(args) == 0 {
		n = def
		return
	}

	n, err = strconv.Atoi(args[0])
	if err != nil || n < 0 {
		err = ErrArgument(args[0])
		return
	}

	return
}

// Exec executes a single monitor command.
// quit is set when the monitor should exit.
func (mon *Monitor) Exec(line string) (quit bool, err error) {
	emu := mon.Emulator
	out := mon.Out

	words := strings.Fields(line)
	if len(words) == 0 {
		words = []string{"step"}
	}

	cmd, args := words[0], words[1:]

	switch cmd {
	case "step", "s":
		var n int
		n, err = count(args, 1)
		if err != nil {
			return
		}
		for range n {
			text, _ := emu.Program.Line(emu.Pc())
			pc := emu.Pc()
			var done bool
			done, err = emu.Tick()
			if err != nil {
				return
			}
			if done {
				fmt.Fprintln(out, f("program done"))
				return
			}
			fmt.Fprintf(out, "%02d: %v\n", pc, text)
		}
	case "run", "r":
		var n int
		n, err = count(args, mon.Limit)
		if err != nil {
			return
		}
		var done bool
		done, err = emu.Run(n)
		if errors.Is(err, emulator.ErrTickLimit) {
			fmt.Fprintln(out, f("stopped after %d instructions", emu.Ticks()))
			err = nil
			return
		}
		if err != nil {
			return
		}
		if done {
			fmt.Fprintln(out, f("program done after %d instructions", emu.Ticks()))
		}
	case "regs":
		fmt.Fprint(out, emu.Cpu.String())
	case "mem", "m":
		err = mon.dumpMemory(args)
	case "list", "l":
		for _, op := range emu.Program.Opcodes {
			mark := "  "
			if op.Ip == emu.Pc() {
				mark = "=>"
			}
			fmt.Fprintf(out, "%v %02d: %v\n", mark, op.Ip, op.Text)
		}
	case "reset":
		err = emu.Reset()
	case "help", "?":
		for _, text := range help {
			fmt.Fprintln(out, text)
		}
	case "quit", "exit", "q":
		quit = true
	default:
		err = ErrCommandUnknown(cmd)
	}

	return
}

// dumpMemory prints memory words, MEMORY_COLUMNS to a line.
func (mon *Monitor) dumpMemory(args []string) (err error) {
	mem := &mon.Emulator.Cpu.Memory

	from, to := 0, cpu.MEMORY_SIZE-1
	if len(args) > 2 {
		err = ErrArgument(args[2])
		return
	}
	if len(args) > 0 {
		from, err = strconv.Atoi(args[0])
		if err != nil || !mem.Valid(int64(from)) {
			err = ErrArgument(args[0])
			return
		}
		to = from
	}
	if len(args) > 1 {
		to, err = strconv.Atoi(args[1])
		if err != nil || !mem.Valid(int64(to)) || to < from {
			err = ErrArgument(args[1])
			return
		}
	}

	for addr := from; addr <= to; addr++ {
		if addr == from || addr%MEMORY_COLUMNS == 0 {
			if addr != from {
				fmt.Fprintln(mon.Out)
			}
			fmt.Fprintf(mon.Out, "%03d:", addr)
		}
		fmt.Fprintf(mon.Out, " %d", mem[addr])
	}
	fmt.Fprintln(mon.Out)

	return
}

// Serve reads commands from a readline instance until 'quit' or end of
// input. Command errors are reported, and do not stop the monitor.
func (mon *Monitor) Serve(rl *readline.Instance) {
	for {
		rl.SetPrompt(mon.Prompt())
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}

		quit, err := mon.Exec(ln.Line)
		if err != nil {
			fmt.Fprintf(mon.Out, "%v\n", err)
		}
		if quit {
			break
		}
	}
}
