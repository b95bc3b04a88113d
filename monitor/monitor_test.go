package monitor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regm/cpu"
	"github.com/ezrec/regm/emulator"
)

func newMonitor(t *testing.T, lines ...string) (mon *Monitor, out *bytes.Buffer) {
	t.Helper()

	emu := emulator.NewEmulator()
	emu.Program = cpu.NewProgram(lines...)
	assert.NoError(t, emu.Reset())

	out = &bytes.Buffer{}
	mon = NewMonitor(emu, out)
	return
}

func TestMonitorStep(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t, "ADD R0 5", "ADD R0 R0", "PUSH R0")

	assert.Equal("00> ", mon.Prompt())

	quit, err := mon.Exec("")
	assert.NoError(err)
	assert.False(quit)
	assert.Equal("00: ADD R0 5\n", out.String())
	assert.Equal("01> ", mon.Prompt())

	out.Reset()
	_, err = mon.Exec("step 5")
	assert.NoError(err)
	assert.Equal("01: ADD R0 R0\n02: PUSH R0\nprogram done\n", out.String())
	assert.Equal(int64(10), mon.Emulator.Cpu.Register[cpu.REG_R0])
}

func TestMonitorRun(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t, "ADD R1 2", "SUB R1 1", "JMP 1")

	_, err := mon.Exec("run 10")
	assert.NoError(err)
	assert.Equal("stopped after 10 instructions\n", out.String())

	out.Reset()
	mon, out = newMonitor(t, "ADD R1 2", "SUB R1 1")
	_, err = mon.Exec("run")
	assert.NoError(err)
	assert.Equal("program done after 2 instructions\n", out.String())
	assert.False(mon.Emulator.Cpu.Flags.Zero)
}

func TestMonitorRunError(t *testing.T) {
	assert := assert.New(t)

	mon, _ := newMonitor(t, "ADD R0 1", "POP R1")

	_, err := mon.Exec("run")
	assert.ErrorIs(err, cpu.ErrStackEmpty)
	assert.Equal(1, mon.Emulator.Pc())
}

func TestMonitorRegs(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t, "SUB R3 4")

	_, err := mon.Exec("step")
	assert.NoError(err)

	out.Reset()
	_, err = mon.Exec("regs")
	assert.NoError(err)
	assert.Contains(out.String(), "   R3: -4\n")
	assert.Contains(out.String(), "   pc: 1\n")
	assert.Contains(out.String(), "NEGATIVE=true")
}

func TestMonitorMem(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t, "STORE 17 9", "PUSH 3")

	_, err := mon.Exec("step 2")
	assert.NoError(err)

	out.Reset()
	_, err = mon.Exec("mem 15 18")
	assert.NoError(err)
	assert.Equal("015: 0\n016: 0 9 0\n", out.String())

	out.Reset()
	_, err = mon.Exec("mem 127")
	assert.NoError(err)
	assert.Equal("127: 3\n", out.String())

	out.Reset()
	_, err = mon.Exec("mem")
	assert.NoError(err)
	assert.Equal(cpu.MEMORY_SIZE/MEMORY_COLUMNS, strings.Count(out.String(), "\n"))

	_, err = mon.Exec("mem 128")
	assert.Equal(ErrArgument("128"), err)
	_, err = mon.Exec("mem 10 5")
	assert.Equal(ErrArgument("5"), err)
	_, err = mon.Exec("mem 1 2 3")
	assert.Equal(ErrArgument("3"), err)
}

func TestMonitorList(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t, "ADD R0 1", "JMP 0")

	_, err := mon.Exec("step")
	assert.NoError(err)

	out.Reset()
	_, err = mon.Exec("list")
	assert.NoError(err)
	assert.Equal("   00: ADD R0 1\n=> 01: JMP 0\n", out.String())
}

func TestMonitorReset(t *testing.T) {
	assert := assert.New(t)

	mon, _ := newMonitor(t, "ADD R0 1")

	_, err := mon.Exec("step")
	assert.NoError(err)
	_, err = mon.Exec("reset")
	assert.NoError(err)
	assert.Equal(0, mon.Emulator.Pc())
	assert.Equal(int64(0), mon.Emulator.Cpu.Register[cpu.REG_R0])
}

func TestMonitorCommands(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor(t)

	_, err := mon.Exec("help")
	assert.NoError(err)
	assert.Equal(len(help), strings.Count(out.String(), "\n"))

	assert.Contains(out.String(), "help, ?")

	out.Reset()
	_, err = mon.Exec("?")
	assert.NoError(err)
	assert.Equal(len(help), strings.Count(out.String(), "\n"))

	_, err = mon.Exec("bogus")
	assert.Equal(ErrCommandUnknown("bogus"), err)

	_, err = mon.Exec("step -1")
	assert.Equal(ErrArgument("-1"), err)

	quit, err := mon.Exec("quit")
	assert.NoError(err)
	assert.True(quit)
}
