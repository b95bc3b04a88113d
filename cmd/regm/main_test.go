package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regm/cpu"
	"github.com/ezrec/regm/emulator"
)

func runDemo(t *testing.T, limit int) (err error) {
	t.Helper()

	emu := emulator.NewEmulator()
	asm := &cpu.Assembler{}
	emu.Program, err = asm.Parse(strings.NewReader(strings.Join(demo, "\n")))
	assert.NoError(t, err)
	assert.NoError(t, emu.Reset())

	_, err = emu.Run(limit)
	return
}

func TestDemoFinished(t *testing.T) {
	assert := assert.New(t)

	err := runDemo(t, emulator.TICK_LIMIT)
	assert.ErrorIs(err, cpu.ErrStackFull)
	assert.True(demoFinished(err))

	err = runDemo(t, 10)
	assert.ErrorIs(err, emulator.ErrTickLimit)
	assert.True(demoFinished(err))

	assert.False(demoFinished(nil))
	assert.False(demoFinished(cpu.ErrStackEmpty))
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	d := defines{}
	assert.NoError(d.Set("BASE=16"))
	assert.Equal("16", d["BASE"])
	assert.Equal("BASE=16", d.String())

	assert.Error(d.Set("BASE"))
	assert.Error(d.Set("=3"))
}
