package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_NewProgram(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram("ADD R0 1", "JMP 0")

	assert.Equal(2, prog.Len())
	assert.Equal([]string{"ADD R0 1", "JMP 0"}, prog.Lines())

	line, ok := prog.Line(1)
	assert.True(ok)
	assert.Equal("JMP 0", line)

	dbg := prog.Debug(1)
	assert.NotNil(dbg)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Ip)
	assert.Equal([]string{"JMP", "0"}, dbg.Words)
}

func TestProgram_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram("ADD R0 1")

	_, ok := prog.Line(-1)
	assert.False(ok)
	_, ok = prog.Line(1)
	assert.False(ok)
	assert.Nil(prog.Debug(1))
}

func TestProgram_Nil(t *testing.T) {
	assert := assert.New(t)

	var prog *Program

	assert.Equal(0, prog.Len())
	assert.Nil(prog.Lines())
	_, ok := prog.Line(0)
	assert.False(ok)
}
