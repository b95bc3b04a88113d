package cpu

import (
	"strings"
)

// Opcode is a line of assembled program text with its source location.
type Opcode struct {
	LineNo int      // Source line number, 1 based.
	Ip     int      // Index of the instruction in the program.
	Words  []string // Source words, after equate and macro expansion.
	Text   string   // Executable instruction text.
}

// Program is an immutable sequence of instructions.
type Program struct {
	Opcodes []Opcode
}

// NewProgram creates a program directly from instruction lines.
func NewProgram(lines ...string) (prog *Program) {
	prog = &Program{}
	for n, line := range lines {
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: n + 1,
			Ip:     n,
			Words:  strings.Fields(line),
			Text:   line,
		})
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Opcodes)
}

// Line returns the instruction text at pc.
func (prog *Program) Line(pc int) (line string, ok bool) {
	if pc < 0 || pc >= prog.Len() {
		return
	}

	return prog.Opcodes[pc].Text, true
}

// Debug returns the opcode at pc, or nil if pc is outside the program.
func (prog *Program) Debug(pc int) *Opcode {
	if pc < 0 || pc >= prog.Len() {
		return nil
	}

	return &prog.Opcodes[pc]
}

// Lines returns the instruction text of the whole program.
func (prog *Program) Lines() (lines []string) {
	if prog == nil {
		return
	}

	for _, op := range prog.Opcodes {
		lines = append(lines, op.Text)
	}

	return
}
