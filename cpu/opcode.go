package cpu

import (
	"errors"
	"strings"
)

// Op is an instruction opcode.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD   = Op(0) // ADD
	OP_SUB   = Op(1) // SUB
	OP_STORE = Op(2) // STORE
	OP_LOAD  = Op(3) // LOAD
	OP_PUSH  = Op(4) // PUSH
	OP_POP   = Op(5) // POP
	OP_JMP   = Op(6) // JMP

	opCount = 7
)

// opMap maps mnemonics to opcodes.
var opMap = func() map[string]Op {
	ops := make(map[string]Op, opCount)
	for op := range Op(opCount) {
		ops[op.String()] = op
	}
	return ops
}()

// ParseOp returns the opcode for an uppercase mnemonic.
func ParseOp(word string) (op Op, ok bool) {
	op, ok = opMap[word]
	return
}

// Arity returns the exact number of operands the opcode takes.
func (op Op) Arity() int {
	switch op {
	case OP_PUSH, OP_POP, OP_JMP:
		return 1
	default:
		return 2
	}
}

// WritesRegister is true if the first operand names the destination register.
func (op Op) WritesRegister() bool {
	switch op {
	case OP_ADD, OP_SUB, OP_LOAD, OP_POP:
		return true
	default:
		return false
	}
}

// Instruction is a decoded line of program text.
type Instruction struct {
	Op   Op
	Args []string
}

// Dest returns the first operand.
func (ins Instruction) Dest() string {
	return ins.Args[0]
}

// Src returns the second operand, or the empty string for single operand opcodes.
func (ins Instruction) Src() string {
	if len(ins.Args) < 2 {
		return ""
	}
	return ins.Args[1]
}

// String returns the canonical text of the instruction.
func (ins Instruction) String() string {
	return strings.Join(append([]string{ins.Op.String()}, ins.Args...), " ")
}

// Decode splits a line of program text into an instruction.
//
// The opcode is checked first, then the destination register of
// register-writing opcodes, then the operand count.
func Decode(line string) (ins Instruction, err error) {
	words := strings.Fields(line)
	if len(words) < 2 {
		err = ErrInstructionMalformed
		return
	}

	op, ok := ParseOp(words[0])
	if !ok {
		err = ErrOpcodeUnknown(words[0])
		return
	}

	args := words[1:]

	if op.WritesRegister() {
		if _, ok := ParseRegister(args[0]); !ok {
			err = errors.Join(ErrOperandDest, ErrRegisterInvalid(args[0]))
			return
		}
	}

	switch {
	case len(args) < op.Arity():
		err = errors.Join(ErrInstructionMalformed, ErrOperandMissing)
		return
	case len(args) > op.Arity():
		err = errors.Join(ErrInstructionMalformed, ErrOperandExtra)
		return
	}

	ins = Instruction{Op: op, Args: args}

	return
}
