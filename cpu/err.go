package cpu

import (
	"errors"

	"github.com/ezrec/regm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcEnd      = errors.New(f("pc at end of program"))
	ErrPcRange    = errors.New(f("pc out of range"))
	ErrStackEmpty = errors.New(f("stack empty"))
	ErrStackFull  = errors.New(f("stack full"))

	// Instruction decode errors
	ErrInstructionMalformed = errors.New(f("instruction must have an opcode and a destination"))
	ErrOperandMissing       = errors.New(f("operand missing"))
	ErrOperandExtra         = errors.New(f("excessive operands"))
	ErrOperandDest          = errors.New(f("dest"))
	ErrOperandSrc           = errors.New(f("src"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrMacroRecursion  = errors.New(f(".macro expands itself"))
)

// ErrOpcodeUnknown is the mnemonic of an opcode outside the instruction set.
type ErrOpcodeUnknown string

func (err ErrOpcodeUnknown) Error() string {
	return f("unknown opcode: %v", string(err))
}

func (err ErrOpcodeUnknown) Is(target error) (ok bool) {
	_, ok = target.(ErrOpcodeUnknown)
	return
}

// ErrRegisterInvalid is an operand that had to name a register, but did not.
type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("invalid register: %v", string(err))
}

func (err ErrRegisterInvalid) Is(target error) (ok bool) {
	_, ok = target.(ErrRegisterInvalid)
	return
}

// ErrOperandInvalid is an operand that is neither a register nor an integer.
type ErrOperandInvalid string

func (err ErrOperandInvalid) Error() string {
	return f("'%v' is not a value or register", string(err))
}

func (err ErrOperandInvalid) Is(target error) (ok bool) {
	_, ok = target.(ErrOperandInvalid)
	return
}

// ErrMemoryBounds is a memory address outside of the machine's memory.
type ErrMemoryBounds int64

func (err ErrMemoryBounds) Error() string {
	return f("memory address %d out of bounds", int64(err))
}

func (err ErrMemoryBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrMemoryBounds)
	return
}

// ErrExecute is a failure to execute a line of program text.
type ErrExecute struct {
	Line string
	Err  error
}

func (err *ErrExecute) Error() string {
	return f("'%v' %v", err.Line, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}

// ErrLabelMissing is a jump to a label that was never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
