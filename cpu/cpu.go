package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"STACK_TOP":      fmt.Sprintf("%d", STACK_TOP),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
}

// Cpu is the register machine: four registers, a flat memory shared
// with a downward growing stack, and the condition flags.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Program being executed.

	Pc       int                   // Program counter; index of the next instruction.
	Stack    Stack                 // Stack pointer into Memory.
	Register [REGISTER_COUNT]int64 // Register bank.
	Memory   Memory                // Data and stack memory.
	Flags    Flags                 // Condition flags.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU to run a program.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Program: prog,
	}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, memory and flags.
// - Sets the program counter to the first instruction.
// - Sets the stack pointer to the top of memory.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Memory.Reset()
	cpu.Stack.Reset()
	cpu.Flags = Flags{}
	cpu.Pc = 0
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for reg := range Register(REGISTER_COUNT) {
		text += fmt.Sprintf("% 5s: %d\n", reg, cpu.Register[reg])
	}
	text += fmt.Sprintf("% 5s: %d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %d\n", "sp", cpu.Stack.Pointer)
	text += fmt.Sprintf("% 5s: %v\n", "flags", cpu.Flags)

	return
}

// Resolve returns the value of an operand: the contents of a register,
// or a base 10 integer literal.
func (cpu *Cpu) Resolve(operand string) (value int64, err error) {
	if reg, ok := ParseRegister(operand); ok {
		value = cpu.Register[reg]
		return
	}

	value, err = strconv.ParseInt(operand, 10, 64)
	if err != nil {
		err = ErrOperandInvalid(operand)
		return
	}

	return
}

// Fetch returns the program text at the program counter.
func (cpu *Cpu) Fetch() (line string, err error) {
	size := cpu.Program.Len()
	switch {
	case cpu.Pc == size:
		err = ErrPcEnd
		return
	case cpu.Pc < 0 || cpu.Pc > size:
		err = ErrPcRange
		return
	}

	line, _ = cpu.Program.Line(cpu.Pc)
	return
}

// Tick executes the instruction at the program counter, then advances
// the program counter unless the instruction jumped.
func (cpu *Cpu) Tick() (err error) {
	line, err := cpu.Fetch()
	if err != nil {
		return
	}

	jumped, err := cpu.Execute(line)
	if err != nil {
		return
	}

	if !jumped {
		cpu.Pc++
	}

	return
}

// Execute executes a single line of program text.
// jumped is true when the instruction set the program counter itself.
// On error, the CPU state is unchanged.
func (cpu *Cpu) Execute(line string) (jumped bool, err error) {
	defer func() {
		if err != nil {
			err = &ErrExecute{Line: line, Err: err}
		}
	}()

	ins, err := Decode(line)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%02d: %v", cpu.Pc, ins)
	}

	switch ins.Op {
	case OP_ADD, OP_SUB:
		dst, _ := ParseRegister(ins.Dest())
		var val int64
		val, err = cpu.Resolve(ins.Src())
		if err != nil {
			err = errors.Join(ErrOperandSrc, err)
			return
		}
		if ins.Op == OP_ADD {
			cpu.Register[dst] += val
		} else {
			cpu.Register[dst] -= val
		}
		cpu.Flags.update(cpu.Register[dst])
	case OP_STORE:
		var addr, val int64
		addr, err = cpu.Resolve(ins.Dest())
		if err != nil {
			err = errors.Join(ErrOperandDest, err)
			return
		}
		val, err = cpu.Resolve(ins.Src())
		if err != nil {
			err = errors.Join(ErrOperandSrc, err)
			return
		}
		err = cpu.Memory.Write(addr, val)
		if err != nil {
			err = errors.Join(ErrOperandDest, err)
			return
		}
	case OP_LOAD:
		dst, _ := ParseRegister(ins.Dest())
		var addr, val int64
		addr, err = cpu.Resolve(ins.Src())
		if err != nil {
			err = errors.Join(ErrOperandSrc, err)
			return
		}
		val, err = cpu.Memory.Read(addr)
		if err != nil {
			err = errors.Join(ErrOperandSrc, err)
			return
		}
		cpu.Register[dst] = val
	case OP_PUSH:
		var val int64
		val, err = cpu.Resolve(ins.Dest())
		if err != nil {
			err = errors.Join(ErrOperandDest, err)
			return
		}
		if !cpu.Stack.Push(&cpu.Memory, val) {
			err = ErrStackFull
			return
		}
	case OP_POP:
		dst, _ := ParseRegister(ins.Dest())
		val, ok := cpu.Stack.Pop(&cpu.Memory)
		if !ok {
			err = ErrStackEmpty
			return
		}
		cpu.Register[dst] = val
	case OP_JMP:
		var target int64
		target, err = cpu.Resolve(ins.Dest())
		if err != nil {
			err = errors.Join(ErrOperandDest, err)
			return
		}
		cpu.Pc = int(target)
		jumped = true
	default:
		panic(fmt.Sprintf("unhandled opcode %v", ins.Op))
	}

	cpu.Ticks++

	return
}
