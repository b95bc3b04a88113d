// Package cpu implements the register machine and its assembler.
//
// The machine has four signed general-purpose registers (R0-R3), a program
// counter indexing the program's instruction lines, a 128 word memory whose
// upper end doubles as a downward growing stack, and sticky ZERO, NEGATIVE
// and CARRY condition flags. Instructions are text lines of the form
// 'OPCODE DEST [SRC]' over the opcodes ADD, SUB, STORE, LOAD, PUSH, POP and
// JMP.
//
// The assembler turns program source into a Program, supporting comments,
// labels, equates, macros, and compile-time expression evaluation.
package cpu
