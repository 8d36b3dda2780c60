package intcode

import (
	"errors"
	"fmt"
	"strings"
)

// Word is the value stored in a single memory cell.
type Word = int64

// Op is an Intcode operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD           = Op(1)  // add
	OP_MULTIPLY      = Op(2)  // mul
	OP_READ          = Op(3)  // in
	OP_WRITE         = Op(4)  // out
	OP_JUMP_IF_TRUE  = Op(5)  // jnz
	OP_JUMP_IF_FALSE = Op(6)  // jz
	OP_LESS_THAN     = Op(7)  // lt
	OP_EQUALS        = Op(8)  // eq
	OP_ADJUST_BASE   = Op(9)  // arb
	OP_HALT          = Op(99) // halt
)

// opWidth is the instruction width, in words, including the opcode word.
var opWidth = map[Op]int{
	OP_ADD:           4,
	OP_MULTIPLY:      4,
	OP_READ:          2,
	OP_WRITE:         2,
	OP_JUMP_IF_TRUE:  3,
	OP_JUMP_IF_FALSE: 3,
	OP_LESS_THAN:     4,
	OP_EQUALS:        4,
	OP_ADJUST_BASE:   2,
	OP_HALT:          1,
}

// Valid returns true if the operation is part of the instruction set.
func (op Op) Valid() bool {
	_, ok := opWidth[op]
	return ok
}

// Width returns the number of words occupied by the instruction,
// or 0 for an invalid operation.
func (op Op) Width() int {
	return opWidth[op]
}

// Params returns the number of parameters following the opcode word.
func (op Op) Params() int {
	width := op.Width()
	if width == 0 {
		return 0
	}
	return width - 1
}

// Mode is a parameter addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
	MODE_RELATIVE  = Mode(2) // rel
)

// Valid returns true if the mode is a known addressing mode.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

// Writable returns true if the mode can address a destination operand.
func (mode Mode) Writable() bool {
	return mode == MODE_POSITION || mode == MODE_RELATIVE
}

// MODE_SLOTS is the number of parameter modes encoded in an instruction word.
const MODE_SLOTS = 3

// Instruction is a decoded instruction word.
type Instruction struct {
	Word  Word             // Raw instruction word.
	Op    Op               // Operation, from the low two decimal digits.
	Modes [MODE_SLOTS]Mode // Parameter modes, least significant digit first.
}

// Decode splits an instruction word into its operation and parameter modes.
// Unknown operations and mode digits are reported as ErrDecode.
func Decode(word Word) (inst Instruction, err error) {
	inst.Word = word

	defer func() {
		if err != nil {
			err = errors.Join(ErrDecode, ErrOpcode{Word: word}, err)
		}
	}()

	if word < 0 {
		err = ErrOpcodeNegative
		return
	}

	inst.Op = Op(word % 100)
	if !inst.Op.Valid() {
		err = ErrOpcodeOp
		return
	}

	digits := word / 100
	for n := range inst.Modes {
		mode := Mode(digits % 10)
		if !mode.Valid() {
			err = ErrOpcodeMode(n + 1)
			return
		}
		inst.Modes[n] = mode
		digits /= 10
	}

	return
}

// Encode builds an instruction word from an operation and parameter modes.
// Modes not supplied are position mode.
func Encode(op Op, modes ...Mode) (word Word) {
	scale := Word(100)
	word = Word(op)
	for _, mode := range modes {
		word += Word(mode) * scale
		scale *= 10
	}

	return
}

// Width returns the number of words occupied by the instruction.
func (inst Instruction) Width() int {
	return inst.Op.Width()
}

// Format returns the assembly representation of the instruction, given
// its raw parameter words.
func (inst Instruction) Format(params ...Word) string {
	var args []string
	for n, param := range params {
		if n >= inst.Op.Params() {
			break
		}
		switch inst.Modes[n] {
		case MODE_POSITION:
			args = append(args, fmt.Sprintf("[%d]", param))
		case MODE_IMMEDIATE:
			args = append(args, fmt.Sprintf("%d", param))
		case MODE_RELATIVE:
			args = append(args, fmt.Sprintf("[rb%+d]", param))
		}
	}

	if len(args) == 0 {
		return inst.Op.String()
	}

	return fmt.Sprintf("%v %v", inst.Op.String(), strings.Join(args, ", "))
}

// String returns the operation and its modes.
func (inst Instruction) String() string {
	if inst.Op.Params() == 0 {
		return inst.Op.String()
	}

	modes := make([]string, inst.Op.Params())
	for n := range modes {
		modes[n] = inst.Modes[n].String()
	}

	return fmt.Sprintf("%v.%v", inst.Op.String(), strings.Join(modes, "."))
}
