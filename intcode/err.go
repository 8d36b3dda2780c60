package intcode

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Computer errors
	ErrHalted          = errors.New(f("computer halted"))
	ErrAddress         = errors.New(f("address invalid"))
	ErrDestinationMode = errors.New(f("immediate mode destination"))
	ErrInputUnderflow  = errors.New(f("input queue empty"))
	ErrOverflow        = errors.New(f("arithmetic overflow"))

	// Instruction decode errors
	ErrDecode         = errors.New(f("decode"))
	ErrOpcodeOp       = errors.New(f("op"))
	ErrOpcodeNegative = errors.New(f("negative instruction"))

	// Program text errors
	ErrParseEmpty = errors.New(f("program empty"))

	// Patch search errors
	ErrPatchNotFound = errors.New(f("patch not found"))
)

// ErrOpcode describes an instruction word that failed to decode.
type ErrOpcode struct {
	Word Word
}

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", eo.Word)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrOpcodeMode is an unknown mode digit, by parameter slot (1-based).
type ErrOpcodeMode int

func (em ErrOpcodeMode) Error() string {
	return f("mode %d", int(em))
}

func (em ErrOpcodeMode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcodeMode)
	return
}

// ErrParam is the parameter (1-based) an execution error occurred on.
type ErrParam int

func (ep ErrParam) Error() string {
	return f("param %d", int(ep))
}

// ErrAddressValue is the offending address of an ErrAddress.
type ErrAddressValue Word

func (ea ErrAddressValue) Error() string {
	return f("address %v", Word(ea))
}

// ErrRuntime indicates the location of an execution error.
type ErrRuntime struct {
	Ip  Word
	Op  Op
	Err error
}

func (err *ErrRuntime) Error() string {
	if err.Op.Valid() {
		return f("ip %v %v %v", err.Ip, err.Op.String(), err.Err)
	}
	return f("ip %v %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrParseNumber is a program token that is not a base-10 integer.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParse locates a program text error by token index.
type ErrParse struct {
	Index int
	Err   error
}

func (err ErrParse) Error() string {
	return f("token %d %v", err.Index, err.Err)
}

func (err ErrParse) Unwrap() error {
	return err.Err
}
