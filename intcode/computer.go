// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package intcode

import (
	"errors"
	"fmt"
	"log"
	"slices"
)

// Computer is the simulation context for a single Intcode program.
//
// A Computer owns its memory, input queue and output log. It is driven
// by the caller through Step and Run, and never blocks.
type Computer struct {
	Verbose bool // Set to enable verbose logging.

	Ip   Word // Current instruction pointer.
	Base Word // Relative base.

	Ticks int // Executed instruction counter.

	// Source, if set, supplies input when the input queue is empty.
	Source func() (value Word, ok bool)

	memory Memory
	input  Queue
	output []Word
	halted bool
	fault  error
}

// NewComputer creates a Computer loaded with a copy of the program,
// and the initial input queue.
func NewComputer(program []Word, inputs ...Word) (cpu *Computer) {
	cpu = &Computer{memory: *NewMemory(program)}
	cpu.input.Push(inputs...)

	return
}

// RunProgram creates a Computer and runs it until it halts.
func RunProgram(program []Word, inputs ...Word) (cpu *Computer, err error) {
	cpu = NewComputer(program, inputs...)
	_, err = cpu.Run()
	return
}

// Halted returns true once the program has executed a halt instruction.
func (cpu *Computer) Halted() bool {
	return cpu.halted
}

// Err returns the fatal error that stopped the Computer, if any.
func (cpu *Computer) Err() error {
	return cpu.fault
}

// PushInput appends values to the input queue.
func (cpu *Computer) PushInput(values ...Word) {
	cpu.input.Push(values...)
}

// Inputs returns the number of unread values in the input queue.
func (cpu *Computer) Inputs() int {
	return cpu.input.Len()
}

// Memory returns a snapshot of the memory.
func (cpu *Computer) Memory() []Word {
	return cpu.memory.Snapshot()
}

// Outputs returns a snapshot of every value written so far.
func (cpu *Computer) Outputs() []Word {
	return slices.Clone(cpu.output)
}

// Written returns the number of values written so far.
func (cpu *Computer) Written() int {
	return len(cpu.output)
}

// LastOutput returns the most recently written value.
func (cpu *Computer) LastOutput() (value Word, ok bool) {
	if len(cpu.output) == 0 {
		return
	}

	return cpu.output[len(cpu.output)-1], true
}

// Patch overwrites memory addresses 1 and 2 (the noun and verb).
func (cpu *Computer) Patch(noun, verb Word) {
	// Addresses 1 and 2 are always valid.
	_ = cpu.memory.Set(1, noun)
	_ = cpu.memory.Set(2, verb)
}

// GetPatch returns the noun and verb at memory addresses 1 and 2.
func (cpu *Computer) GetPatch() (noun, verb Word) {
	return cpu.memory.Peek(1), cpu.memory.Peek(2)
}

// String returns the current Computer state as a string.
func (cpu *Computer) String() (text string) {
	regs := []string{
		"ip", "base", "code",
		"input", "output", "last",
		"mem", "ticks", "state",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%d", cpu.Ip)
		case "base":
			strval = fmt.Sprintf("%d", cpu.Base)
		case "code":
			strval = cpu.listing()
		case "input":
			strval = fmt.Sprintf("%v", cpu.input.Data)
		case "output":
			strval = fmt.Sprintf("%d", len(cpu.output))
		case "last":
			val, ok := cpu.LastOutput()
			if ok {
				strval = fmt.Sprintf("%d", val)
			} else {
				strval = "-"
			}
		case "mem":
			strval = fmt.Sprintf("%d", cpu.memory.Len())
		case "ticks":
			strval = fmt.Sprintf("%d", cpu.Ticks)
		case "state":
			switch {
			case cpu.fault != nil:
				strval = "fault"
			case cpu.halted:
				strval = "halted"
			default:
				strval = "ready"
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

// listing disassembles the instruction at the instruction pointer,
// without growing memory.
func (cpu *Computer) listing() string {
	word := cpu.memory.Peek(cpu.Ip)
	inst, err := Decode(word)
	if err != nil {
		return fmt.Sprintf(".word %d", word)
	}

	params := make([]Word, inst.Op.Params())
	for n := range params {
		params[n] = cpu.memory.Peek(cpu.Ip + Word(n) + 1)
	}

	return inst.Format(params...)
}

// FetchCode fetches and decodes the instruction at the instruction pointer.
func (cpu *Computer) FetchCode() (inst Instruction, err error) {
	word, err := cpu.memory.Get(cpu.Ip)
	if err != nil {
		return
	}

	inst, err = Decode(word)
	return
}

// Step executes instructions until one value has been written,
// or the program halts.
func (cpu *Computer) Step() (err error) {
	if cpu.fault != nil {
		return cpu.fault
	}

	if cpu.halted {
		return ErrHalted
	}

	defer func() {
		if err != nil {
			cpu.fault = err
			if cpu.Verbose {
				log.Printf("intcode: %v", err)
			}
		}
	}()

	for !cpu.halted {
		ip := cpu.Ip

		var inst Instruction
		inst, err = cpu.FetchCode()
		if err != nil {
			err = &ErrRuntime{Ip: ip, Err: err}
			return
		}

		var wrote bool
		wrote, err = cpu.Execute(inst)
		if err != nil {
			err = &ErrRuntime{Ip: ip, Op: inst.Op, Err: err}
			return
		}

		if wrote {
			break
		}
	}

	return
}

// Run steps the Computer until it halts, and returns every value written.
func (cpu *Computer) Run() (outputs []Word, err error) {
	for !cpu.halted {
		err = cpu.Step()
		if err != nil {
			return
		}
	}

	outputs = cpu.Outputs()
	return
}

// Execute executes a single decoded instruction. wrote is set if the
// instruction appended a value to the output log.
func (cpu *Computer) Execute(inst Instruction) (wrote bool, err error) {
	if cpu.Verbose {
		log.Printf("%04d: %v", cpu.Ip, cpu.listing())
	}

	next_ip := cpu.Ip + Word(inst.Width())

	switch inst.Op {
	case OP_ADD, OP_MULTIPLY, OP_LESS_THAN, OP_EQUALS:
		var a, b, result Word
		a, err = cpu.getValue(0, inst.Modes[0])
		if err != nil {
			return
		}
		b, err = cpu.getValue(1, inst.Modes[1])
		if err != nil {
			return
		}
		switch inst.Op {
		case OP_ADD:
			result, err = addWord(a, b)
		case OP_MULTIPLY:
			result, err = mulWord(a, b)
		case OP_LESS_THAN:
			if a < b {
				result = 1
			}
		case OP_EQUALS:
			if a == b {
				result = 1
			}
		}
		if err != nil {
			return
		}
		err = cpu.setValue(2, inst.Modes[2], result)
	case OP_READ:
		value, ok := cpu.input.Pop()
		if !ok && cpu.Source != nil {
			value, ok = cpu.Source()
		}
		if !ok {
			err = ErrInputUnderflow
			return
		}
		err = cpu.setValue(0, inst.Modes[0], value)
	case OP_WRITE:
		var a Word
		a, err = cpu.getValue(0, inst.Modes[0])
		if err != nil {
			return
		}
		cpu.output = append(cpu.output, a)
		wrote = true
	case OP_JUMP_IF_TRUE, OP_JUMP_IF_FALSE:
		var a Word
		a, err = cpu.getValue(0, inst.Modes[0])
		if err != nil {
			return
		}
		if (a != 0) == (inst.Op == OP_JUMP_IF_TRUE) {
			next_ip, err = cpu.getValue(1, inst.Modes[1])
		}
	case OP_ADJUST_BASE:
		var a Word
		a, err = cpu.getValue(0, inst.Modes[0])
		if err != nil {
			return
		}
		cpu.Base, err = addWord(cpu.Base, a)
	case OP_HALT:
		cpu.halted = true
		next_ip = cpu.Ip
	default:
		err = ErrDecode
	}

	if err != nil {
		wrote = false
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks++

	return
}

// address returns the memory address named by parameter n.
func (cpu *Computer) address(n int, mode Mode) (addr Word, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrParam(n+1), err)
		}
	}()

	param := cpu.Ip + Word(n) + 1

	switch mode {
	case MODE_POSITION:
		addr, err = cpu.memory.Get(param)
	case MODE_IMMEDIATE:
		addr = param
	case MODE_RELATIVE:
		var offset Word
		offset, err = cpu.memory.Get(param)
		if err != nil {
			return
		}
		addr, err = addWord(cpu.Base, offset)
	default:
		err = errors.Join(ErrDecode, ErrOpcodeMode(n+1))
	}

	return
}

// getValue gets the value of parameter n, based on its mode.
func (cpu *Computer) getValue(n int, mode Mode) (value Word, err error) {
	addr, err := cpu.address(n, mode)
	if err != nil {
		return
	}

	value, err = cpu.memory.Get(addr)
	if err != nil {
		err = errors.Join(ErrParam(n+1), err)
	}
	return
}

// setValue stores value at the destination named by parameter n.
func (cpu *Computer) setValue(n int, mode Mode, value Word) (err error) {
	if !mode.Writable() {
		err = errors.Join(ErrParam(n+1), ErrDestinationMode)
		return
	}

	addr, err := cpu.address(n, mode)
	if err != nil {
		return
	}

	err = cpu.memory.Set(addr, value)
	if err != nil {
		err = errors.Join(ErrParam(n+1), err)
	}
	return
}
