package intcode

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputer_New(t *testing.T) {
	assert := assert.New(t)

	program := []Word{1, 0, 0, 0, 99}
	cpu := NewComputer(program, 4, 5)

	program[0] = 2
	assert.Equal([]Word{1, 0, 0, 0, 99}, cpu.Memory())
	assert.Equal(Word(0), cpu.Ip)
	assert.Equal(Word(0), cpu.Base)
	assert.False(cpu.Halted())
	assert.Equal(2, cpu.Inputs())
	assert.Empty(cpu.Outputs())

	_, ok := cpu.LastOutput()
	assert.False(ok)

	// Malformed programs are only detected on execution.
	cpu = NewComputer([]Word{42, -7})
	assert.False(cpu.Halted())
	assert.NoError(cpu.Err())
}

func TestComputer_Memory0(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []Word
		memory  []Word
	}){
		{[]Word{1, 0, 0, 0, 99}, []Word{2, 0, 0, 0, 99}},
		{[]Word{2, 3, 0, 3, 99}, []Word{2, 3, 0, 6, 99}},
		{[]Word{2, 4, 4, 5, 99, 0}, []Word{2, 4, 4, 5, 99, 9801}},
		{[]Word{1, 1, 1, 4, 99, 5, 6, 0, 99}, []Word{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{[]Word{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, []Word{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
	}

	for _, entry := range table {
		cpu, err := RunProgram(entry.program)
		assert.NoError(err, entry.program)
		assert.True(cpu.Halted(), entry.program)
		assert.Equal(entry.memory, cpu.Memory(), entry.program)
	}
}

func TestComputer_Quine(t *testing.T) {
	assert := assert.New(t)

	program := []Word{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	cpu, err := RunProgram(program)
	assert.NoError(err)
	assert.Equal(program, cpu.Outputs())
}

func TestComputer_Wide(t *testing.T) {
	assert := assert.New(t)

	cpu, err := RunProgram([]Word{1102, 34915192, 34915192, 7, 4, 7, 99, 0})
	assert.NoError(err)
	assert.Len(cpu.Outputs(), 1)
	last, ok := cpu.LastOutput()
	assert.True(ok)
	assert.Len(fmt.Sprintf("%d", last), 16)

	cpu, err = RunProgram([]Word{104, 1125899906842624, 99})
	assert.NoError(err)
	assert.Equal([]Word{1125899906842624}, cpu.Outputs())
}

func TestComputer_Compare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []Word
		input   Word
		output  Word
	}){
		{"eq8_pos", []Word{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 0},
		{"eq8_pos", []Word{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 1},
		{"lt8_pos", []Word{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 1},
		{"lt8_pos", []Word{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 9, 0},
		{"eq8_imm", []Word{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 7, 0},
		{"eq8_imm", []Word{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 8, 1},
		{"lt8_imm", []Word{3, 3, 1107, -1, 8, 3, 4, 3, 99}, 7, 1},
		{"lt8_imm", []Word{3, 3, 1107, -1, 8, 3, 4, 3, 99}, 9, 0},
		{"jump_pos", []Word{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 0, 0},
		{"jump_pos", []Word{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 1, 1},
		{"jump_imm", []Word{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, 0, 0},
		{"jump_imm", []Word{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, 1, 1},
	}

	for _, entry := range table {
		cpu, err := RunProgram(entry.program, entry.input)
		assert.NoError(err, entry.name)
		last, ok := cpu.LastOutput()
		assert.True(ok, entry.name)
		assert.Equal(entry.output, last, entry.name)
	}
}

func TestComputer_Around8(t *testing.T) {
	assert := assert.New(t)

	program := []Word{
		3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31, 1106, 0, 36, 98, 0,
		0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104, 999, 1105, 1, 46, 1101, 1000, 1, 20, 4,
		20, 1105, 1, 46, 98, 99,
	}

	for input, want := range map[Word]Word{7: 999, 8: 1000, 9: 1001} {
		cpu, err := RunProgram(program, input)
		assert.NoError(err)
		assert.Equal([]Word{want}, cpu.Outputs(), input)
	}
}

func TestComputer_Relative(t *testing.T) {
	assert := assert.New(t)

	// Set the base to 5, then write the word at base-3.
	cpu, err := RunProgram([]Word{109, 5, 204, -3, 99})
	assert.NoError(err)
	assert.Equal(Word(5), cpu.Base)
	assert.Equal([]Word{204}, cpu.Outputs())

	// Read into a relative destination.
	cpu, err = RunProgram([]Word{109, 10, 203, 2, 204, 2, 99}, 77)
	assert.NoError(err)
	assert.Equal([]Word{77}, cpu.Outputs())
	assert.Equal(Word(77), cpu.Memory()[12])
}

func TestComputer_Growth(t *testing.T) {
	assert := assert.New(t)

	// mem[1000] = 7 + 8; out mem[1000]
	cpu, err := RunProgram([]Word{1101, 7, 8, 1000, 4, 1000, 99})
	assert.NoError(err)
	assert.Equal([]Word{15}, cpu.Outputs())

	mem := cpu.Memory()
	assert.Len(mem, 1001)
	assert.Equal(Word(15), mem[1000])
	for addr := 7; addr < 1000; addr++ {
		if mem[addr] != 0 {
			t.Fatalf("address %d: %d, want 0", addr, mem[addr])
		}
	}

	// Reads past the end grow the memory too.
	cpu, err = RunProgram([]Word{4, 500, 99})
	assert.NoError(err)
	assert.Equal([]Word{0}, cpu.Outputs())
	assert.Len(cpu.Memory(), 501)
}

func TestComputer_SelfModify(t *testing.T) {
	assert := assert.New(t)

	// The first instruction rewrites the third into an output of 42.
	cpu, err := RunProgram([]Word{1101, 100, 4, 4, 3, 42, 99})
	assert.NoError(err)
	assert.Equal([]Word{42}, cpu.Outputs())
}

func TestComputer_Step(t *testing.T) {
	assert := assert.New(t)

	cpu := NewComputer([]Word{104, 1, 1101, 2, 3, 13, 4, 13, 104, 3, 99, 0, 0, 0})

	err := cpu.Step()
	assert.NoError(err)
	assert.Equal([]Word{1}, cpu.Outputs())
	assert.False(cpu.Halted())
	assert.Equal(Word(2), cpu.Ip)
	assert.Equal(1, cpu.Ticks)

	// Non-output instructions run inside a single step.
	err = cpu.Step()
	assert.NoError(err)
	assert.Equal([]Word{1, 5}, cpu.Outputs())
	assert.Equal(3, cpu.Ticks)

	err = cpu.Step()
	assert.NoError(err)
	assert.Equal([]Word{1, 5, 3}, cpu.Outputs())
	assert.False(cpu.Halted())

	err = cpu.Step()
	assert.NoError(err)
	assert.True(cpu.Halted())
	assert.Equal([]Word{1, 5, 3}, cpu.Outputs())

	err = cpu.Step()
	assert.ErrorIs(err, ErrHalted)

	outputs, err := cpu.Run()
	assert.NoError(err)
	assert.Equal([]Word{1, 5, 3}, outputs)
}

func TestComputer_PushInput(t *testing.T) {
	assert := assert.New(t)

	// Echo two inputs.
	program := []Word{3, 11, 4, 11, 3, 12, 4, 12, 99, 0, 0, 0, 0}
	cpu := NewComputer(program, 10)

	err := cpu.Step()
	assert.NoError(err)
	assert.Equal([]Word{10}, cpu.Outputs())

	cpu.PushInput(20)
	err = cpu.Step()
	assert.NoError(err)
	assert.Equal([]Word{10, 20}, cpu.Outputs())

	_, err = cpu.Run()
	assert.NoError(err)
	assert.True(cpu.Halted())
}

func TestComputer_Source(t *testing.T) {
	assert := assert.New(t)

	// Sum three inputs.
	program := []Word{3, 20, 3, 21, 1, 20, 21, 20, 3, 21, 1, 20, 21, 20, 4, 20, 99}
	cpu := NewComputer(program, 1)

	supply := []Word{2, 3}
	cpu.Source = func() (value Word, ok bool) {
		if len(supply) == 0 {
			return
		}
		value, supply = supply[0], supply[1:]
		ok = true
		return
	}

	outputs, err := cpu.Run()
	assert.NoError(err)
	assert.Equal([]Word{6}, outputs)
	assert.Empty(supply)

	// The queue is consulted before the source.
	supply = []Word{100}
	cpu = NewComputer([]Word{3, 5, 4, 5, 99, 0}, 7)
	cpu.Source = func() (value Word, ok bool) {
		value, ok = supply[0], true
		return
	}
	outputs, err = cpu.Run()
	assert.NoError(err)
	assert.Equal([]Word{7}, outputs)

	// An exhausted source is an underflow.
	cpu = NewComputer([]Word{3, 5, 3, 5, 99, 0}, 1)
	cpu.Source = func() (Word, bool) { return 0, false }
	_, err = cpu.Run()
	assert.ErrorIs(err, ErrInputUnderflow)
	assert.Equal(Word(2), cpu.Ip)
}

func TestComputer_Patch(t *testing.T) {
	assert := assert.New(t)

	program := []Word{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}

	var first Word
	for n := range 3 {
		cpu := NewComputer(program)
		cpu.Patch(12, 2)
		noun, verb := cpu.GetPatch()
		assert.Equal(Word(12), noun)
		assert.Equal(Word(2), verb)

		_, err := cpu.Run()
		assert.NoError(err)
		if n == 0 {
			first = cpu.Memory()[0]
		}
		assert.Equal(first, cpu.Memory()[0])
	}
	assert.Equal(Word(100), first)

	// Patching a short program grows it.
	cpu := NewComputer([]Word{99})
	cpu.Patch(3, 4)
	assert.Equal([]Word{99, 3, 4}, cpu.Memory())
}

func TestComputer_Error(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []Word
		inputs  []Word
		cause   error
		ip      Word
	}){
		{"opcode", []Word{42}, nil, ErrDecode, 0},
		{"opcode_late", []Word{1101, 1, 1, 5, 0, 0}, nil, ErrOpcodeOp, 4},
		{"mode", []Word{301, 0, 0, 0, 99}, nil, ErrOpcodeMode(1), 0},
		{"destination", []Word{11101, 1, 1, 0, 99}, nil, ErrDestinationMode, 0},
		{"destination_read", []Word{103, 0, 99}, []Word{1}, ErrDestinationMode, 0},
		{"underflow", []Word{3, 0, 99}, nil, ErrInputUnderflow, 0},
		{"underflow_second", []Word{3, 0, 3, 0, 99}, []Word{1}, ErrInputUnderflow, 2},
		{"address_read", []Word{1, -1, 0, 0, 99}, nil, ErrAddress, 0},
		{"address_write", []Word{1101, 0, 0, -5, 99}, nil, ErrAddress, 0},
		{"address_relative", []Word{109, -4, 204, 1, 99}, nil, ErrAddress, 2},
		{"address_jump", []Word{1105, 1, -2}, nil, ErrAddress, -2},
		{"overflow_add", []Word{1101, 9223372036854775807, 1, 0, 99}, nil, ErrOverflow, 0},
		{"overflow_mul", []Word{1102, 1 << 40, 1 << 40, 0, 99}, nil, ErrOverflow, 0},
		{"overflow_base", []Word{109, 9223372036854775807, 109, 1, 99}, nil, ErrOverflow, 2},
	}

	for _, entry := range table {
		cpu := NewComputer(entry.program, entry.inputs...)
		_, err := cpu.Run()
		assert.Error(err, entry.name)
		assert.True(errors.Is(err, entry.cause), "%v: %v", entry.name, err)
		assert.False(cpu.Halted(), entry.name)

		var rt *ErrRuntime
		if assert.True(errors.As(err, &rt), entry.name) {
			assert.Equal(entry.ip, rt.Ip, entry.name)
		}

		// The fault is sticky.
		assert.Equal(err, cpu.Step(), entry.name)
		assert.Equal(err, cpu.Err(), entry.name)
	}
}

func TestComputer_ErrorParam(t *testing.T) {
	assert := assert.New(t)

	_, err := RunProgram([]Word{1, 0, -1, 0, 99})
	assert.True(errors.Is(err, ErrAddress))
	assert.True(errors.Is(err, ErrParam(2)))

	_, err = RunProgram([]Word{1101, 0, 0, -1, 99})
	assert.True(errors.Is(err, ErrParam(3)))
}

func TestComputer_String(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	cpu := NewComputer([]Word{1101, 2, 3, 7, 104, 5, 99, 0}, 9)
	text := cpu.String()
	assert.Contains(text, "ip: 0\n")
	assert.Contains(text, "code: add 2, 3, [7]\n")
	assert.Contains(text, "input: [9]\n")
	assert.Contains(text, "state: ready\n")

	_, err := cpu.Run()
	require.NoError(err)

	text = cpu.String()
	assert.Contains(text, "code: halt\n")
	assert.Contains(text, "last: 5\n")
	assert.Contains(text, "state: halted\n")

	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.Len(lines, 9)
}

func TestComputer_Verbose(t *testing.T) {
	assert := assert.New(t)

	cpu := NewComputer([]Word{104, 1, 99})
	cpu.Verbose = true
	outputs, err := cpu.Run()
	assert.NoError(err)
	assert.Equal([]Word{1}, outputs)
}
