package intcode

import (
	"errors"
	"slices"
)

const (
	MEMORY_LIMIT = 1 << 24 // Maximum memory size, in words.
)

// Memory is a flat, zero-filled word array that grows on access.
type Memory struct {
	Data []Word
}

// NewMemory creates a memory holding a copy of the image.
func NewMemory(image []Word) (mem *Memory) {
	mem = &Memory{}
	mem.Load(image)
	return
}

// Load replaces the memory contents with a copy of the image.
func (mem *Memory) Load(image []Word) {
	mem.Data = slices.Clone(image)
	if mem.Data == nil {
		mem.Data = []Word{}
	}
}

// grow validates addr, and extends the memory so that addr is
// a valid index into Data.
func (mem *Memory) grow(addr Word) (index int, err error) {
	if addr < 0 || addr >= MEMORY_LIMIT {
		err = errors.Join(ErrAddress, ErrAddressValue(addr))
		return
	}

	index = int(addr)
	if index >= len(mem.Data) {
		mem.Data = append(mem.Data, make([]Word, index+1-len(mem.Data))...)
	}

	return
}

// Get reads the word at addr.
func (mem *Memory) Get(addr Word) (value Word, err error) {
	index, err := mem.grow(addr)
	if err != nil {
		return
	}

	value = mem.Data[index]
	return
}

// Set writes the word at addr.
func (mem *Memory) Set(addr Word, value Word) (err error) {
	index, err := mem.grow(addr)
	if err != nil {
		return
	}

	mem.Data[index] = value
	return
}

// Peek reads the word at addr without growing the memory.
// Addresses outside of the memory read as zero.
func (mem *Memory) Peek(addr Word) (value Word) {
	if addr >= 0 && addr < Word(len(mem.Data)) {
		value = mem.Data[addr]
	}
	return
}

// Len returns the current memory size, in words.
func (mem *Memory) Len() int {
	return len(mem.Data)
}

// Snapshot returns a copy of the memory contents.
func (mem *Memory) Snapshot() []Word {
	return slices.Clone(mem.Data)
}
