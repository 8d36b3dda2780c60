package intcode

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Program is an Intcode program image.
type Program []Word

// ParseProgram parses comma separated base-10 integers.
// Surrounding whitespace is ignored; whitespace inside the list is not.
func ParseProgram(text string) (prog Program, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrParseEmpty
		return
	}

	tokens := strings.Split(text, ",")
	prog = make(Program, 0, len(tokens))
	for n, token := range tokens {
		var value int64
		value, err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			prog = nil
			err = ErrParse{Index: n, Err: ErrParseNumber(token)}
			return
		}
		prog = append(prog, value)
	}

	return
}

// String returns the program in its comma separated text form.
func (prog Program) String() string {
	words := make([]string, len(prog))
	for n, word := range prog {
		words[n] = strconv.FormatInt(word, 10)
	}

	return strings.Join(words, ",")
}

// Listing is a single line of a program disassembly.
type Listing struct {
	Ip    int
	Words []Word
	Inst  Instruction
	Data  bool // Set if the word does not decode as an instruction.
}

// String returns the listing as assembly text.
func (lst Listing) String() string {
	if lst.Data {
		return fmt.Sprintf("%04d: .word %d", lst.Ip, lst.Words[0])
	}

	return fmt.Sprintf("%04d: %v", lst.Ip, lst.Inst.Format(lst.Words[1:]...))
}

// Instructions returns an iterator over a linear disassembly of the program.
// Words that do not decode, or whose parameters run past the end of the
// program, are listed as data.
func (prog Program) Instructions() iter.Seq2[int, Listing] {
	return func(yield func(ip int, lst Listing) bool) {
		for ip := 0; ip < len(prog); {
			lst := Listing{Ip: ip, Words: prog[ip : ip+1]}
			inst, err := Decode(prog[ip])
			if err == nil && ip+inst.Width() <= len(prog) {
				lst.Inst = inst
				lst.Words = prog[ip : ip+inst.Width()]
			} else {
				lst.Data = true
			}
			if !yield(ip, lst) {
				return
			}
			ip += len(lst.Words)
		}
	}
}

// Disassemble writes the program listing, one instruction per line.
func (prog Program) Disassemble(w io.Writer) (err error) {
	for _, lst := range prog.Instructions() {
		_, err = fmt.Fprintln(w, lst.String())
		if err != nil {
			return
		}
	}

	return
}
