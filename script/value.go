package script

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/ezrec/intcode/intcode"
)

type Word = intcode.Word

// toWord converts a Starlark integer to a word.
func toWord(v starlark.Value) (word Word, err error) {
	iv, ok := v.(starlark.Int)
	if !ok {
		err = errors.Join(ErrNotWord, fmt.Errorf("%s", v.Type()))
		return
	}

	word, ok = iv.Int64()
	if !ok {
		err = ErrWordRange(iv.String())
		return
	}

	return
}

// toWords converts a Starlark iterable of integers to words.
func toWords(v starlark.Value) (words []Word, err error) {
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		err = errors.Join(ErrNotWord, fmt.Errorf("%s", v.Type()))
		return
	}

	it := iterable.Iterate()
	defer it.Done()

	words = []Word{}
	var x starlark.Value
	for it.Next(&x) {
		var word Word
		word, err = toWord(x)
		if err != nil {
			return
		}
		words = append(words, word)
	}

	return
}

// toProgram converts either program text or a list of integers to a program.
func toProgram(v starlark.Value) (prog intcode.Program, err error) {
	if text, ok := starlark.AsString(v); ok {
		return intcode.ParseProgram(text)
	}

	words, err := toWords(v)
	if err != nil {
		err = errors.Join(ErrNotProgram, err)
		return
	}

	prog = intcode.Program(words)
	return
}

// fromWords converts words to a new Starlark list.
func fromWords(words []Word) *starlark.List {
	elems := make([]starlark.Value, len(words))
	for n, word := range words {
		elems[n] = starlark.MakeInt64(word)
	}
	return starlark.NewList(elems)
}

// optionalWord converts a word to a Starlark integer, or None if not ok.
func optionalWord(word Word, ok bool) starlark.Value {
	if !ok {
		return starlark.None
	}
	return starlark.MakeInt64(word)
}
