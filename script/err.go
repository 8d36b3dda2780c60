package script

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNotWord    = errors.New(f("not an integer word"))
	ErrNotProgram = errors.New(f("not a program"))
)

// ErrWordRange is a Starlark integer that does not fit in a word.
type ErrWordRange string

func (err ErrWordRange) Error() string {
	return f("%v out of word range", string(err))
}

func (err ErrWordRange) Unwrap() error {
	return ErrNotWord
}
