package io

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/intcode"
)

// Tape provides sequential I/O of words as decimal text.
// Input words are separated by commas or whitespace; output words are
// written one per line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	err    error
}

var _ Channel = (*Tape)(nil)

// Err returns the first input error, other than end of input.
func (tc *Tape) Err() error {
	return tc.err
}

func isSeparator(c byte) bool {
	return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// next reads the next token from the input.
func (tc *Tape) next() (token string, ok bool) {
	if tc.Input == nil || tc.err != nil {
		return
	}

	if tc.reader == nil {
		tc.reader = bufio.NewReader(tc.Input)
	}

	var sb strings.Builder
	for {
		c, err := tc.reader.ReadByte()
		if err != nil {
			if err != io.EOF {
				tc.err = err
			}
			break
		}
		if isSeparator(c) {
			if sb.Len() == 0 {
				continue
			}
			break
		}
		sb.WriteByte(c)
	}

	token = sb.String()
	ok = len(token) > 0
	return
}

// Receive returns an iterator that yields words from the input stream.
// A token that is not a number ends the sequence, and is reported by Err.
func (tc *Tape) Receive() iter.Seq[intcode.Word] {
	return func(yield func(value intcode.Word) bool) {
		for {
			token, ok := tc.next()
			if !ok {
				return
			}
			value, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				tc.err = intcode.ErrParseNumber(token)
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}

// Send writes a word to the output stream, followed by a newline.
func (tc *Tape) Send(value intcode.Word) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = io.WriteString(tc.Output, strconv.FormatInt(value, 10)+"\n")
	return
}
