package io

import (
	"iter"

	"github.com/ezrec/intcode/intcode"
)

// Buffer is an in-memory first-in, first-out channel.
type Buffer struct {
	Data []intcode.Word
}

var _ Channel = (*Buffer)(nil)

// Receive returns an iterator that consumes words from the buffer until empty.
func (buf *Buffer) Receive() iter.Seq[intcode.Word] {
	return func(yield func(value intcode.Word) bool) {
		for len(buf.Data) > 0 {
			value := buf.Data[0]
			buf.Data = buf.Data[1:]
			if !yield(value) {
				return
			}
		}
	}
}

// Send appends a word to the buffer.
func (buf *Buffer) Send(value intcode.Word) error {
	buf.Data = append(buf.Data, value)
	return nil
}
