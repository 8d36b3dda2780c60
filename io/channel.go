// Package io provides I/O channels that feed and drain Intcode computers.
// It includes a text Tape over io.Reader and io.Writer streams, and an
// in-memory Buffer.
package io

import (
	"errors"
	"iter"

	"github.com/ezrec/intcode/intcode"
)

// Channel defines the interface for all I/O channels.
type Channel interface {
	// Receive returns an iterator that yields words from the channel.
	Receive() iter.Seq[intcode.Word]
	// Send writes a single word to the channel.
	Send(value intcode.Word) error
}

// errChannel is implemented by channels that can fail while receiving.
type errChannel interface {
	Err() error
}

// Run runs the computer until it halts. Reads that find the input queue
// empty pull the next word from in, and every written word is sent to out
// as soon as it is produced. Either channel may be nil.
func Run(cpu *intcode.Computer, in, out Channel) (err error) {
	if in != nil {
		next, stop := iter.Pull(in.Receive())
		defer stop()
		cpu.Source = next
		defer func() { cpu.Source = nil }()
	}

	for !cpu.Halted() {
		written := cpu.Written()
		err = cpu.Step()
		if err != nil {
			break
		}
		if out != nil && cpu.Written() > written {
			value, _ := cpu.LastOutput()
			err = out.Send(value)
			if err != nil {
				return
			}
		}
	}

	if ec, ok := in.(errChannel); ok && ec.Err() != nil {
		err = errors.Join(ec.Err(), err)
	}

	return
}
