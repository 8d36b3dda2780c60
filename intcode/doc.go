// Package intcode implements the Intcode computer.
//
// A Computer executes a program of signed integer words as a
// fetch-decode-execute loop over a flat memory that grows on demand.
// Parameters are addressed in position, immediate or relative mode.
// Values are read from a FIFO input queue, and written to an output log.
//
// Execution is cooperative: Step runs until the next value is written or
// the program halts, so several Computers can be chained by a caller into
// a feedback network. Run steps until the program halts.
package intcode
