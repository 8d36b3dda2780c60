package amplifier

import (
	"errors"
	"fmt"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrNoOutput = errors.New(f("stage produced no output"))
	ErrNoStages = errors.New(f("chain has no stages"))
)

// ErrStage indicates the chain stage an error occurred in.
type ErrStage struct {
	Stage int
	Err   error
}

func (err *ErrStage) Error() string {
	return f("stage %d %v", err.Stage, err.Err)
}

func (err *ErrStage) Unwrap() error {
	return err.Err
}

// ErrPhases indicates the phase settings of a failed chain.
type ErrPhases struct {
	Phases []int64
	Err    error
}

func (err *ErrPhases) Error() string {
	return f("phases %v %v", fmt.Sprint(err.Phases), err.Err)
}

func (err *ErrPhases) Unwrap() error {
	return err.Err
}
