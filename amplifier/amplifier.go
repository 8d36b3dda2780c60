// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package amplifier chains Intcode computers into amplifier networks.
//
// Each stage of a Chain is a Computer seeded with its phase setting. In a
// serial chain every stage runs to completion on the previous stage's
// signal. In a feedback chain the last stage feeds the first, and the
// stages are stepped in turn, one output at a time, until the last halts.
package amplifier

import (
	"context"
	"log"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/internal"
)

type Word = intcode.Word

var (
	SerialPhases   = []Word{0, 1, 2, 3, 4} // Phase settings of a serial chain.
	FeedbackPhases = []Word{5, 6, 7, 8, 9} // Phase settings of a feedback chain.
)

// Chain is a sequence of amplifier stages.
type Chain struct {
	Verbose   bool                // If set, logs every signal passed between stages.
	Computers []*intcode.Computer // One Computer per stage.
}

// NewChain creates a chain with one stage per phase setting. Every stage
// runs its own copy of the program.
func NewChain(program []Word, phases []Word) (chain *Chain) {
	chain = &Chain{}
	for _, phase := range phases {
		chain.Computers = append(chain.Computers, intcode.NewComputer(program, phase))
	}

	return
}

// Halted returns true once the last stage has halted.
func (chain *Chain) Halted() bool {
	if len(chain.Computers) == 0 {
		return true
	}

	return chain.Computers[len(chain.Computers)-1].Halted()
}

// Serial runs each stage to completion in turn, feeding each the last
// output of the stage before it, and returns the last output of the last
// stage.
func (chain *Chain) Serial(input Word) (output Word, err error) {
	if len(chain.Computers) == 0 {
		err = ErrNoStages
		return
	}

	signal := input
	for n, cpu := range chain.Computers {
		cpu.PushInput(signal)
		_, err = cpu.Run()
		if err != nil {
			err = &ErrStage{Stage: n, Err: err}
			return
		}

		var ok bool
		signal, ok = cpu.LastOutput()
		if !ok {
			err = &ErrStage{Stage: n, Err: ErrNoOutput}
			return
		}

		if chain.Verbose {
			log.Printf("amplifier: stage %d: %d", n, signal)
		}
	}

	output = signal
	return
}

// Feedback runs the stages as a ring. Each stage in turn receives the
// latest signal, steps once, and passes its last output on, until the
// last stage halts. Halted stages pass their last output on unchanged.
func (chain *Chain) Feedback(input Word) (output Word, err error) {
	if len(chain.Computers) == 0 {
		err = ErrNoStages
		return
	}

	signal := input
	for round := 0; !chain.Halted(); round++ {
		for n, cpu := range chain.Computers {
			if !cpu.Halted() {
				cpu.PushInput(signal)
				err = cpu.Step()
				if err != nil {
					err = &ErrStage{Stage: n, Err: err}
					return
				}
			}

			var ok bool
			signal, ok = cpu.LastOutput()
			if !ok {
				err = &ErrStage{Stage: n, Err: ErrNoOutput}
				return
			}

			if chain.Verbose {
				log.Printf("amplifier: round %d stage %d: %d", round, n, signal)
			}
		}
	}

	output = signal
	return
}

// Result is the signal produced by a chain of phase settings.
type Result struct {
	Signal Word
	Phases []Word
}

// Best tries every ordering of the phase settings, and returns the one
// producing the highest signal from an input of 0. Orderings are tried
// concurrently; on a tie the first ordering, in permutation order, wins.
func Best(ctx context.Context, program []Word, phases []Word, feedback bool) (best Result, err error) {
	if len(phases) == 0 {
		err = ErrNoStages
		return
	}

	perms := slices.Collect(internal.Permutations(phases))
	results := make([]Result, len(perms))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for n, perm := range perms {
		g.Go(func() (err error) {
			err = ctx.Err()
			if err != nil {
				return
			}

			chain := NewChain(program, perm)

			var signal Word
			if feedback {
				signal, err = chain.Feedback(0)
			} else {
				signal, err = chain.Serial(0)
			}
			if err != nil {
				err = &ErrPhases{Phases: perm, Err: err}
				return
			}

			results[n] = Result{Signal: signal, Phases: perm}
			return
		})
	}

	err = g.Wait()
	if err != nil {
		return
	}

	best = results[0]
	for _, result := range results[1:] {
		if result.Signal > best.Signal {
			best = result
		}
	}

	return
}
