package intcode

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const (
	PATCH_RANGE = 100 // Nouns and verbs are searched in [0, PATCH_RANGE).
)

// RunPatched runs a fresh Computer with the noun and verb patched in.
func RunPatched(program []Word, noun, verb Word) (cpu *Computer, err error) {
	cpu = NewComputer(program)
	cpu.Patch(noun, verb)
	_, err = cpu.Run()
	return
}

// FindPatch searches for the noun and verb that leave target at address 0
// once the program halts. The first match in ascending (noun, verb) order
// is returned, and a failing trial is reported only if no earlier pair
// matched. Nouns are searched concurrently.
func FindPatch(ctx context.Context, program []Word, target Word) (noun, verb Word, err error) {
	type trial struct {
		verb  Word
		found bool
		err   error
	}

	trials := make([]trial, PATCH_RANGE)

	// Lowest noun with a result so far; larger nouns need not be searched.
	var lowest atomic.Int64
	lowest.Store(PATCH_RANGE)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for n := range Word(PATCH_RANGE) {
		g.Go(func() error {
			for v := range Word(PATCH_RANGE) {
				if n > lowest.Load() {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				cpu, err := RunPatched(program, n, v)
				if err != nil {
					trials[n] = trial{verb: v, err: err}
				} else if cpu.memory.Peek(0) == target {
					trials[n] = trial{verb: v, found: true}
				} else {
					continue
				}
				for {
					low := lowest.Load()
					if n >= low || lowest.CompareAndSwap(low, n) {
						break
					}
				}
				return nil
			}
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return
	}

	for n, t := range trials {
		if t.err != nil {
			err = t.err
			noun, verb = Word(n), t.verb
			return
		}
		if t.found {
			noun, verb = Word(n), t.verb
			return
		}
	}

	err = ErrPatchNotFound
	return
}
