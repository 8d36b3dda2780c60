// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script runs Starlark scripts that drive Intcode computers.
package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/amplifier"
	"github.com/ezrec/intcode/intcode"
)

const contextKey = "context"

// Builtins returns the Intcode builtin functions.
func Builtins() starlark.StringDict {
	return starlark.StringDict{
		"amplify":      starlark.NewBuiltin("amplify", builtinAmplify),
		"best_phases":  starlark.NewBuiltin("best_phases", builtinBestPhases),
		"computer":     starlark.NewBuiltin("computer", builtinComputer),
		"disassemble":  starlark.NewBuiltin("disassemble", builtinDisassemble),
		"find_patch":   starlark.NewBuiltin("find_patch", builtinFindPatch),
		"load_program": starlark.NewBuiltin("load_program", builtinLoadProgram),
		"parse":        starlark.NewBuiltin("parse", builtinParse),
		"run":          starlark.NewBuiltin("run", builtinRun),
	}
}

// Run executes the Starlark source, with print() directed to out.
// Entries of predeclared override the Intcode builtins.
func Run(filename string, src any, out io.Writer, predeclared starlark.StringDict) (globals starlark.StringDict, err error) {
	return RunContext(context.Background(), filename, src, out, predeclared)
}

// RunContext is Run, with the context used by the search builtins.
func RunContext(ctx context.Context, filename string, src any, out io.Writer, predeclared starlark.StringDict) (globals starlark.StringDict, err error) {
	pred := Builtins()
	for key, value := range predeclared {
		pred[key] = value
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			if out != nil {
				fmt.Fprintln(out, msg)
			}
		},
	}
	thread.SetLocal(contextKey, ctx)

	opts := syntax.FileOptions{}
	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, pred)
	return
}

// threadContext returns the context a script was started with.
func threadContext(thread *starlark.Thread) context.Context {
	ctx, ok := thread.Local(contextKey).(context.Context)
	if !ok {
		return context.Background()
	}
	return ctx
}

// computer(program, inputs=[])
func builtinComputer(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var progValue, inputsValue starlark.Value
	if err = starlark.UnpackArgs(b.Name(), args, kwargs, "program", &progValue, "inputs?", &inputsValue); err != nil {
		return
	}

	prog, err := toProgram(progValue)
	if err != nil {
		return
	}

	var inputs []Word
	if inputsValue != nil {
		inputs, err = toWords(inputsValue)
		if err != nil {
			return
		}
	}

	value = &Computer{Cpu: intcode.NewComputer(prog, inputs...)}
	return
}

// parse(text)
func builtinParse(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var text string
	if err = starlark.UnpackArgs(b.Name(), args, kwargs, "text", &text); err != nil {
		return
	}

	prog, err := intcode.ParseProgram(text)
	if err != nil {
		return
	}

	value = fromWords(prog)
	return
}

// load_program(path)
func builtinLoadProgram(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var path string
	if err = starlark.UnpackArgs(b.Name(), args, kwargs, "path", &path); err != nil {
		return
	}

	prog, err := intcode.LoadProgram(path)
	if err != nil {
		return
	}

	value = fromWords(prog)
	return
}

// disassemble(program)
func builtinDisassemble(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var progValue starlark.Value
	if err = starlark.UnpackArgs(b.Name(), args, kwargs, "program", &progValue); err != nil {
		return
	}

	prog, err := toProgram(progValue)
	if err != nil {
		return
	}

	var text strings.Builder
	err = prog.Disassemble(&text)
	if err != nil {
		return
	}

	value = starlark.String(text.String())
	return
}

// run(program, inputs=[])
func builtinRun(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var progValue, inputsValue starlark.Value
	if err = starlark.UnpackArgs(b.Name(), args, kwargs, "program", &progValue, "inputs?", &inputsValue); err != nil {
		return
	}

	prog, err := toProgram(progValue)
	if err != nil {
		return
	}

	var inputs []Word
	if inputsValue != nil {
		inputs, err = toWords(inputsValue)
		if err != nil {
			return
		}
	}

	cpu, err := intcode.RunProgram(prog, inputs...)
	if err != nil {
		return
	}

	value = fromWords(cpu.Outputs())
	return
}

// amplify(program, phases, feedback=False, input=0)
func builtinAmplify(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var progValue, phasesValue starlark.Value
	var feedback bool
	var inputValue starlark.Value = starlark.MakeInt(0)
	if err = starlark.UnpackArgs(b.Name(), args, kwargs,
		"program", &progValue, "phases", &phasesValue,
		"feedback?", &feedback, "input?", &inputValue); err != nil {
		return
	}

	prog, err := toProgram(progValue)
	if err != nil {
		return
	}
	phases, err := toWords(phasesValue)
	if err != nil {
		return
	}
	input, err := toWord(inputValue)
	if err != nil {
		return
	}

	chain := amplifier.NewChain(prog, phases)
	var signal Word
	if feedback {
		signal, err = chain.Feedback(input)
	} else {
		signal, err = chain.Serial(input)
	}
	if err != nil {
		return
	}

	value = starlark.MakeInt64(signal)
	return
}

// best_phases(program, phases, feedback=False) -> (signal, phases)
func builtinBestPhases(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var progValue, phasesValue starlark.Value
	var feedback bool
	if err = starlark.UnpackArgs(b.Name(), args, kwargs,
		"program", &progValue, "phases", &phasesValue, "feedback?", &feedback); err != nil {
		return
	}

	prog, err := toProgram(progValue)
	if err != nil {
		return
	}
	phases, err := toWords(phasesValue)
	if err != nil {
		return
	}

	best, err := amplifier.Best(threadContext(thread), prog, phases, feedback)
	if err != nil {
		return
	}

	value = starlark.Tuple{starlark.MakeInt64(best.Signal), fromWords(best.Phases)}
	return
}

// find_patch(program, target) -> (noun, verb)
func builtinFindPatch(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var progValue, targetValue starlark.Value
	if err = starlark.UnpackArgs(b.Name(), args, kwargs, "program", &progValue, "target", &targetValue); err != nil {
		return
	}

	prog, err := toProgram(progValue)
	if err != nil {
		return
	}
	target, err := toWord(targetValue)
	if err != nil {
		return
	}

	noun, verb, err := intcode.FindPatch(threadContext(thread), prog, target)
	if err != nil {
		return
	}

	value = starlark.Tuple{starlark.MakeInt64(noun), starlark.MakeInt64(verb)}
	return
}
