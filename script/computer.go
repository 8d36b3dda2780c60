package script

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.starlark.net/starlark"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/internal"
)

var ErrFrozen = errors.New(f("computer is frozen"))

// Computer is the Starlark view of an Intcode computer.
type Computer struct {
	Cpu    *intcode.Computer
	frozen bool
}

var (
	_ starlark.Value    = (*Computer)(nil)
	_ starlark.HasAttrs = (*Computer)(nil)
)

type computerMethod func(c *Computer, name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

var computerMethods = map[string]computerMethod{
	"last_output": computerLastOutput,
	"memory":      computerMemory,
	"outputs":     computerOutputs,
	"patch":       computerPatch,
	"push_input":  computerPushInput,
	"run":         computerRun,
	"step":        computerStep,
}

var computerAttrs = []string{"base", "halted", "inputs", "ip", "ticks"}

func (c *Computer) String() string {
	return fmt.Sprintf("<computer ip=%d base=%d halted=%v>", c.Cpu.Ip, c.Cpu.Base, c.Cpu.Halted())
}

func (c *Computer) Type() string { return "computer" }

func (c *Computer) Freeze() { c.frozen = true }

func (c *Computer) Truth() starlark.Bool { return starlark.Bool(!c.Cpu.Halted()) }

func (c *Computer) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", c.Type())
}

func (c *Computer) Attr(name string) (value starlark.Value, err error) {
	switch name {
	case "base":
		value = starlark.MakeInt64(c.Cpu.Base)
	case "halted":
		value = starlark.Bool(c.Cpu.Halted())
	case "inputs":
		value = starlark.MakeInt(c.Cpu.Inputs())
	case "ip":
		value = starlark.MakeInt64(c.Cpu.Ip)
	case "ticks":
		value = starlark.MakeInt(c.Cpu.Ticks)
	default:
		method, ok := computerMethods[name]
		if !ok {
			// nil, nil reports a missing attribute.
			return
		}
		value = starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			return method(c, b.Name(), args, kwargs)
		})
	}

	return
}

func (c *Computer) AttrNames() []string {
	names := internal.IterSeqConcat(slices.Values(computerAttrs), maps.Keys(computerMethods))
	return slices.Sorted(names)
}

func (c *Computer) checkMutable(name string) error {
	if c.frozen {
		return fmt.Errorf("%s: %w", name, ErrFrozen)
	}
	return nil
}

// step() runs until one value is written, returning it; or None on halt.
func computerStep(c *Computer, name string, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if err = starlark.UnpackPositionalArgs(name, args, kwargs, 0); err != nil {
		return
	}
	if err = c.checkMutable(name); err != nil {
		return
	}

	written := c.Cpu.Written()
	err = c.Cpu.Step()
	if err != nil {
		return
	}

	if c.Cpu.Written() == written {
		value = starlark.None
		return
	}

	last, ok := c.Cpu.LastOutput()
	value = optionalWord(last, ok)
	return
}

// run() runs until halt, returning every output so far.
func computerRun(c *Computer, name string, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if err = starlark.UnpackPositionalArgs(name, args, kwargs, 0); err != nil {
		return
	}
	if err = c.checkMutable(name); err != nil {
		return
	}

	outputs, err := c.Cpu.Run()
	if err != nil {
		return
	}

	value = fromWords(outputs)
	return
}

// push_input(*values) appends to the input queue.
func computerPushInput(c *Computer, name string, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if len(kwargs) != 0 {
		err = fmt.Errorf("%s: unexpected keyword arguments", name)
		return
	}
	if err = c.checkMutable(name); err != nil {
		return
	}

	words, err := toWords(args)
	if err != nil {
		err = fmt.Errorf("%s: %w", name, err)
		return
	}

	c.Cpu.PushInput(words...)
	value = starlark.None
	return
}

// patch(noun, verb) writes memory addresses 1 and 2.
func computerPatch(c *Computer, name string, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var nounValue, verbValue starlark.Value
	if err = starlark.UnpackPositionalArgs(name, args, kwargs, 2, &nounValue, &verbValue); err != nil {
		return
	}
	if err = c.checkMutable(name); err != nil {
		return
	}

	noun, err := toWord(nounValue)
	if err != nil {
		return
	}
	verb, err := toWord(verbValue)
	if err != nil {
		return
	}

	c.Cpu.Patch(noun, verb)
	value = starlark.None
	return
}

func computerMemory(c *Computer, name string, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if err = starlark.UnpackPositionalArgs(name, args, kwargs, 0); err != nil {
		return
	}
	value = fromWords(c.Cpu.Memory())
	return
}

func computerOutputs(c *Computer, name string, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if err = starlark.UnpackPositionalArgs(name, args, kwargs, 0); err != nil {
		return
	}
	value = fromWords(c.Cpu.Outputs())
	return
}

func computerLastOutput(c *Computer, name string, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if err = starlark.UnpackPositionalArgs(name, args, kwargs, 0); err != nil {
		return
	}
	value = optionalWord(c.Cpu.LastOutput())
	return
}
