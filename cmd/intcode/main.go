// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/amplifier"
	"github.com/ezrec/intcode/intcode"
	icio "github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/script"
	"github.com/ezrec/intcode/translate"
)

// parsePatch parses a "noun,verb" pair.
func parsePatch(text string) (noun, verb intcode.Word, err error) {
	nounText, verbText, ok := strings.Cut(text, ",")
	if !ok {
		err = fmt.Errorf("'%v' is not noun,verb", text)
		return
	}

	noun, err = strconv.ParseInt(strings.TrimSpace(nounText), 10, 64)
	if err != nil {
		return
	}

	verb, err = strconv.ParseInt(strings.TrimSpace(verbText), 10, 64)
	return
}

func main() {
	var program string
	var input string
	var output string
	var amplify string
	var search bool
	var target int64
	var patch string
	var listing bool
	var scriptFile string
	var lang string
	var verbose bool

	flag.StringVar(&program, "p", "", "Intcode program file")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.StringVar(&amplify, "a", "", "Find the best amplifier phases: serial or feedback")
	flag.BoolVar(&search, "s", false, "Search for the noun,verb patch that produces the target")
	flag.Int64Var(&target, "t", 19690720, "Patch search target")
	flag.StringVar(&patch, "n", "", "Patch noun,verb before running")
	flag.BoolVar(&listing, "l", false, "Disassemble the program, do not execute")
	flag.StringVar(&scriptFile, "x", "", "Starlark script to execute")
	flag.StringVar(&lang, "lang", "", "Message language")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	ouf := os.Stdout
	if output != "-" {
		var err error
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if len(scriptFile) != 0 {
		_, err := script.Run(scriptFile, nil, ouf, nil)
		if err != nil {
			log.Fatalf("%v: %v", scriptFile, err)
		}
		return
	}

	if len(program) == 0 {
		log.Fatalf("%v: No program given", os.Args[0])
	}

	prog, err := intcode.LoadProgram(program)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	switch {
	case listing:
		err = prog.Disassemble(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	case search:
		noun, verb, err := intcode.FindPatch(context.Background(), prog, target)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		fmt.Fprintf(ouf, "%d\n", intcode.PATCH_RANGE*noun+verb)
	case len(amplify) != 0:
		var phases []intcode.Word
		var feedback bool
		switch amplify {
		case "serial":
			phases = amplifier.SerialPhases
		case "feedback":
			phases = amplifier.FeedbackPhases
			feedback = true
		default:
			log.Fatalf("%v: Unknown amplifier mode: %v", os.Args[0], amplify)
		}
		best, err := amplifier.Best(context.Background(), prog, phases, feedback)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		if verbose {
			log.Printf("phases %v", best.Phases)
		}
		fmt.Fprintf(ouf, "%d\n", best.Signal)
	default:
		cpu := intcode.NewComputer(prog)
		cpu.Verbose = verbose

		if len(patch) != 0 {
			noun, verb, err := parsePatch(patch)
			if err != nil {
				log.Fatalf("%v: %v", patch, err)
			}
			cpu.Patch(noun, verb)
		}

		tape := &icio.Tape{Output: ouf}
		if input == "-" {
			tape.Input = os.Stdin
		} else {
			inf, err := os.Open(input)
			if err != nil {
				log.Fatalf("%v: %v", input, err)
			}
			defer inf.Close()
			tape.Input = inf
		}

		err = icio.Run(cpu, tape, tape)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}

		if len(patch) != 0 {
			fmt.Fprintf(ouf, "%d\n", cpu.Memory()[0])
		}
	}
}
