package intcode

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ReadProgram parses a program from a reader.
func ReadProgram(r io.Reader) (Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "ReadProgram")
	}

	prog, err := ParseProgram(string(data))
	if err != nil {
		return nil, errors.Wrap(err, "ReadProgram")
	}

	return prog, nil
}

// LoadProgram parses a program from a file.
func LoadProgram(fileName string) (Program, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadProgram")
	}
	defer file.Close()

	prog, err := ReadProgram(file)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadProgram %v", fileName)
	}

	return prog, nil
}
