package controller

import (
	"errors"
	"io"
	"os"
)

// ErrEndOfInput is returned by a running program when its input is closed.
var ErrEndOfInput = errors.New("end of input")

// watchEndOfInput turns io.EOF from r into ErrEndOfInput. bubbletea stops
// reading quietly on io.EOF but ends the program on any other read error.
// Files keep their descriptor so a terminal is still put in raw mode.
func watchEndOfInput(r io.Reader) io.Reader {
	if f, ok := r.(*os.File); ok {
		return &eofFile{File: f}
	}
	return &eofReader{r: r}
}

type eofReader struct {
	r io.Reader
}

func (e *eofReader) Read(p []byte) (int, error) {
	return endOfInput(e.r.Read(p))
}

type eofFile struct {
	*os.File
}

func (e *eofFile) Read(p []byte) (int, error) {
	return endOfInput(e.File.Read(p))
}

func endOfInput(n int, err error) (int, error) {
	if errors.Is(err, io.EOF) {
		return n, ErrEndOfInput
	}
	return n, err
}
