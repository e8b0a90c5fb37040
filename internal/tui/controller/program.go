package controller

import (
	"io"
	"os"

	"hwtree/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the dashboard program in the alternate screen, reading
// keys from input (os.Stdin when nil). The program fails with ErrEndOfInput
// once input is exhausted. Extra options are appended, tests use them to
// replace the output.
func NewProgram(opts model.Options, input io.Reader, programOpts ...tea.ProgramOption) *tea.Program {
	if input == nil {
		input = os.Stdin
	}
	m := model.InitialModel(opts)
	app := NewAppModel(m)

	all := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithInput(watchEndOfInput(input))}, programOpts...)
	return tea.NewProgram(app, all...)
}
