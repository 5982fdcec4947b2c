package commands

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompter asks the user for input. Both methods return huh.ErrUserAborted
// when the prompt is dismissed.
type Prompter interface {
	Input(title, value string) (string, error)
	Confirm(title, description string) (bool, error)
	Interactive() bool
}

// HuhPrompter prompts on the controlling terminal with huh forms.
type HuhPrompter struct{}

func (HuhPrompter) Input(title, value string) (string, error) {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&value),
		),
	).Run()
	return value, err
}

func (HuhPrompter) Confirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&confirmed).
		Run()
	return confirmed, err
}

// Interactive reports whether stdin is a terminal.
func (HuhPrompter) Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
