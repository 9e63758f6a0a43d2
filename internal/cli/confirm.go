package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrNotConfirmed is returned when a destructive command is declined or
// cannot be confirmed.
var ErrNotConfirmed = errors.New("not confirmed")

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(title string) (bool, error)
}

// PromptConfirmer asks through a huh form on the terminal. When stdin is not
// a terminal it refuses instead of blocking.
type PromptConfirmer struct {
	// Interactive reports whether a prompt can be shown. Defaults to a
	// stdin tty check.
	Interactive func() bool
}

// Confirm implements Confirmer.
func (p PromptConfirmer) Confirm(title string) (bool, error) {
	interactive := p.Interactive
	if interactive == nil {
		interactive = stdinIsTerminal
	}
	if !interactive() {
		return false, errors.New("stdin is not a terminal; pass --yes to confirm")
	}

	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithShowHelp(false).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// addYesFlag registers --yes on a destructive command.
func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Skip the confirmation prompt")
}

// confirm returns nil when the action may proceed.
func confirm(app *App, yes bool, title string) error {
	if yes {
		return nil
	}
	ok, err := app.Confirm.Confirm(title)
	if err != nil {
		return errors.Join(ErrNotConfirmed, err)
	}
	if !ok {
		return ErrNotConfirmed
	}
	return nil
}
