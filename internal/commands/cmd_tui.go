package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/taskr"
	"github.com/hay-kot/taskr/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *taskr.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *taskr.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	// Logs written to stderr would tear the alt screen; hold them until exit.
	if out := cmd.flags.LogOutput; out != nil {
		out.Hold()
		defer func() {
			if err := out.Release(); err != nil {
				log.Error().Err(err).Msg("failed to flush held logs")
			}
		}()
	}

	m := tui.New(tui.Deps{
		Tasks:  cmd.app.Tasks,
		Bus:    cmd.app.Bus,
		Saver:  cmd.app.Saver,
		Config: cmd.app.Config,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return cmd.app.Flush(ctx)
}
