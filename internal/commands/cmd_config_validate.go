package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "taskr config validate [options]",
				Description: "Validates the configuration values, the config file path and the data directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationIssue is one failed check in JSON output.
type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)
	issues := toIssues(err)

	out := c.Root().Writer
	if cmd.format == "json" {
		if encErr := cmd.outputJSON(out, c.Root().ErrWriter, issues); encErr != nil {
			return encErr
		}
	} else {
		cmd.outputText(out, issues)
	}

	if len(issues) > 0 {
		return fmt.Errorf("%d error(s) found", len(issues))
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputJSON(w, ew io.Writer, issues []validationIssue) error {
	out := struct {
		Valid  bool              `json:"valid"`
		Config string            `json:"config"`
		Errors []validationIssue `json:"errors,omitempty"`
	}{
		Valid:  len(issues) == 0,
		Config: cmd.flags.ConfigPath,
		Errors: issues,
	}

	return iojson.WriteWith(w, ew, out)
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, issues []validationIssue) {
	for _, issue := range issues {
		_, _ = fmt.Fprintf(w, "✗ %s: %s\n", issue.Field, issue.Message)
	}
	if len(issues) == 0 {
		_, _ = fmt.Fprintf(w, "✓ Configuration is valid (%s)\n", cmd.flags.ConfigPath)
	}
}

func toIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Field: "config", Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
