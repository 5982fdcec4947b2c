package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/commands"
	"github.com/hay-kot/taskr/internal/core/config"
	"github.com/hay-kot/taskr/internal/core/logging"
	"github.com/hay-kot/taskr/internal/core/styles"
	"github.com/hay-kot/taskr/internal/taskr"
	"github.com/hay-kot/taskr/pkg/logutils"
	"github.com/hay-kot/taskr/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

// closeTimeout bounds how long exit waits for the last save.
const closeTimeout = 5 * time.Second

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		taskrApp  = &taskr.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "taskr",
		Usage:     "A personal task list for the terminal",
		UsageText: "taskr [global options] command [command options]",
		Description: `taskr keeps one ordered list of short tasks and saves it after every change.

Run 'taskr' with no arguments to open the interactive list.
Run 'taskr add buy milk' to add a task from the shell.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKR_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file, or - for stderr (defaults to <data-dir>/taskr.log)",
				Sources:     cli.EnvVars("TASKR_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKR_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKR_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "backend",
				Usage:       "storage backend, overriding the config file (sqlite, json, memory)",
				Sources:     cli.EnvVars("TASKR_BACKEND"),
				Destination: &flags.Backend,
			},
			&cli.BoolFlag{
				Name:        "ephemeral",
				Usage:       "keep tasks in memory only; nothing is written to disk",
				Sources:     cli.EnvVars("TASKR_EPHEMERAL"),
				Destination: &flags.Ephemeral,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// config subcommands report problems themselves and never touch tasks
			if c.Args().First() == "config" {
				cfg, err := config.Read(flags.ConfigPath, flags.DataDir)
				if err != nil {
					return ctx, fmt.Errorf("load config: %w", err)
				}
				flags.Config = cfg
				return ctx, nil
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if backend := flags.StorageBackend(); backend != "" {
				if !backend.IsValid() {
					return ctx, fmt.Errorf("invalid --backend %q: must be one of sqlite, json, memory", backend)
				}
				cfg.Storage.Backend = backend
			}
			flags.Config = cfg

			// Log to <datadir>/taskr.log unless told otherwise; ephemeral runs
			// leave the disk alone.
			logFile := flags.LogFile
			if logFile == "" && !flags.Ephemeral {
				logFile = cfg.LogFile()
			}

			flags.LogOutput = utils.NewDeferredWriter(os.Stderr)
			logger, closer, err := logutils.New(flags.LogLevel, logFile, flags.LogOutput)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			opened, err := taskr.Open(ctx, cfg, logging.Component("taskr"))
			if err != nil {
				return ctx, fmt.Errorf("open task store: %w", err)
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*taskrApp = *opened

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			var closeErr error
			if taskrApp.Tasks != nil {
				closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
				defer cancel()

				closeErr = taskrApp.Close(closeCtx)
				if closeErr != nil {
					log.Error().Err(closeErr).Msg("failed to close")
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return closeErr
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, taskrApp)
	prompt := commands.HuhPrompter{}

	app = commands.NewAddCmd(flags, taskrApp).Register(app)
	app = commands.NewLsCmd(flags, taskrApp).Register(app)
	app = commands.NewToggleCmd(flags, taskrApp).Register(app)
	app = commands.NewEditCmd(flags, taskrApp, prompt).Register(app)
	app = commands.NewRmCmd(flags, taskrApp, prompt).Register(app)
	app = commands.NewImportCmd(flags, taskrApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'taskr --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
