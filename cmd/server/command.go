package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"occupancyDash/internal/config"
	"occupancyDash/internal/shared/backend"
)

// newCommand builds the CLI. Flag values default to cfg; command line flags
// win over the environment, which wins over cfg. Blank values keep cfg.
func newCommand(cfg *config.Config, run func(context.Context, *config.Config) error) *cli.Command {
	return &cli.Command{
		Name:  "occupancy-dash",
		Usage: "live cafeteria table occupancy dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Usage:   "HTTP listen port",
				Value:   cfg.ServerPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "backend-url",
				Usage:   "occupancy backend base URL",
				Value:   cfg.BackendURL,
				Sources: cli.EnvVars("NEXT_PUBLIC_BACKEND_URL", "BACKEND_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   cfg.LogLevel,
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "text, json or console",
				Value:   cfg.LogFormat,
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "layout-file",
				Usage:   "YAML seating layout override",
				Value:   cfg.LayoutFile,
				Sources: cli.EnvVars("LAYOUT_FILE"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg.ServerPort = stringOr(cmd, "port", cfg.ServerPort)
			cfg.BackendURL = backend.ResolveBaseURL(stringOr(cmd, "backend-url", cfg.BackendURL))
			cfg.LogLevel = stringOr(cmd, "log-level", cfg.LogLevel)
			cfg.LogFormat = stringOr(cmd, "log-format", cfg.LogFormat)
			cfg.LayoutFile = stringOr(cmd, "layout-file", cfg.LayoutFile)
			return run(ctx, cfg)
		},
	}
}

func stringOr(cmd *cli.Command, name, fallback string) string {
	if value := strings.TrimSpace(cmd.String(name)); value != "" {
		return value
	}
	return fallback
}
