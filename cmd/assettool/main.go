// assettool inspects and maintains asset metadata, heightfield files and
// project directories.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/Faultbox/midgard-assets/internal/config"
	"github.com/Faultbox/midgard-assets/internal/logger"
)

func main() {
	cmd := &cli.Command{
		Name:  "assettool",
		Usage: "Asset metadata and terrain utility",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (yaml or toml)",
				Sources: cli.EnvVars("ASSETTOOL_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "Project asset directory",
				Sources: cli.EnvVars("ASSETTOOL_PROJECT"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write logs to this file",
			},
		},
		Commands: []*cli.Command{
			metaCommand(),
			terrainCommand(),
			projectCommand(),
			watchCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and initializes logging for a command.
func setup(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"), config.Overrides{
		ProjectDir: cmd.String("project"),
		Debug:      cmd.Bool("debug"),
		LogFile:    cmd.String("log-file"),
	})
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// dirArg returns the first argument, or the configured project directory.
func dirArg(cmd *cli.Command, cfg *config.Config) string {
	if cmd.Args().Present() {
		return cmd.Args().First()
	}
	return cfg.Project.Dir
}
