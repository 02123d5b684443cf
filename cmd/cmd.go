package cmd

import (
	"github.com/heroku/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/timo-reymann/poc-base-image-manager/internal/commands"
	"github.com/timo-reymann/poc-base-image-manager/internal/config"
	"github.com/timo-reymann/poc-base-image-manager/pkg/client"
	"github.com/timo-reymann/poc-base-image-manager/pkg/logging"
)

// Version is the version of the image-manager. It is injected at compile time.
var Version = "0.0.0"

// ConfigurableLogger defines behavior required by the ImageManagerCommand
type ConfigurableLogger interface {
	logging.Logger
	WantTime(f bool)
	WantQuiet(f bool)
	WantVerbose(f bool)
}

// NewImageManagerCommand generates an image-manager command
func NewImageManagerCommand(logger ConfigurableLogger) (*cobra.Command, error) {
	cobra.EnableCommandSorting = false
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	imageManager, err := initClient(logger, cfg)
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:   "image-manager",
		Short: "CLI for maintaining a tree of base images",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fs := cmd.Flags(); fs != nil {
				if flag, err := fs.GetBool("no-color"); err == nil {
					color.Disable(flag)
				}
				if flag, err := fs.GetBool("quiet"); err == nil {
					logger.WantQuiet(flag)
				}
				if flag, err := fs.GetBool("verbose"); err == nil {
					logger.WantVerbose(flag)
				}
				if flag, err := fs.GetBool("timestamps"); err == nil {
					logger.WantTime(flag)
				}
			}
		},
	}

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("timestamps", false, "Enable timestamps in output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Show less output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more output")
	rootCmd.Flags().Bool("version", false, "Show current 'image-manager' version")

	commands.AddHelpFlag(rootCmd, "image-manager")

	rootCmd.AddCommand(commands.Generate(logger, imageManager))
	rootCmd.AddCommand(commands.Plan(logger, imageManager))

	rootCmd.AddCommand(commands.Version(logger, Version))
	rootCmd.AddCommand(commands.Report(logger, Version))

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{.Version}}{{"\n"}}`)
	rootCmd.SetOut(logging.GetWriterForLevel(logger, logging.InfoLevel))
	rootCmd.SetErr(logging.GetWriterForLevel(logger, logging.ErrorLevel))

	return rootCmd, nil
}

func initConfig() (config.Config, error) {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return config.Config{}, errors.Wrap(err, "getting config path")
	}

	cfg, err := config.Read(path)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "reading image-manager config")
	}
	return cfg, nil
}

func initClient(logger logging.Logger, cfg config.Config) (*client.Client, error) {
	return client.NewClient(client.WithLogger(logger), client.WithRegistry(cfg.RegistryURL()))
}
