package main

import (
	"os"

	"github.com/heroku/color"

	"github.com/timo-reymann/poc-base-image-manager/cmd"
	"github.com/timo-reymann/poc-base-image-manager/internal/commands"
	"github.com/timo-reymann/poc-base-image-manager/pkg/logging"
)

func main() {
	// create logger with defaults
	logger := logging.NewLogWithWriters(color.Stdout(), color.Stderr())

	rootCmd, err := cmd.NewImageManagerCommand(logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	ctx := commands.CreateCancellableContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
