package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timo-reymann/poc-base-image-manager/pkg/client"
	"github.com/timo-reymann/poc-base-image-manager/pkg/logging"
)

//go:generate mockgen -package testmocks -destination testmocks/mock_image_manager_client.go github.com/timo-reymann/poc-base-image-manager/internal/commands ImageManagerClient

// ImageManagerClient is the api surface the commands call into.
type ImageManagerClient interface {
	Plan(ctx context.Context, opts client.PlanOptions) (*client.BuildPlan, error)
	Generate(ctx context.Context, opts client.GenerateOptions) error
}

func AddHelpFlag(cmd *cobra.Command, commandName string) {
	cmd.Flags().BoolP("help", "h", false, fmt.Sprintf("Help for '%s'", commandName))
}

// CreateCancellableContext returns a context that is cancelled when the
// process receives SIGINT or SIGTERM.
func CreateCancellableContext() context.Context {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-signals
		cancel()
	}()

	return ctx
}

func logError(logger logging.Logger, f func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		err := f(cmd, args)
		if err != nil {
			logger.Error(err.Error())
			return err
		}
		return nil
	}
}
