package commands

import (
	"github.com/spf13/cobra"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
	"github.com/timo-reymann/poc-base-image-manager/pkg/client"
	"github.com/timo-reymann/poc-base-image-manager/pkg/logging"
)

// PlanFlags define flags provided to the Plan command
type PlanFlags struct {
	ImagesDir string
}

// Plan resolves every image descriptor and prints the build order without
// writing any artifacts.
func Plan(logger logging.Logger, imageManager ImageManagerClient) *cobra.Command {
	var flags PlanFlags
	cmd := &cobra.Command{
		Use:     "plan",
		Args:    cobra.NoArgs,
		Short:   "Show the build order of all image descriptors",
		Example: "image-manager plan --images images",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			if _, err := imageManager.Plan(cmd.Context(), client.PlanOptions{
				ImagesDir: flags.ImagesDir,
			}); err != nil {
				return err
			}
			logging.Tip(logger, "Run %s to render the artifacts in this order", style.Symbol("image-manager generate"))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&flags.ImagesDir, "images", "d", "images", "Directory tree searched for image descriptors")
	AddHelpFlag(cmd, "plan")
	return cmd
}
