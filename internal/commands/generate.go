package commands

import (
	"github.com/spf13/cobra"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
	"github.com/timo-reymann/poc-base-image-manager/pkg/client"
	"github.com/timo-reymann/poc-base-image-manager/pkg/logging"
)

// GenerateFlags define flags provided to the Generate command
type GenerateFlags struct {
	ImagesDir string
	OutputDir string
	Clean     bool
}

// Generate renders the Dockerfiles, structure-test manifests and alias
// records for every image descriptor beneath the images directory.
func Generate(logger logging.Logger, imageManager ImageManagerClient) *cobra.Command {
	var flags GenerateFlags
	cmd := &cobra.Command{
		Use:     "generate",
		Args:    cobra.NoArgs,
		Short:   "Generate build artifacts for all image descriptors",
		Example: "image-manager generate --images images --output dist",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			if err := imageManager.Generate(cmd.Context(), client.GenerateOptions{
				ImagesDir: flags.ImagesDir,
				OutputDir: flags.OutputDir,
				Clean:     flags.Clean,
			}); err != nil {
				return err
			}

			logger.Infof("Successfully generated artifacts into %s", style.Symbol(flags.OutputDir))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&flags.ImagesDir, "images", "d", "images", "Directory tree searched for image descriptors")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "dist", "Directory the artifacts are written to")
	cmd.Flags().BoolVar(&flags.Clean, "clean", true, "Remove the output directory before rendering")
	AddHelpFlag(cmd, "generate")
	return cmd
}
