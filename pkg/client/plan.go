package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
	"github.com/timo-reymann/poc-base-image-manager/pkg/graph"
	"github.com/timo-reymann/poc-base-image-manager/pkg/image"
)

// PlanOptions is a configuration object used to change the behavior of
// the Plan function.
type PlanOptions struct {
	// ImagesDir is the directory tree searched for image descriptors.
	ImagesDir string
}

// BuildPlan is the resolved set of images in a valid build order.
type BuildPlan struct {
	// Images holds every resolved image, base images before the images
	// deriving from them.
	Images []*image.Image

	// Dependencies maps every image name to the base images it depends on.
	Dependencies map[string][]string
}

// Plan discovers, resolves and orders every image descriptor beneath
// opts.ImagesDir. Two descriptors resolving to the same image name fail the
// plan, names are the node identity of the dependency graph.
func (c *Client) Plan(ctx context.Context, opts PlanOptions) (*BuildPlan, error) {
	paths, err := c.finder.Find(opts.ImagesDir)
	if err != nil {
		return nil, err
	}
	c.logger.Debugf("found %d image descriptor(s) beneath %s", len(paths), style.Symbol(opts.ImagesDir))

	resolver := image.NewResolver(c.registry)
	images := make([]*image.Image, 0, len(paths))
	declaredAt := map[string]string{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg, err := image.ReadConfig(path)
		if err != nil {
			return nil, err
		}

		img, err := resolver.Resolve(cfg, path)
		if err != nil {
			return nil, err
		}

		if previous, ok := declaredAt[img.Name]; ok {
			return nil, &image.ValidationError{
				Path:   path,
				Field:  "name",
				Reason: fmt.Sprintf("image name already declared by %s", style.Symbol(previous)),
			}
		}
		declaredAt[img.Name] = path

		images = append(images, img)
	}

	dependencies, err := graph.Dependencies(images)
	if err != nil {
		return nil, err
	}

	sorted, err := graph.Sort(images, dependencies)
	if err != nil {
		return nil, err
	}

	plan := &BuildPlan{Images: sorted, Dependencies: dependencies}
	c.logBuildOrder(plan)

	return plan, nil
}

func (c *Client) logBuildOrder(plan *BuildPlan) {
	c.logger.Infof("build order for %d image(s):", len(plan.Images))
	for i, img := range plan.Images {
		deps := plan.Dependencies[img.Name]
		if len(deps) == 0 {
			c.logger.Infof("  %d. %s (no dependencies)", i+1, img.Name)
			continue
		}

		c.logger.Infof("  %d. %s (depends on: %s)", i+1, img.Name, strings.Join(deps, ", "))
	}
}
