package client

import (
	"context"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
	"github.com/timo-reymann/poc-base-image-manager/pkg/image"
	"github.com/timo-reymann/poc-base-image-manager/pkg/render"
)

// GenerateOptions is a configuration object used to change the behavior of
// the Generate function.
type GenerateOptions struct {
	// ImagesDir is the directory tree searched for image descriptors.
	ImagesDir string

	// OutputDir receives the rendered artifacts.
	OutputDir string

	// Clean removes OutputDir before rendering.
	Clean bool
}

// DockerfilePath returns the location Generate writes the Dockerfile of the
// given image tag to.
func DockerfilePath(outputDir, imageName, tagName string) string {
	return filepath.Join(outputDir, imageName, tagName, "Dockerfile")
}

// TestManifestPath returns the location Generate writes the structure-test
// manifest of the given image tag to.
func TestManifestPath(outputDir, imageName, tagName string) string {
	return filepath.Join(outputDir, imageName, tagName, "test.yml")
}

// AliasPath returns the location Generate records an alias of the given
// image at. The file holds the name of the tag the alias points to.
func AliasPath(outputDir, imageName, alias string) string {
	return filepath.Join(outputDir, imageName, alias)
}

// Generate plans the build and renders every artifact into opts.OutputDir.
// Images render concurrently, the resolved models are read-only by then and
// every image writes only its own subtree. Artifacts with unresolved
// references are logged and skipped, the remaining artifacts still render
// and the run fails afterwards with the number of skipped artifacts.
func (c *Client) Generate(ctx context.Context, opts GenerateOptions) error {
	c.logger.Info(style.Step("PLANNING"))
	plan, err := c.Plan(ctx, PlanOptions{ImagesDir: opts.ImagesDir})
	if err != nil {
		return err
	}

	if opts.Clean {
		c.logger.Debugf("cleaning output directory %s", style.Symbol(opts.OutputDir))
		if err := c.writer.Clean(opts.OutputDir); err != nil {
			return errors.Wrapf(err, "cleaning output directory %s", style.Symbol(opts.OutputDir))
		}
	}

	c.logger.Info(style.Step("RENDERING"))
	var unresolvedCount atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	for _, img := range plan.Images {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			count, err := c.generateImage(img, plan.Images, opts)
			unresolvedCount.Add(int64(count))
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if n := unresolvedCount.Load(); n > 0 {
		return errors.Errorf("%d artifact(s) skipped due to unresolved references", n)
	}

	c.logger.Infof("generated artifacts for %d image(s) into %s", len(plan.Images), style.Symbol(opts.OutputDir))
	return nil
}

// generateImage renders every artifact of a single image and returns how
// many were skipped over unresolved references.
func (c *Client) generateImage(img *image.Image, all []*image.Image, opts GenerateOptions) (int, error) {
	c.logger.Infof("generating artifacts for %s", style.Symbol(img.Name))

	unresolved := 0
	skip := func(kind, tagName string, err error) {
		c.logger.Errorf("skipping %s of %s: %s", kind, style.SymbolF("%s:%s", img.Name, tagName), err)
		unresolved++
	}

	renderTag := func(tag image.Tag, variant *image.Variant) error {
		renderCtx := &render.Context{Image: img, Tag: tag, Variant: variant, All: all}

		dockerfile, err := renderCtx.RenderDockerfile()
		if err != nil {
			var unresolvedErr *render.UnresolvedReferenceError
			if errors.As(err, &unresolvedErr) {
				skip("Dockerfile", tag.Name, unresolvedErr)
				return nil
			}
			return err
		}

		path := DockerfilePath(opts.OutputDir, img.Name, tag.Name)
		if err := c.writer.WriteArtifact(path, []byte(dockerfile)); err != nil {
			return errors.Wrapf(err, "writing Dockerfile of %s", style.SymbolF("%s:%s", img.Name, tag.Name))
		}
		c.logger.Debugf("wrote %s", style.Symbol(path))

		if img.TestTemplate == "" {
			return nil
		}

		manifest, err := renderCtx.RenderTestManifest()
		if err != nil {
			var unresolvedErr *render.UnresolvedReferenceError
			if errors.As(err, &unresolvedErr) {
				skip("test manifest", tag.Name, unresolvedErr)
				return nil
			}
			return err
		}

		path = TestManifestPath(opts.OutputDir, img.Name, tag.Name)
		if err := c.writer.WriteArtifact(path, []byte(manifest)); err != nil {
			return errors.Wrapf(err, "writing test manifest of %s", style.SymbolF("%s:%s", img.Name, tag.Name))
		}
		c.logger.Debugf("wrote %s", style.Symbol(path))

		return nil
	}

	for _, tag := range img.Tags {
		if err := renderTag(tag, nil); err != nil {
			return unresolved, err
		}
	}

	for i := range img.Variants {
		variant := &img.Variants[i]
		for _, tag := range variant.Tags {
			if err := renderTag(tag, variant); err != nil {
				return unresolved, err
			}
		}
	}

	if err := c.writeAliases(img, opts); err != nil {
		return unresolved, err
	}

	return unresolved, nil
}

// writeAliases records every alias of the image, variant aliases included,
// as a file named after the alias holding the target tag name.
func (c *Client) writeAliases(img *image.Image, opts GenerateOptions) error {
	aliases := image.Merge(img.Aliases)
	for _, variant := range img.Variants {
		aliases = image.Merge(aliases, variant.Aliases)
	}
	if len(aliases) == 0 {
		return nil
	}
	c.logger.Debugf("aliases of %s: %s", style.Symbol(img.Name), style.Map(aliases, "", " "))

	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	for _, alias := range names {
		path := AliasPath(opts.OutputDir, img.Name, alias)
		if err := c.writer.WriteArtifact(path, []byte(aliases[alias])); err != nil {
			return errors.Wrapf(err, "writing alias %s of %s", style.Symbol(alias), style.Symbol(img.Name))
		}
	}

	return nil
}
