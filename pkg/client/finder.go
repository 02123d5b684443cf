package client

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
	"github.com/timo-reymann/poc-base-image-manager/pkg/image"
)

// descriptorFinder walks the filesystem for image descriptors.
type descriptorFinder struct{}

func (descriptorFinder) Find(root string) ([]string, error) {
	paths := []string{}
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || entry.Name() != image.DescriptorFileName {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "discovering image descriptors beneath %s", style.Symbol(root))
	}

	sort.Strings(paths)
	return paths, nil
}

// artifactWriter persists artifacts to the filesystem.
type artifactWriter struct{}

func (artifactWriter) WriteArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (artifactWriter) Clean(dir string) error {
	return os.RemoveAll(dir)
}
