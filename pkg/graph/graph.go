// Package graph orders resolved images so that every base image is built
// before the images deriving from it.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
	"github.com/timo-reymann/poc-base-image-manager/pkg/image"
	"github.com/timo-reymann/poc-base-image-manager/pkg/render"
)

// CyclicDependencyError reports a dependency cycle between images. Cycle
// holds the offending path with the first image repeated at the end.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency detected: %s", strings.Join(e.Cycle, " -> "))
}

// Dependencies maps every image name to the sorted base-image names it
// depends on. An image depends on another when it extends it or when any of
// its Dockerfile templates resolves it by literal name, and the target is
// marked as a base image. References to names outside the set contribute no
// edge; they surface as unresolved references when the artifact renders.
func Dependencies(images []*image.Image) (map[string][]string, error) {
	baseImages := map[string]struct{}{}
	for _, img := range images {
		if img.IsBaseImage {
			baseImages[img.Name] = struct{}{}
		}
	}

	deps := make(map[string][]string, len(images))
	for _, img := range images {
		refs := map[string]struct{}{}
		if img.Extends != "" {
			refs[img.Extends] = struct{}{}
		}

		templates := []string{img.DockerfileTemplate}
		for _, variant := range img.Variants {
			templates = append(templates, variant.DockerfileTemplate)
		}
		for _, text := range templates {
			names, err := render.BaseImageRefs(text)
			if err != nil {
				return nil, errors.Wrapf(err, "scanning dependencies of image %s", style.Symbol(img.Name))
			}
			for _, name := range names {
				refs[name] = struct{}{}
			}
		}

		imageDeps := []string{}
		for name := range refs {
			if _, ok := baseImages[name]; ok {
				imageDeps = append(imageDeps, name)
			}
		}
		sort.Strings(imageDeps)
		deps[img.Name] = imageDeps
	}

	return deps, nil
}

// Sort returns the images in a valid build order, following the edges in
// deps as produced by Dependencies. Among images whose dependencies are
// already scheduled the earliest-declared one goes first, so a fixed input
// order always yields the same output order.
func Sort(images []*image.Image, deps map[string][]string) ([]*image.Image, error) {
	byName := make(map[string]*image.Image, len(images))
	for _, img := range images {
		byName[img.Name] = img
	}

	remaining := make(map[string]int, len(images))
	dependents := map[string][]string{}
	for name, imageDeps := range deps {
		remaining[name] = len(imageDeps)
		for _, dep := range imageDeps {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	sorted := make([]*image.Image, 0, len(images))
	scheduled := map[string]struct{}{}
	for len(sorted) < len(images) {
		next := ""
		for _, img := range images {
			if _, done := scheduled[img.Name]; done {
				continue
			}
			if remaining[img.Name] == 0 {
				next = img.Name
				break
			}
		}

		if next == "" {
			return nil, &CyclicDependencyError{Cycle: findCycle(images, deps, scheduled)}
		}

		scheduled[next] = struct{}{}
		sorted = append(sorted, byName[next])
		for _, dependent := range dependents[next] {
			remaining[dependent]--
		}
	}

	return sorted, nil
}

// findCycle walks the unscheduled remainder depth first and returns the
// first cycle it closes, starting and ending on the same image.
func findCycle(images []*image.Image, deps map[string][]string, scheduled map[string]struct{}) []string {
	const (
		unvisited = iota
		onPath
		done
	)

	state := map[string]int{}
	path := []string{}
	var cycle []string

	var visit func(name string) bool
	visit = func(name string) bool {
		state[name] = onPath
		path = append(path, name)

		for _, dep := range deps[name] {
			switch state[dep] {
			case onPath:
				start := 0
				for i, n := range path {
					if n == dep {
						start = i
						break
					}
				}
				cycle = append(append([]string{}, path[start:]...), dep)
				return true
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}

		state[name] = done
		path = path[:len(path)-1]
		return false
	}

	for _, img := range images {
		if _, ok := scheduled[img.Name]; ok {
			continue
		}
		if state[img.Name] == unvisited && visit(img.Name) {
			return cycle
		}
	}

	return nil
}
