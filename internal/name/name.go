package name

import (
	"fmt"

	gname "github.com/google/go-containerregistry/pkg/name"
	"github.com/pkg/errors"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
)

// QualifiedReference prefixes image with registry and validates that the
// result parses as an image reference. An empty registry leaves the name
// unqualified.
func QualifiedReference(registry, image string) (string, error) {
	refName := image
	if registry != "" {
		refName = fmt.Sprintf("%s/%s", registry, image)
	}

	if _, err := gname.ParseReference(refName, gname.WeakValidation); err != nil {
		return "", errors.Wrapf(err, "invalid image reference %s", style.Symbol(refName))
	}

	return refName, nil
}
