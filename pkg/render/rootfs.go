package render

import (
	"fmt"
	"regexp"
	"strings"
)

var rootfsCopyPattern = regexp.MustCompile(`(?m)^\s*COPY\s+(--chown=\S+\s+)?rootfs/`)

// InjectRootfsCopy inserts a COPY of the rootfs/ tree owned by owner directly
// after the first FROM instruction. Text that already copies rootfs/ comes
// back unchanged, keeping the injection idempotent; multi-stage builds only
// receive the copy in their first stage.
func InjectRootfsCopy(dockerfile, owner string) string {
	if rootfsCopyPattern.MatchString(dockerfile) {
		return dockerfile
	}

	lines := strings.Split(dockerfile, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "FROM ") {
			continue
		}

		copyLine := fmt.Sprintf("COPY --chown=%s rootfs/ /", owner)
		lines = append(lines[:i+1], append([]string{copyLine}, lines[i+1:]...)...)
		break
	}

	return strings.Join(lines, "\n")
}
