package image

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver"
)

var semverTagPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(.*)$`)

// GenerateAliases derives shorthand aliases from semver-shaped tag names.
// Every name matching an optionally v-prefixed MAJOR.MINOR.PATCH contributes
// to a `{major}{suffix}` and a `{major}.{minor}{suffix}` family; each family
// points at the highest version it contains. Names that are not semver-shaped
// contribute nothing. Suffix families stay separate, so `9.0.1` and
// `9.0.2-alpine` never compete for the same alias.
func GenerateAliases(tagNames []string) map[string]string {
	aliases := map[string]string{}
	highest := map[string]*semver.Version{}

	for _, tagName := range tagNames {
		groups := semverTagPattern.FindStringSubmatch(tagName)
		if groups == nil {
			continue
		}

		version, err := semver.NewVersion(fmt.Sprintf("%s.%s.%s", groups[1], groups[2], groups[3]))
		if err != nil {
			continue
		}

		suffix := groups[4]
		for _, alias := range []string{
			fmt.Sprintf("%s%s", groups[1], suffix),
			fmt.Sprintf("%s.%s%s", groups[1], groups[2], suffix),
		} {
			if current, ok := highest[alias]; ok && !version.GreaterThan(current) {
				continue
			}
			highest[alias] = version
			aliases[alias] = tagName
		}
	}

	return aliases
}
