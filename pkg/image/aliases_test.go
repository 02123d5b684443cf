package image_test

import (
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/timo-reymann/poc-base-image-manager/pkg/image"
	h "github.com/timo-reymann/poc-base-image-manager/testhelpers"
)

func TestGenerateAliases(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "GenerateAliases", testGenerateAliases, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testGenerateAliases(t *testing.T, when spec.G, it spec.S) {
	when("#GenerateAliases", func() {
		it("points each family at the highest patch", func() {
			aliases := image.GenerateAliases([]string{"9.0.100", "9.0.200"})

			h.AssertEq(t, aliases, map[string]string{
				"9":   "9.0.200",
				"9.0": "9.0.200",
			})
		})

		it("tracks minor families independently", func() {
			aliases := image.GenerateAliases([]string{"9.0.100", "9.0.200", "9.1.50"})

			h.AssertEq(t, aliases, map[string]string{
				"9":   "9.1.50",
				"9.0": "9.0.200",
				"9.1": "9.1.50",
			})
		})

		it("keeps major families apart", func() {
			aliases := image.GenerateAliases([]string{"9.0.100", "10.0.0"})

			h.AssertEq(t, aliases, map[string]string{
				"9":    "9.0.100",
				"9.0":  "9.0.100",
				"10":   "10.0.0",
				"10.0": "10.0.0",
			})
		})

		it("silently skips names that are not semver-shaped", func() {
			aliases := image.GenerateAliases([]string{"9.0.100", "latest", "stable", "1.2"})

			h.AssertEq(t, aliases, map[string]string{
				"9":   "9.0.100",
				"9.0": "9.0.100",
			})
		})

		it("returns an empty map when nothing is semver-shaped", func() {
			aliases := image.GenerateAliases([]string{"latest", "stable"})

			h.AssertNotNil(t, aliases)
			h.AssertEq(t, len(aliases), 0)
		})

		it("keeps suffix families separate", func() {
			aliases := image.GenerateAliases([]string{"9.0.100-semantic", "9.0.200-semantic", "9.0.300"})

			h.AssertEq(t, aliases, map[string]string{
				"9-semantic":   "9.0.200-semantic",
				"9.0-semantic": "9.0.200-semantic",
				"9":            "9.0.300",
				"9.0":          "9.0.300",
			})
		})

		it("joins v-prefixed names into the unprefixed family", func() {
			aliases := image.GenerateAliases([]string{"v9.0.300", "9.0.200"})

			h.AssertEq(t, aliases, map[string]string{
				"9":   "v9.0.300",
				"9.0": "v9.0.300",
			})
		})

		it("keeps the first name when versions tie", func() {
			aliases := image.GenerateAliases([]string{"9.0.100", "v9.0.100"})

			h.AssertEq(t, aliases, map[string]string{
				"9":   "9.0.100",
				"9.0": "9.0.100",
			})
		})
	})
}
