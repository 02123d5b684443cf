package image_test

import (
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/timo-reymann/poc-base-image-manager/pkg/image"
	h "github.com/timo-reymann/poc-base-image-manager/testhelpers"
)

func TestMerge(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Merge", testMerge, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testMerge(t *testing.T, when spec.G, it spec.S) {
	when("#Merge", func() {
		it("lets later layers override earlier ones", func() {
			base := map[string]string{"a": "1", "b": "2"}
			override := map[string]string{"b": "3", "c": "4"}

			h.AssertEq(t, image.Merge(base, override), map[string]string{
				"a": "1",
				"b": "3",
				"c": "4",
			})
		})

		it("merges three layers in order", func() {
			imageLayer := map[string]string{"uv": "0.8.22", "python": "3.13.0"}
			tagLayer := map[string]string{"python": "3.13.7", "pip": "23.1"}
			variantLayer := map[string]string{"chromium": "120.0"}

			h.AssertEq(t, image.Merge(imageLayer, tagLayer, variantLayer), map[string]string{
				"uv":       "0.8.22",
				"python":   "3.13.7",
				"pip":      "23.1",
				"chromium": "120.0",
			})
		})

		it("ignores empty layers", func() {
			h.AssertEq(t, image.Merge(nil, map[string]string{"a": "1"}, map[string]string{}), map[string]string{"a": "1"})
		})

		it("copies instead of aliasing the input", func() {
			original := map[string]string{"a": "1"}

			merged := image.Merge(original)
			merged["a"] = "changed"
			merged["b"] = "added"

			h.AssertEq(t, original, map[string]string{"a": "1"})
		})

		it("returns an empty map for no layers", func() {
			merged := image.Merge()
			h.AssertNotNil(t, merged)
			h.AssertEq(t, len(merged), 0)
		})
	})
}
