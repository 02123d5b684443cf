package render_test

import (
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/timo-reymann/poc-base-image-manager/pkg/render"
	h "github.com/timo-reymann/poc-base-image-manager/testhelpers"
)

func TestBaseImageRefs(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "BaseImageRefs", testBaseImageRefs, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testBaseImageRefs(t *testing.T, when spec.G, it spec.S) {
	it("collects call-form references", func() {
		refs, err := render.BaseImageRefs("FROM {{ resolve_base_image \"python\" }}\n")

		h.AssertNil(t, err)
		h.AssertEq(t, refs, []string{"python"})
	})

	it("collects pipeline-form references", func() {
		refs, err := render.BaseImageRefs("FROM {{ \"python\" | resolve_base_image }}\n")

		h.AssertNil(t, err)
		h.AssertEq(t, refs, []string{"python"})
	})

	it("deduplicates repeated references", func() {
		tmpl := "FROM {{ resolve_base_image \"python\" }} AS build\n" +
			"FROM {{ \"node\" | resolve_base_image }}\n" +
			"FROM {{ resolve_base_image \"python\" }}\n"

		refs, err := render.BaseImageRefs(tmpl)

		h.AssertNil(t, err)
		h.AssertEq(t, refs, []string{"python", "node"})
	})

	it("walks conditional branches", func() {
		tmpl := "{{ if .Image.IsBaseImage }}FROM {{ resolve_base_image \"debian\" }}{{ else }}FROM {{ resolve_base_image \"alpine\" }}{{ end }}\n"

		refs, err := render.BaseImageRefs(tmpl)

		h.AssertNil(t, err)
		h.AssertEq(t, refs, []string{"debian", "alpine"})
	})

	it("ignores dynamic arguments", func() {
		refs, err := render.BaseImageRefs("FROM {{ resolve_base_image .Tag.Name }}\n")

		h.AssertNil(t, err)
		h.AssertEq(t, len(refs), 0)
	})

	it("ignores version lookups", func() {
		refs, err := render.BaseImageRefs("ARG PY={{ resolve_version \"python\" }}\nFROM scratch\n")

		h.AssertNil(t, err)
		h.AssertEq(t, len(refs), 0)
	})

	it("reports templates that do not parse", func() {
		_, err := render.BaseImageRefs("FROM {{ resolve_base_image \"python\" }")

		h.AssertErrorContains(t, err, "parsing Dockerfile template")
	})

	it("handles templates without actions", func() {
		refs, err := render.BaseImageRefs("FROM scratch\nRUN true\n")

		h.AssertNil(t, err)
		h.AssertEq(t, len(refs), 0)
	})
}
