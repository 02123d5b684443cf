package name_test

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/timo-reymann/poc-base-image-manager/internal/name"
	h "github.com/timo-reymann/poc-base-image-manager/testhelpers"
)

func TestQualifiedReference(t *testing.T) {
	spec.Run(t, "QualifiedReference", testQualifiedReference, spec.Report(report.Terminal{}))
}

func testQualifiedReference(t *testing.T, when spec.G, it spec.S) {
	when("#QualifiedReference", func() {
		it("prefixes the image with the registry", func() {
			output, err := name.QualifiedReference("localhost:5050", "base")
			h.AssertNil(t, err)
			h.AssertEq(t, output, "localhost:5050/base")
		})

		it("keeps nested repositories intact", func() {
			output, err := name.QualifiedReference("registry.example.org", "team/base")
			h.AssertNil(t, err)
			h.AssertEq(t, output, "registry.example.org/team/base")
		})

		it("leaves the image unqualified without a registry", func() {
			output, err := name.QualifiedReference("", "base")
			h.AssertNil(t, err)
			h.AssertEq(t, output, "base")
		})

		it("errors when the result is not a valid reference", func() {
			_, err := name.QualifiedReference("localhost:5050", "Base Image")
			h.AssertErrorContains(t, err, "invalid image reference")
		})
	})
}
