package client

import (
	"bytes"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/timo-reymann/poc-base-image-manager/internal/config"
	"github.com/timo-reymann/poc-base-image-manager/pkg/logging"
	h "github.com/timo-reymann/poc-base-image-manager/testhelpers"
)

func TestClient(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Client", testClient, spec.Parallel(), spec.Report(report.Terminal{}))
}

type fakeFinder struct{}

func (fakeFinder) Find(string) ([]string, error) { return nil, nil }

type fakeWriter struct{}

func (fakeWriter) WriteArtifact(string, []byte) error { return nil }

func (fakeWriter) Clean(string) error { return nil }

func testClient(t *testing.T, when spec.G, it spec.S) {
	when("#NewClient", func() {
		it("default works", func() {
			cl, err := NewClient()
			h.AssertNil(t, err)
			h.AssertNotNil(t, cl.logger)
			h.AssertNotNil(t, cl.finder)
			h.AssertNotNil(t, cl.writer)
			h.AssertEq(t, cl.registry, config.DefaultRegistry)
		})
	})

	when("#WithLogger", func() {
		it("uses logger provided", func() {
			var w bytes.Buffer
			logger := logging.NewLogWithWriters(&w, &w)
			cl, err := NewClient(WithLogger(logger))
			h.AssertNil(t, err)
			h.AssertSameInstance(t, cl.logger, logger)
		})
	})

	when("#WithRegistry", func() {
		it("uses registry provided", func() {
			cl, err := NewClient(WithRegistry("registry.example.com"))
			h.AssertNil(t, err)
			h.AssertEq(t, cl.registry, "registry.example.com")
		})
	})

	when("#WithDescriptorFinder", func() {
		it("uses finder provided", func() {
			finder := fakeFinder{}
			cl, err := NewClient(WithDescriptorFinder(finder))
			h.AssertNil(t, err)
			h.AssertSameInstance(t, cl.finder, finder)
		})
	})

	when("#WithArtifactWriter", func() {
		it("uses writer provided", func() {
			writer := fakeWriter{}
			cl, err := NewClient(WithArtifactWriter(writer))
			h.AssertNil(t, err)
			h.AssertSameInstance(t, cl.writer, writer)
		})
	})
}
