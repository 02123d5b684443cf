package client

import (
	"os"
	"path/filepath"
	"testing"

	h "github.com/timo-reymann/poc-base-image-manager/testhelpers"
)

// writeImageFixture lays an image directory with the given files beneath
// imagesDir.
func writeImageFixture(t *testing.T, imagesDir, name string, files map[string]string) {
	t.Helper()

	dir := filepath.Join(imagesDir, name)
	h.AssertNil(t, os.MkdirAll(dir, 0755))
	for fileName, content := range files {
		h.AssertNil(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0644))
	}
}

// writeTreeFixture lays out a small descriptor tree: a base image and an
// application image extending it, with versions, aliases and a test template.
func writeTreeFixture(t *testing.T, imagesDir string) {
	t.Helper()

	writeImageFixture(t, imagesDir, "base", map[string]string{
		"image.yml":       "is_base_image: true\ntags:\n  - name: 1.0.0\n",
		"Dockerfile.tmpl": "FROM alpine:3.20\n",
	})
	writeImageFixture(t, imagesDir, "app", map[string]string{
		"image.yml": "extends: base\n" +
			"versions:\n  python: 3.13.7\n" +
			"tags:\n  - name: 2.0.0\n" +
			"aliases:\n  latest: 2.0.0\n",
		"Dockerfile.tmpl": "FROM {{ resolve_base_image \"base\" }}\nARG PY={{ resolve_version \"python\" }}\n",
		"test.yml.tmpl":   "schemaVersion: 2.0.0\nimage: {{ .FullImageName }}\n",
	})
}
