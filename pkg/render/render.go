// Package render turns resolved images into Dockerfile and structure-test
// manifest texts. Rendering is pure: it never touches the filesystem and
// never mutates the models it reads.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
	"github.com/timo-reymann/poc-base-image-manager/pkg/image"
)

// UnresolvedReferenceError reports a name a template needed that no resolved
// image or version provides.
type UnresolvedReferenceError struct {
	Kind string
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("could not resolve %s %s", e.Kind, style.Symbol(e.Name))
}

// Context carries everything the template functions may look up while a
// single artifact renders. Variant is nil for an image's own tags.
type Context struct {
	Image   *image.Image
	Tag     image.Tag
	Variant *image.Variant
	All     []*image.Image
}

// templateData is what the templates see: .Image and .Tag for every artifact,
// .BaseImage for variant Dockerfiles and .FullImageName for test manifests.
type templateData struct {
	Image         *image.Image
	Tag           image.Tag
	BaseImage     string
	FullImageName string
}

// ResolveBaseImage returns the fully qualified reference of the single base
// image called name. Zero or multiple matches fail the artifact.
func (c *Context) ResolveBaseImage(name string) (string, error) {
	var found []*image.Image
	for _, img := range c.All {
		if img.Name == name && img.IsBaseImage {
			found = append(found, img)
		}
	}

	if len(found) != 1 {
		return "", &UnresolvedReferenceError{Kind: "base image", Name: name}
	}

	return found[0].FullyQualifiedName, nil
}

// ResolveVersion returns the version pinned under name for the tag being
// rendered. Tag versions are fully merged at resolve time, so the lookup
// never falls back to the image.
func (c *Context) ResolveVersion(name string) (string, error) {
	if version, ok := c.Tag.Versions[name]; ok {
		return version, nil
	}

	return "", &UnresolvedReferenceError{Kind: "version", Name: name}
}

// RenderDockerfile renders the Dockerfile for the context's tag. Variant tags
// render the variant's template and receive the image:base-tag reference as
// .BaseImage. When the image carries a rootfs/ tree and the effective copy
// flag allows it, the rootfs COPY step is injected after the first FROM.
func (c *Context) RenderDockerfile() (string, error) {
	text := c.Image.DockerfileTemplate
	data := templateData{Image: c.Image, Tag: c.Tag}

	if c.Variant != nil {
		text = c.Variant.DockerfileTemplate

		baseTagName, err := c.baseTagName()
		if err != nil {
			return "", err
		}
		data.BaseImage = fmt.Sprintf("%s:%s", c.Image.Name, baseTagName)
	}

	rendered, err := c.render("Dockerfile", text, c.dockerfileFuncs(), data)
	if err != nil {
		return "", err
	}

	if c.shouldCopyRootfs() {
		rendered = InjectRootfsCopy(rendered, c.effectiveRootfsUser())
	}

	return rendered, nil
}

// RenderTestManifest renders the structure-test manifest for the context's
// tag. Test templates resolve versions only; base-image lookups are a
// Dockerfile concern. The manifest is addressed by .FullImageName, the
// image:tag pair the external test tooling keys off.
func (c *Context) RenderTestManifest() (string, error) {
	data := templateData{
		Image:         c.Image,
		Tag:           c.Tag,
		FullImageName: fmt.Sprintf("%s:%s", c.Image.Name, c.Tag.Name),
	}

	return c.render("test manifest", c.Image.TestTemplate, c.testManifestFuncs(), data)
}

func (c *Context) render(kind, text string, funcs template.FuncMap, data templateData) (string, error) {
	tmpl, err := template.New(kind).Funcs(funcs).Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, "parsing %s template of %s", kind, style.SymbolF("%s:%s", c.Image.Name, c.Tag.Name))
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", errors.Wrapf(err, "rendering %s template of %s", kind, style.SymbolF("%s:%s", c.Image.Name, c.Tag.Name))
	}

	return rendered.String(), nil
}

func (c *Context) dockerfileFuncs() template.FuncMap {
	return template.FuncMap{
		"resolve_base_image": c.ResolveBaseImage,
		"resolve_version":    c.ResolveVersion,
	}
}

func (c *Context) testManifestFuncs() template.FuncMap {
	return template.FuncMap{
		"resolve_version": c.ResolveVersion,
	}
}

// baseTagName recovers the base tag a variant tag derives from. Stripping the
// variant's suffix wins when it names a declared tag; otherwise the longest
// declared tag name prefixing the variant tag does, so tags such as `3.13`
// and `3.13.7` never shadow each other.
func (c *Context) baseTagName() (string, error) {
	stripped := strings.TrimSuffix(c.Tag.Name, c.Variant.TagSuffix)

	match := ""
	for _, baseTag := range c.Image.Tags {
		if baseTag.Name == stripped {
			return baseTag.Name, nil
		}
		if strings.HasPrefix(c.Tag.Name, baseTag.Name) && len(baseTag.Name) > len(match) {
			match = baseTag.Name
		}
	}

	if match == "" {
		return "", &UnresolvedReferenceError{Kind: "base tag", Name: c.Tag.Name}
	}

	return match, nil
}

func (c *Context) shouldCopyRootfs() bool {
	if !c.Image.HasRootfs {
		return false
	}

	flag := c.Image.RootfsCopy
	switch {
	case c.Variant != nil && c.Variant.RootfsCopy != nil:
		flag = c.Variant.RootfsCopy
	case c.Tag.RootfsCopy != nil:
		flag = c.Tag.RootfsCopy
	}

	return flag != nil && *flag
}

func (c *Context) effectiveRootfsUser() string {
	switch {
	case c.Variant != nil && c.Variant.RootfsUser != "":
		return c.Variant.RootfsUser
	case c.Tag.RootfsUser != "":
		return c.Tag.RootfsUser
	case c.Image.RootfsUser != "":
		return c.Image.RootfsUser
	}

	return "0:0"
}
