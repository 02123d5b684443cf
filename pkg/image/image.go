// Package image defines the image descriptor schema and its resolution into
// the renderable image model.
package image

// Image is the fully resolved model behind one image descriptor. Resolution
// merges the layered configuration, derives variant tags and aliases, and
// loads the template texts; afterwards the model is only ever read.
type Image struct {
	// Name identifies the image and is unique across a build plan.
	Name string

	// SourcePath is the path of the descriptor this image was resolved from,
	// SourceDir its directory.
	SourcePath string
	SourceDir  string

	// FullyQualifiedName is the registry-qualified reference other images
	// resolve this image by when it is a base image.
	FullyQualifiedName string

	IsBaseImage bool
	Extends     string

	// HasRootfs reports whether the descriptor's directory carries a rootfs/
	// tree to be copied into the image.
	HasRootfs  bool
	RootfsUser string
	RootfsCopy *bool

	Variables map[string]string
	Versions  map[string]string

	// DockerfileTemplate and TestTemplate hold the template texts. An empty
	// TestTemplate means the image has no structure-test manifest.
	DockerfileTemplate string
	TestTemplate       string

	Tags     []Tag
	Aliases  map[string]string
	Variants []Variant
}

// Tag is a concrete tag of an image. Its variables and versions are fully
// merged; renderers never consult the image-level maps again.
type Tag struct {
	Name       string
	Variables  map[string]string
	Versions   map[string]string
	RootfsUser string
	RootfsCopy *bool
}

// Variant is a flavor of an image whose tags derive from the image's own tags
// by suffixing their names.
type Variant struct {
	Name               string
	TagSuffix          string
	DockerfileTemplate string
	RootfsUser         string
	RootfsCopy         *bool
	Tags               []Tag
	Aliases            map[string]string
}
