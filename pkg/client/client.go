/*
Package client provides all the functionality of the image manager as a library through a go api.

A Client discovers image descriptors beneath a directory tree, resolves them
into build-ready models, orders them by their base-image dependencies and
renders Dockerfiles, structure-test manifests and alias records into an
output directory that downstream build tooling consumes.
*/
package client

import (
	"os"

	"github.com/timo-reymann/poc-base-image-manager/internal/config"
	"github.com/timo-reymann/poc-base-image-manager/pkg/logging"
)

// DescriptorFinder is an interface representing the ability to locate image
// descriptors beneath a directory tree.
type DescriptorFinder interface {
	// Find returns the paths of every image descriptor beneath root in
	// lexical order, so discovery order is stable across runs.
	Find(root string) ([]string, error)
}

// ArtifactWriter is an interface representing the ability to persist
// rendered artifacts.
type ArtifactWriter interface {
	// WriteArtifact writes data to path, creating missing parent directories.
	WriteArtifact(path string, data []byte) error
	// Clean removes dir and everything beneath it.
	Clean(dir string) error
}

// Client is an orchestration object, it contains all parameters needed to
// plan and generate build artifacts for a tree of image descriptors.
// All settings on this object should be changed through Option functions.
type Client struct {
	logger   logging.Logger
	registry string
	finder   DescriptorFinder
	writer   ArtifactWriter
}

// Option is a type of function that mutate settings on the client.
// Values in these functions are set through currying.
type Option func(c *Client)

// WithLogger supply your own logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithRegistry supply the registry URL base-image references are qualified
// with.
func WithRegistry(registry string) Option {
	return func(c *Client) {
		c.registry = registry
	}
}

// WithDescriptorFinder supply your own DescriptorFinder.
func WithDescriptorFinder(f DescriptorFinder) Option {
	return func(c *Client) {
		c.finder = f
	}
}

// WithArtifactWriter supply your own ArtifactWriter.
func WithArtifactWriter(w ArtifactWriter) Option {
	return func(c *Client) {
		c.writer = w
	}
}

// NewClient allocates and returns a Client configured with the specified options.
func NewClient(opts ...Option) (*Client, error) {
	client := &Client{
		registry: config.DefaultRegistry,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger == nil {
		client.logger = logging.NewLogWithWriters(os.Stderr, os.Stderr)
	}

	if client.finder == nil {
		client.finder = &descriptorFinder{}
	}

	if client.writer == nil {
		client.writer = &artifactWriter{}
	}

	return client, nil
}
