package image

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
)

// DescriptorFileName is the file name images are declared in.
const DescriptorFileName = "image.yml"

// Config is the schema of an image descriptor.
type Config struct {
	Name         string            `yaml:"name"`
	IsBaseImage  bool              `yaml:"is_base_image"`
	Template     string            `yaml:"template"`
	TestTemplate string            `yaml:"test_template"`
	Extends      string            `yaml:"extends"`
	RootfsUser   string            `yaml:"rootfs_user"`
	RootfsCopy   *bool             `yaml:"rootfs_copy"`
	Variables    map[string]string `yaml:"variables"`
	Versions     map[string]string `yaml:"versions"`
	Aliases      map[string]string `yaml:"aliases"`
	Tags         []TagConfig       `yaml:"tags"`
	Variants     []VariantConfig   `yaml:"variants"`
}

// TagConfig declares a single tag of an image.
type TagConfig struct {
	Name       string            `yaml:"name"`
	Variables  map[string]string `yaml:"variables"`
	Versions   map[string]string `yaml:"versions"`
	RootfsUser string            `yaml:"rootfs_user"`
	RootfsCopy *bool             `yaml:"rootfs_copy"`
}

// VariantConfig declares a variant whose tags derive from the image's tags.
type VariantConfig struct {
	Name       string            `yaml:"name"`
	TagSuffix  string            `yaml:"tag_suffix"`
	Template   string            `yaml:"template"`
	Variables  map[string]string `yaml:"variables"`
	Versions   map[string]string `yaml:"versions"`
	Aliases    map[string]string `yaml:"aliases"`
	RootfsUser string            `yaml:"rootfs_user"`
	RootfsCopy *bool             `yaml:"rootfs_copy"`
}

// ValidationError reports an invalid or incomplete image descriptor. It names
// the descriptor file and, when known, the offending field.
type ValidationError struct {
	Path   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid image descriptor %s: %s", style.Symbol(e.Path), e.Reason)
	}
	return fmt.Sprintf("invalid image descriptor %s: field %s: %s", style.Symbol(e.Path), style.Symbol(e.Field), e.Reason)
}

// ReadConfig reads and validates the image descriptor at path. Unknown keys
// are rejected so that misspelled configuration fails loudly instead of
// silently changing meaning.
func ReadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "opening image descriptor %s", style.Symbol(path))
	}
	defer file.Close()

	config := Config{}
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return Config{}, &ValidationError{Path: path, Reason: err.Error()}
	}

	if err := validateConfig(config, path); err != nil {
		return Config{}, err
	}

	return config, nil
}

func validateConfig(config Config, path string) error {
	if len(config.Tags) == 0 {
		return &ValidationError{Path: path, Field: "tags", Reason: "must not be empty"}
	}

	tagNames := map[string]struct{}{}
	for i, tag := range config.Tags {
		if tag.Name == "" {
			return &ValidationError{Path: path, Field: fmt.Sprintf("tags[%d].name", i), Reason: "must not be empty"}
		}
		if _, exists := tagNames[tag.Name]; exists {
			return &ValidationError{Path: path, Field: "tags", Reason: fmt.Sprintf("duplicate tag name %s", style.Symbol(tag.Name))}
		}
		tagNames[tag.Name] = struct{}{}
	}

	if err := validateAliases(config.Aliases, tagNames, path, "aliases"); err != nil {
		return err
	}

	variantNames := map[string]struct{}{}
	for i, variant := range config.Variants {
		if variant.Name == "" {
			return &ValidationError{Path: path, Field: fmt.Sprintf("variants[%d].name", i), Reason: "must not be empty"}
		}
		if variant.TagSuffix == "" {
			return &ValidationError{Path: path, Field: fmt.Sprintf("variants[%d].tag_suffix", i), Reason: "must not be empty"}
		}
		if _, exists := variantNames[variant.Name]; exists {
			return &ValidationError{Path: path, Field: "variants", Reason: fmt.Sprintf("duplicate variant name %s", style.Symbol(variant.Name))}
		}
		variantNames[variant.Name] = struct{}{}

		derivedNames := map[string]struct{}{}
		for _, tag := range config.Tags {
			derivedNames[tag.Name+variant.TagSuffix] = struct{}{}
		}
		if err := validateAliases(variant.Aliases, derivedNames, path, fmt.Sprintf("variants[%d].aliases", i)); err != nil {
			return err
		}
	}

	return nil
}

func validateAliases(aliases map[string]string, tagNames map[string]struct{}, path, field string) error {
	for alias, target := range aliases {
		if _, exists := tagNames[alias]; exists {
			return &ValidationError{Path: path, Field: field, Reason: fmt.Sprintf("alias %s collides with a tag of the same name", style.Symbol(alias))}
		}
		if _, exists := tagNames[target]; !exists {
			return &ValidationError{Path: path, Field: field, Reason: fmt.Sprintf("alias %s references unknown tag %s", style.Symbol(alias), style.Symbol(target))}
		}
	}
	return nil
}
