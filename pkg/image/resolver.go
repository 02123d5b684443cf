package image

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/timo-reymann/poc-base-image-manager/internal/name"
	"github.com/timo-reymann/poc-base-image-manager/internal/style"
)

const (
	defaultTemplateName     = "Dockerfile.tmpl"
	defaultTestTemplateName = "test.yml.tmpl"
)

// Resolver turns image descriptors into resolved Image models.
type Resolver struct {
	registry string
}

// NewResolver creates a resolver that qualifies base-image references against
// registry. An empty registry leaves references unqualified.
func NewResolver(registry string) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve builds the Image model for the descriptor at descriptorPath.
// Template texts are loaded relative to the descriptor's directory; aliases
// are the union of generated and explicit ones per scope, with explicit
// entries winning and image and variant scopes kept strictly apart.
func (r *Resolver) Resolve(config Config, descriptorPath string) (*Image, error) {
	sourceDir := filepath.Dir(descriptorPath)

	imageName := config.Name
	if imageName == "" {
		imageName = filepath.Base(sourceDir)
	}

	fullyQualifiedName, err := name.QualifiedReference(r.registry, imageName)
	if err != nil {
		return nil, &ValidationError{Path: descriptorPath, Field: "name", Reason: err.Error()}
	}

	templateName := config.Template
	if templateName == "" {
		templateName = defaultTemplateName
	}
	dockerfileTemplate, err := readTemplate(sourceDir, descriptorPath, "template", templateName)
	if err != nil {
		return nil, err
	}

	testTemplate := ""
	if config.TestTemplate != "" {
		testTemplate, err = readTemplate(sourceDir, descriptorPath, "test_template", config.TestTemplate)
		if err != nil {
			return nil, err
		}
	} else {
		data, err := os.ReadFile(filepath.Join(sourceDir, defaultTestTemplateName))
		if err == nil {
			testTemplate = string(data)
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "reading test template for image %s", style.Symbol(imageName))
		}
	}

	tagNames := make([]string, 0, len(config.Tags))
	for _, tag := range config.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	img := &Image{
		Name:               imageName,
		SourcePath:         descriptorPath,
		SourceDir:          sourceDir,
		FullyQualifiedName: fullyQualifiedName,
		IsBaseImage:        config.IsBaseImage,
		Extends:            config.Extends,
		HasRootfs:          hasRootfsDir(sourceDir),
		RootfsUser:         config.RootfsUser,
		RootfsCopy:         config.RootfsCopy,
		Variables:          Merge(config.Variables),
		Versions:           Merge(config.Versions),
		DockerfileTemplate: dockerfileTemplate,
		TestTemplate:       testTemplate,
		Tags:               resolveTags(config),
		Aliases:            resolveAliases(config.Aliases, tagNames),
	}

	for i, variantConfig := range config.Variants {
		variantTemplate := dockerfileTemplate
		if variantConfig.Template != "" {
			variantTemplate, err = readTemplate(sourceDir, descriptorPath, fmt.Sprintf("variants[%d].template", i), variantConfig.Template)
			if err != nil {
				return nil, err
			}
		}

		variantTags := ExpandVariantTags(config, variantConfig)
		variantTagNames := make([]string, 0, len(variantTags))
		for _, tag := range variantTags {
			variantTagNames = append(variantTagNames, tag.Name)
		}

		img.Variants = append(img.Variants, Variant{
			Name:               variantConfig.Name,
			TagSuffix:          variantConfig.TagSuffix,
			DockerfileTemplate: variantTemplate,
			RootfsUser:         variantConfig.RootfsUser,
			RootfsCopy:         variantConfig.RootfsCopy,
			Tags:               variantTags,
			Aliases:            resolveAliases(variantConfig.Aliases, variantTagNames),
		})
	}

	return img, nil
}

func resolveTags(config Config) []Tag {
	tags := make([]Tag, 0, len(config.Tags))
	for _, tag := range config.Tags {
		tags = append(tags, Tag{
			Name:       tag.Name,
			Variables:  Merge(config.Variables, tag.Variables),
			Versions:   Merge(config.Versions, tag.Versions),
			RootfsUser: tag.RootfsUser,
			RootfsCopy: tag.RootfsCopy,
		})
	}
	return tags
}

// resolveAliases unions generated and explicit aliases for one scope.
// Explicit entries win; a generated alias that would shadow a real tag of the
// scope is dropped.
func resolveAliases(explicit map[string]string, tagNames []string) map[string]string {
	generated := GenerateAliases(tagNames)
	for _, tagName := range tagNames {
		delete(generated, tagName)
	}
	return Merge(generated, explicit)
}

func readTemplate(sourceDir, descriptorPath, field, fileName string) (string, error) {
	path := filepath.Join(sourceDir, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ValidationError{Path: descriptorPath, Field: field, Reason: fmt.Sprintf("cannot read template %s: %s", style.Symbol(path), err)}
	}
	return string(data), nil
}

func hasRootfsDir(sourceDir string) bool {
	info, err := os.Stat(filepath.Join(sourceDir, "rootfs"))
	return err == nil && info.IsDir()
}
