package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
)

// DefaultRegistry is the registry base images are qualified with when no
// registry is configured.
const DefaultRegistry = "localhost:5050"

// Config is the runtime configuration of the image-manager CLI. It carries
// the registries the generated artifacts are meant for; credentials are only
// passed through to the tooling that consumes the artifacts.
type Config struct {
	Registries []Registry `toml:"registries"`
}

type Registry struct {
	URL      string `toml:"url"`
	Username string `toml:"username,omitempty"`
	Password string `toml:"password,omitempty"`
	Default  bool   `toml:"default,omitempty"`
}

// DefaultConfigPath resolves the runtime configuration file location. The
// IMAGE_MANAGER_CONFIG environment variable overrides the working-directory
// default.
func DefaultConfigPath() (string, error) {
	if path := os.Getenv("IMAGE_MANAGER_CONFIG"); path != "" {
		return path, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting working directory")
	}

	return filepath.Join(wd, ".image-manager.toml"), nil
}

// Read loads the runtime configuration at path. A missing file yields the
// zero configuration. Registry values may reference environment variables as
// ${VAR}; a value referencing an unset variable resolves to the empty string
// so that callers fall back to their defaults.
func Read(path string) (Config, error) {
	cfg := Config{}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, errors.Wrapf(err, "reading config file at path %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, errors.Errorf("unknown configuration elements %s in %s", style.Symbol(strings.Join(keys, ", ")), style.Symbol(path))
	}

	for i, registry := range cfg.Registries {
		cfg.Registries[i].URL = expandPlaceholders(registry.URL)
		cfg.Registries[i].Username = expandPlaceholders(registry.Username)
		cfg.Registries[i].Password = expandPlaceholders(registry.Password)
	}

	return cfg, nil
}

// Write serializes the configuration to path, creating parent directories as
// needed.
func Write(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating config file at path %s", path)
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(cfg)
}

// RegistryURL returns the URL of the registry marked as default, the first
// configured registry otherwise, or DefaultRegistry when none is usable.
func (c Config) RegistryURL() string {
	url := ""
	for _, registry := range c.Registries {
		if registry.Default {
			url = registry.URL
			break
		}
	}

	if url == "" && len(c.Registries) > 0 {
		url = c.Registries[0].URL
	}

	if url == "" {
		return DefaultRegistry
	}

	return url
}

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func expandPlaceholders(value string) string {
	missing := false
	expanded := placeholderPattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := placeholderPattern.FindStringSubmatch(match)[1]
		resolved, ok := os.LookupEnv(varName)
		if !ok {
			missing = true
		}
		return resolved
	})

	if missing {
		return ""
	}

	return expanded
}
