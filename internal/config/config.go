// Package config loads the optional `.flowby.yaml` project file: library
// search paths, the while-loop iteration cap, the recursion policy, and a
// dotenv path, parsed with github.com/goccy/go-yaml.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the parsed shape of a `.flowby.yaml` file. Zero value is a
// valid, fully-default configuration.
type Config struct {
	// LibraryPaths are additional directories searched for imports, after
	// the importer's own directory and lib/.
	LibraryPaths []string `yaml:"library_paths"`

	// MaxWhileIterations overrides the runaway-loop guard's default cap
	// (interp.DefaultMaxWhileIterations) when non-zero, via
	// interp.WithMaxWhileIterations.
	MaxWhileIterations int `yaml:"max_while_iterations"`

	// AllowRecursion overrides the interpreter's default recursion-refusal
	// policy.
	AllowRecursion bool `yaml:"allow_recursion"`

	// AllowNestedFunctions permits `function` definitions inside another
	// function's body, which the parser rejects by default.
	AllowNestedFunctions bool `yaml:"allow_nested_functions"`

	// DotEnvPath points at a .env file loaded into the `env` namespace.
	DotEnvPath string `yaml:"dotenv_path"`
}

// Load reads and parses path. A missing file is not an error: it returns
// the zero Config, letting callers fall back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
