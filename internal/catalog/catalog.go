// Package catalog holds the static provider and exercise collections used by
// the matching pipeline. Catalogs are loaded once at startup, versioned in
// their data files, and treated as read-only afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/providers.yaml
var providersData []byte

//go:embed data/exercises.yaml
var exercisesData []byte

type providersFile struct {
	Version   int         `yaml:"version"`
	Providers []*Provider `yaml:"providers"`
}

type exercisesFile struct {
	Version   int         `yaml:"version"`
	Exercises []*Exercise `yaml:"exercises"`
}

// LoadProviders returns the built-in provider catalog.
func LoadProviders() (*Providers, error) {
	return decodeProviders(providersData, "embedded providers catalog")
}

// LoadProvidersFromFile reads an external provider catalog, allowing
// deployments to ship their own data without rebuilding.
func LoadProvidersFromFile(path string) (*Providers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading providers catalog %q: %w", path, err)
	}
	return decodeProviders(data, path)
}

// LoadExercises returns the built-in exercise catalog.
func LoadExercises() (*Exercises, error) {
	return decodeExercises(exercisesData, "embedded exercises catalog")
}

// LoadExercisesFromFile reads an external exercise catalog.
func LoadExercisesFromFile(path string) (*Exercises, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading exercises catalog %q: %w", path, err)
	}
	return decodeExercises(data, path)
}

func decodeProviders(data []byte, source string) (*Providers, error) {
	var file providersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	if len(file.Providers) == 0 {
		return nil, fmt.Errorf("%s contains no providers", source)
	}
	return &Providers{Items: file.Providers}, nil
}

func decodeExercises(data []byte, source string) (*Exercises, error) {
	var file exercisesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	if len(file.Exercises) == 0 {
		return nil, fmt.Errorf("%s contains no exercises", source)
	}
	return &Exercises{Items: file.Exercises}, nil
}
