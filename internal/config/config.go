package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "lqcheck.yaml"

type ResourceConfig struct {
	Directory string   `yaml:"directory"`
	Includes  []string `yaml:"includes,omitempty"`
	Excludes  []string `yaml:"excludes,omitempty"`
}

type ProjectConfig struct {
	Includes  []string         `yaml:"includes,omitempty"`
	Excludes  []string         `yaml:"excludes,omitempty"`
	Resources []ResourceConfig `yaml:"resources"`
}

// Load reads lqcheck.yaml from projectPath. Unknown keys are rejected so that
// a misspelled "excludes" cannot silently widen the scan.
func Load(projectPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectPath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w: %w", configPath, lqcheck.ErrInvalidConfig, err)
	}

	for i, r := range cfg.Resources {
		if r.Directory == "" {
			return nil, fmt.Errorf("%s: resources[%d].directory is required: %w", configPath, i, lqcheck.ErrInvalidConfig)
		}
	}
	return &cfg, nil
}

// Overrides are command-line values that take precedence over the config file.
type Overrides struct {
	Resources []string
	Includes  []string
	Excludes  []string
}

// ResolveFolders builds the explicit resource folder list for a check.
//
// Folder priority: overrides.Resources, then cfg.Resources, then envResources
// (a path list), then the Maven default src/main/resources. Relative directories
// are resolved against projectPath.
//
// Pattern priority: overrides apply to every folder; otherwise a folder's own
// patterns, then the config's top-level patterns, then **/*.xml for includes.
// cfg may be nil.
func ResolveFolders(projectPath string, cfg *ProjectConfig, overrides Overrides, envResources string) []lqcheck.ResourceFolder {
	if cfg == nil {
		cfg = &ProjectConfig{}
	}

	defaultIncludes := firstNonEmpty(overrides.Includes, cfg.Includes, []string{lqcheck.DefaultChangelogInclude})
	defaultExcludes := firstNonEmpty(overrides.Excludes, cfg.Excludes)

	var resources []ResourceConfig
	switch {
	case len(overrides.Resources) > 0:
		for _, dir := range overrides.Resources {
			resources = append(resources, ResourceConfig{Directory: dir})
		}
	case len(cfg.Resources) > 0:
		resources = cfg.Resources
	case envResources != "":
		for _, dir := range filepath.SplitList(envResources) {
			if dir != "" {
				resources = append(resources, ResourceConfig{Directory: dir})
			}
		}
	}
	if len(resources) == 0 {
		resources = []ResourceConfig{{Directory: filepath.FromSlash(lqcheck.DefaultResourceDirectory)}}
	}

	folders := make([]lqcheck.ResourceFolder, 0, len(resources))
	for _, r := range resources {
		dir := r.Directory
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(projectPath, dir)
		}
		folders = append(folders, lqcheck.ResourceFolder{
			Directory: dir,
			Includes:  firstNonEmpty(overrides.Includes, r.Includes, defaultIncludes),
			Excludes:  firstNonEmpty(overrides.Excludes, r.Excludes, defaultExcludes),
		})
	}
	return folders
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}
