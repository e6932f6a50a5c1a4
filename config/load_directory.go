package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadDirectory loads a configuration from a directory containing YAML
// and/or JSON files. Files are parsed in sorted filename order and merged,
// with later files taking precedence over earlier ones.
func LoadDirectory(dirPath string) (*Config, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirPath, err)
	}

	var configFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yml" || ext == ".yaml" || ext == ".json" {
			configFiles = append(configFiles, filepath.Join(dirPath, entry.Name()))
		}
	}
	if len(configFiles) == 0 {
		return nil, fmt.Errorf("no yaml or json files found in directory: %s", dirPath)
	}
	sort.Strings(configFiles)

	var merged *Config
	for _, file := range configFiles {
		cfg, err := ParseFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		if merged == nil {
			merged = cfg
		} else {
			merged = Merge(merged, cfg)
		}
	}
	return merged, nil
}

// Load loads a configuration from a file or directory path.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadDirectory(path)
	}
	return ParseFile(path)
}
