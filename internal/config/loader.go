package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/allurefw/report/internal/model"
)

// DefaultConfigFile is the default report configuration file name.
const DefaultConfigFile = ".allure-report.yaml"

// ErrConfigNotFound is returned when the report configuration file does
// not exist. Callers should treat this as fatal only when the path was
// explicitly specified by the user.
var ErrConfigNotFound = errors.New("report configuration file not found")

// Category describes one defect category for the defects aggregation.
// A result belongs to the category when its status is in MatchedStatuses
// and (when MessageRegex is set) its failure message matches the regex.
type Category struct {
	// Name is the category title shown in the defects view.
	Name string `yaml:"name"`

	// MatchedStatuses lists status names ("failed", "broken", ...) the
	// category applies to. Empty means failed and broken.
	MatchedStatuses []string `yaml:"matchedStatuses"`

	// MessageRegex optionally narrows the category to failure messages
	// matching this pattern.
	MessageRegex string `yaml:"messageRegex"`
}

// File is the parsed report configuration file.
type File struct {
	// Categories are the defect categories for the defects aggregation.
	Categories []Category `yaml:"categories"`

	// Environment holds static key/value entries merged into the
	// environment widget alongside values discovered in the inputs.
	Environment map[string]string `yaml:"environment"`
}

// Statuses returns the category's matched statuses as model values,
// defaulting to failed and broken when none are configured.
func (c *Category) Statuses() []model.Status {
	if len(c.MatchedStatuses) == 0 {
		return []model.Status{model.StatusFailed, model.StatusBroken}
	}
	statuses := make([]model.Status, 0, len(c.MatchedStatuses))
	for _, name := range c.MatchedStatuses {
		statuses = append(statuses, model.ParseStatus(name))
	}
	return statuses
}

// LoadConfigFile loads the report configuration from a YAML file.
// If the file does not exist it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Environment == nil {
		f.Environment = make(map[string]string)
	}

	return &f, nil
}

// FindConfigFile searches for the report configuration file:
//  1. If configPath is specified, use it directly
//  2. Look for .allure-report.yaml in the current directory
//  3. Look for .allure-report.yaml in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
