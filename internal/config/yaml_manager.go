package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/penwyp/codeup/internal/errors"
	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const configVersion = "1.0.0"

// yamlConfigManager supports both JSON and YAML configuration files
type yamlConfigManager struct {
	configPath string
	format     Format
	mu         sync.Mutex
}

// NewYAMLConfigManager creates a config manager that supports both JSON and YAML
func NewYAMLConfigManager(configPath string) (Manager, error) {
	if configPath == "" {
		return nil, errors.New(errors.ErrTypeConfig, "config path cannot be empty")
	}

	// Determine format based on extension
	var format Format
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json":
		format = FormatJSON
	default:
		format = FormatYAML
	}

	return &yamlConfigManager{
		configPath: configPath,
		format:     format,
	}, nil
}

func (m *yamlConfigManager) Path() string {
	return m.configPath
}

// Load loads the configuration file in either JSON or YAML format
func (m *yamlConfigManager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *yamlConfigManager) load() (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err // Return the raw error for IsNotExist checks
		}
		return nil, errors.Wrap(errors.ErrTypeConfig, "failed to read config file", err)
	}

	var config Config
	switch m.format {
	case FormatJSON:
		if err := json.Unmarshal(data, &config); err != nil {
			// Try YAML as fallback
			if yamlErr := yaml.Unmarshal(data, &config); yamlErr != nil {
				return nil, errors.Wrap(errors.ErrTypeConfig, "failed to parse config as JSON", err)
			}
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrap(errors.ErrTypeConfig, "failed to parse config as YAML", err)
		}
	}

	if config.Stages == nil {
		config.Stages = make(map[string]Stage)
	}
	return &config, nil
}

// Save saves the configuration file in the appropriate format
func (m *yamlConfigManager) Save(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(config, "")
}

func (m *yamlConfigManager) save(config *Config, header string) error {
	var data []byte
	var err error

	switch m.format {
	case FormatJSON:
		data, err = json.MarshalIndent(config, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("unknown format: %s", m.format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrTypeConfig, "failed to marshal config", err)
	}

	if m.format == FormatYAML && header != "" {
		data = append([]byte(header), data...)
	}

	// Ensure directory exists
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrTypeIO, "failed to create config directory", err)
	}

	// Atomic write: write to temp file then rename
	tmpFile := m.configPath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return errors.Wrap(errors.ErrTypeIO, "failed to write temp config file", err)
	}

	if err := os.Rename(tmpFile, m.configPath); err != nil {
		os.Remove(tmpFile)
		return errors.Wrap(errors.ErrTypeIO, "failed to save config file", err)
	}

	return nil
}

// CreateDefaultConfig writes a config holding a single stage. An existing
// file is left untouched.
func (m *yamlConfigManager) CreateDefaultConfig(name string, stage Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configPath); err == nil {
		return errors.New(errors.ErrTypeConfig, fmt.Sprintf("config file %s already exists", m.configPath)).
			WithSuggestion(fmt.Sprintf("edit the file or run 'codeup init %s' in another directory", name))
	}
	if _, err := stage.Identity(); err != nil {
		return err
	}

	defaultConfig := &Config{
		Version: configVersion,
		Stages:  map[string]Stage{name: stage},
	}

	header := `# codeup deployment configuration
# Each stage maps a name to a hosting target. before_deploy commands run
# in order before every push and stop the deployment on the first failure.

`
	return m.save(defaultConfig, header)
}

// UpdateStage updates a specific stage configuration
func (m *yamlConfigManager) UpdateStage(name string, stage Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := stage.Identity(); err != nil {
		return err
	}

	config, err := m.load()
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		config = &Config{
			Version: configVersion,
			Stages:  make(map[string]Stage),
		}
	}

	config.Stages[name] = stage
	return m.save(config, "")
}
