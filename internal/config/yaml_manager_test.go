package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/codeup/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStage = Stage{
	SSHURL:       "my-app@deploy.eu2.frbit.com",
	BeforeDeploy: []string{"composer install --no-interaction"},
}

func TestNewYAMLConfigManager(t *testing.T) {
	tests := []struct {
		name           string
		configPath     string
		expectedFormat Format
		expectError    bool
	}{
		{
			name:           "JSON file extension",
			configPath:     "/path/to/codeup.json",
			expectedFormat: FormatJSON,
		},
		{
			name:           "YAML file extension",
			configPath:     "/path/to/codeup.yaml",
			expectedFormat: FormatYAML,
		},
		{
			name:           "YML file extension",
			configPath:     "/path/to/codeup.yml",
			expectedFormat: FormatYAML,
		},
		{
			name:           "No extension defaults to YAML",
			configPath:     "/path/to/codeup",
			expectedFormat: FormatYAML,
		},
		{
			name:        "Empty path returns error",
			configPath:  "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewYAMLConfigManager(tt.configPath)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, manager)
				return
			}
			require.NoError(t, err)
			yamlMgr := manager.(*yamlConfigManager)
			assert.Equal(t, tt.expectedFormat, yamlMgr.format)
			assert.Equal(t, tt.configPath, manager.Path())
		})
	}
}

func TestYAMLConfigManager_SaveAndLoad(t *testing.T) {
	for _, ext := range []string{".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "codeup"+ext)
			manager, err := NewYAMLConfigManager(path)
			require.NoError(t, err)

			cfg := &Config{
				Version: "1.0.0",
				Stages:  map[string]Stage{"production": testStage},
			}
			require.NoError(t, manager.Save(cfg))

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

			loaded, err := manager.Load()
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestYAMLConfigManager_LoadMissing(t *testing.T) {
	manager, err := NewYAMLConfigManager(filepath.Join(t.TempDir(), "codeup.yaml"))
	require.NoError(t, err)

	_, err = manager.Load()
	assert.True(t, os.IsNotExist(err))
}

func TestYAMLConfigManager_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stages: [unclosed"), 0644))

	manager, err := NewYAMLConfigManager(path)
	require.NoError(t, err)

	_, err = manager.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrTypeConfig, errors.GetType(err))
}

func TestYAMLConfigManager_LoadHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeup.yaml")
	content := `stages:
  production:
    ssh_url: my-app@deploy.eu2.frbit.com
    before_deploy:
      - composer install
      - php craft migrate/all
  staging:
    ssh_url: my-app-stage@deploy.us1.frbit.com
    git_remote: staging/master
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	manager, err := NewYAMLConfigManager(path)
	require.NoError(t, err)

	cfg, err := manager.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"production", "staging"}, cfg.Names())
	assert.Equal(t, []string{"composer install", "php craft migrate/all"}, cfg.Stages["production"].BeforeDeploy)
	assert.Equal(t, "staging/master", cfg.Stages["staging"].GitRemote)
}

func TestYAMLConfigManager_CreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeup.yaml")
	manager, err := NewYAMLConfigManager(path)
	require.NoError(t, err)

	require.NoError(t, manager.CreateDefaultConfig("production", testStage))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# codeup deployment configuration")
	assert.Contains(t, string(data), "ssh_url: my-app@deploy.eu2.frbit.com")

	cfg, err := manager.Load()
	require.NoError(t, err)
	assert.Equal(t, testStage, cfg.Stages["production"])

	// 已存在时不覆盖
	err = manager.CreateDefaultConfig("production", testStage)
	assert.Error(t, err)
}

func TestYAMLConfigManager_CreateDefaultConfigInvalidIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeup.yaml")
	manager, err := NewYAMLConfigManager(path)
	require.NoError(t, err)

	err = manager.CreateDefaultConfig("production", Stage{SSHURL: "git@github.com:owner/repo.git"})
	assert.True(t, errors.Is(err, errors.ErrInvalidIdentity))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestYAMLConfigManager_UpdateStage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codeup.yaml")
	manager, err := NewYAMLConfigManager(path)
	require.NoError(t, err)

	// 文件不存在时自动创建
	require.NoError(t, manager.UpdateStage("production", testStage))

	staging := Stage{SSHURL: "my-app-stage@deploy.eu2.frbit.com"}
	require.NoError(t, manager.UpdateStage("staging", staging))

	cfg, err := manager.Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Stages, 2)
	assert.Equal(t, staging, cfg.Stages["staging"])
	assert.Equal(t, testStage, cfg.Stages["production"])
}
