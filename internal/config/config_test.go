package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_key": "clave-de-prueba",
		"store_path": "/tmp/plan.json",
		"port": 9090,
		"speech_command": "espeak",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "clave-de-prueba", cfg.APIKey)
	assert.Equal(t, "/tmp/plan.json", cfg.StorePath)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "espeak", cfg.SpeechCommand)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvDatabaseURL, "postgres://localhost/eduplan")
	t.Setenv(EnvStorePath, "plan.json")
	t.Setenv(EnvLogFile, "eduplan.log")
	t.Setenv(EnvPort, "7000")
	t.Setenv(EnvModel, "gemini-2.5-pro")
	t.Setenv(EnvSpeechCommand, "say")

	cfg := FromEnv()
	assert.Equal(t, Config{
		APIKey:        "k",
		DatabaseURL:   "postgres://localhost/eduplan",
		StorePath:     "plan.json",
		LogFile:       "eduplan.log",
		Port:          7000,
		Model:         "gemini-2.5-pro",
		SpeechCommand: "say",
	}, cfg)
}

func TestFromEnv_BadPortIgnored(t *testing.T) {
	t.Setenv(EnvPort, "ochenta")
	assert.Zero(t, FromEnv().Port)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "defaults", cfg: Defaults()},
		{name: "full", cfg: Config{Port: 80, StorePath: filepath.Join(dir, "plan.json"), LogFile: filepath.Join(dir, "x.log"), DatabaseURL: "postgresql://u@h/db", SpeechCommand: "/usr/bin/espeak-ng"}},
		{name: "port too large", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "negative port", cfg: Config{Port: -1}, wantErr: "port"},
		{name: "negative print timeout", cfg: Config{PrintTimeoutSecond: -5}, wantErr: "print_timeout_seconds"},
		{name: "non postgres url", cfg: Config{DatabaseURL: "mysql://h/db"}, wantErr: "database_url"},
		{name: "missing store dir", cfg: Config{StorePath: "/nonexistent/dir/plan.json"}, wantErr: "store directory"},
		{name: "store dir is file", cfg: Config{StorePath: filepath.Join(file, "plan.json")}, wantErr: "not a directory"},
		{name: "missing log dir", cfg: Config{LogFile: "/nonexistent/dir/x.log"}, wantErr: "log directory"},
		{name: "speech command with args", cfg: Config{SpeechCommand: "espeak -v es"}, wantErr: "speech_command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIKey:    "env-key",
		StorePath: "env.json",
		Port:      8080,
		Verbose:   true,
	}

	partial := Config{
		StorePath:     "file.json",
		SpeechCommand: "say",
	}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "file.json", merged.StorePath)
	assert.Equal(t, "say", merged.SpeechCommand)
	assert.Equal(t, "env-key", merged.APIKey)
	assert.Equal(t, 8080, merged.Port)
	assert.True(t, merged.Verbose)
}

func TestMergeWithDefaults_Layers(t *testing.T) {
	flags := Config{Port: 9000}
	file := Config{Port: 7000, StorePath: "file.json"}
	env := Config{APIKey: "env-key"}

	merged := flags.MergeWithDefaults(file)
	merged = merged.MergeWithDefaults(env)
	merged = merged.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "file.json", merged.StorePath)
	assert.Equal(t, "env-key", merged.APIKey)
	assert.False(t, merged.Verbose)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{StorePath: "x.json"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, cfg, merged)
}
