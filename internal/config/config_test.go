package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/config"
)

// clearEnv blanks every TASKMAN_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"TASKMAN_PROJECT_ID",
		"TASKMAN_CREDENTIALS",
		"TASKMAN_EMULATOR_HOST",
		"TASKMAN_COLLECTION",
		"TASKMAN_REQUEST_TIMEOUT",
		"TASKMAN_DEBUG",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := config.Load(dir, config.Overrides{ProjectID: "demo-project"})

	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, "demo-project", cfg.ProjectID)
	assert.Equal(t, config.DefaultCollection, cfg.Collection)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.Empty(t, cfg.Credentials)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.UsesEmulator())
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	key := writeFile(t, dir, "key.json", "{}")
	writeFile(t, dir, "config.yaml", "project_id: file-project\n"+
		"credentials: "+key+"\n"+
		"collection: chores\n"+
		"request_timeout: 5s\n"+
		"debug: true\n")

	cfg, err := config.Load(dir, config.Overrides{})

	require.NoError(t, err)
	assert.Equal(t, "file-project", cfg.ProjectID)
	assert.Equal(t, key, cfg.Credentials)
	assert.Equal(t, "chores", cfg.Collection)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigPath())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "project_id: file-project\n")
	t.Setenv("TASKMAN_PROJECT_ID", "env-project")
	t.Setenv("TASKMAN_EMULATOR_HOST", "localhost:8200")
	t.Setenv("TASKMAN_REQUEST_TIMEOUT", "250ms")

	cfg, err := config.Load(dir, config.Overrides{})

	require.NoError(t, err)
	assert.Equal(t, "env-project", cfg.ProjectID)
	assert.Equal(t, "localhost:8200", cfg.EmulatorHost)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
	assert.True(t, cfg.UsesEmulator())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	key := writeFile(t, dir, "key.json", "{}")
	t.Setenv("TASKMAN_PROJECT_ID", "env-project")

	cfg, err := config.Load(dir, config.Overrides{
		ProjectID:   "flag-project",
		Credentials: key,
		Debug:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, "flag-project", cfg.ProjectID)
	assert.Equal(t, key, cfg.Credentials)
	assert.True(t, cfg.Debug)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		file string
		o    config.Overrides
	}{
		{
			name: "missing project",
			file: "collection: tasks\n",
		},
		{
			name: "credentials file does not exist",
			o:    config.Overrides{ProjectID: "p", Credentials: "/nonexistent/key.json"},
		},
		{
			name: "bad emulator host",
			file: "emulator_host: not a host\n",
			o:    config.Overrides{ProjectID: "p"},
		},
		{
			name: "negative timeout",
			file: "request_timeout: -1s\n",
			o:    config.Overrides{ProjectID: "p"},
		},
		{
			name: "empty collection",
			file: "collection: \"\"\n",
			o:    config.Overrides{ProjectID: "p"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			if tc.file != "" {
				writeFile(t, dir, "config.yaml", tc.file)
			}

			cfg, err := config.Load(dir, tc.o)

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "project_id: [unterminated\n")

	_, err := config.Load(dir, config.Overrides{ProjectID: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "taskman"), config.DefaultConfigDir())
}

func TestDefaultConfigDir_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/tmp/home")
	assert.Equal(t, filepath.Join("/tmp/home", ".config", "taskman"), config.DefaultConfigDir())
}
