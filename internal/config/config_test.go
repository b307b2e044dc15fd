package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "normal", c.LogLevel)
	assert.Equal(t, DefaultLogFile, c.LogFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"debug alias", func(c *Config) { c.LogLevel = "debug" }, false},
		{"quiet alias", func(c *Config) { c.LogLevel = "quiet" }, false},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, true},
		{"relative url", func(c *Config) { c.BaseURL = "/calc" }, true},
		{"broken url", func(c *Config) { c.BaseURL = "http://[::1" }, true},
		{"https url", func(c *Config) { c.BaseURL = "https://dough.example/calc" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOpenLogConsole(t *testing.T) {
	var fallback bytes.Buffer
	for _, path := range []string{"", StderrLog} {
		c := Config{LogFile: path}
		out, closeLog := c.OpenLog(&fallback)
		assert.Same(t, &fallback, out)
		assert.NoError(t, closeLog())
	}
	assert.Empty(t, fallback.String())
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "doughcalc.log")
	c := Config{LogFile: path}

	out, closeLog := c.OpenLog(&bytes.Buffer{})
	_, err := out.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestOpenLogFallback(t *testing.T) {
	var fallback bytes.Buffer
	c := Config{LogFile: t.TempDir()} // a directory cannot be opened for writing

	out, closeLog := c.OpenLog(&fallback)
	assert.Same(t, &fallback, out)
	assert.NoError(t, closeLog())
	assert.Contains(t, fallback.String(), "could not open log file")
}

func TestLoggerRejectsBadLevel(t *testing.T) {
	_, _, err := Config{LogLevel: "loud", LogFile: StderrLog}.Logger()
	assert.Error(t, err)
}
