package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goversion "go.hein.dev/go-version"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  gap: 3\n"), 0o644))
	return path
}

func TestListPrintsNaturalOrderWithFocus(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page10.png", "page2.png", "page1.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	out, err := runCmd(t, "list", "--config", emptyConfig(t), filepath.Join(dir, "page2.png"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "page1.png")
	assert.Contains(t, lines[2], "page2.png")
	assert.Contains(t, lines[2], ">")
	assert.Contains(t, lines[3], "page10.png")
	assert.NotContains(t, out, "notes.txt")
}

func TestListEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	out, err := runCmd(t, "list", "--config", emptyConfig(t), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no images in")
}

func TestConfigPrintsEffectiveValues(t *testing.T) {
	cfgPath := emptyConfig(t)

	out, err := runCmd(t, "config", "--config", cfgPath, "--mode", "continuous")
	require.NoError(t, err)

	assert.Contains(t, out, "# "+cfgPath)
	assert.Contains(t, out, "mode: continuous")
	assert.Contains(t, out, "gap: 3")
}

func TestConfigRejectsInvalidFlag(t *testing.T) {
	_, err := runCmd(t, "config", "--config", emptyConfig(t), "--mode", "sideways")
	assert.Error(t, err)
}

func TestVersionJSON(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)

	var info goversion.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info.Version)
}

func TestVersionYAML(t *testing.T) {
	out, err := runCmd(t, "version", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
}
