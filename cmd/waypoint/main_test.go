package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "waypoint version ")
}

func TestPlace(t *testing.T) {
	out, err := execute(t, "place", "--target", "100,100,100,30", "--callout", "200,80", "--viewport", "1024,768")
	require.NoError(t, err)

	var p domain.Placement
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, domain.Placement{Side: domain.SideBottom, Top: 138, Left: 50, ArrowOffset: 100}, p)
}

func TestPlace_BadBox(t *testing.T) {
	_, err := execute(t, "place", "--target", "1,2,3", "--callout", "200,80")
	assert.ErrorContains(t, err, "--target")
}

func TestStatusAndReset(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "done.json")
	cfg := filepath.Join(dir, "waypoint.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("store:\n  backend: file\n  path: "+store+"\n"), 0o644))
	require.NoError(t, os.WriteFile(store, []byte(`{"wizardCompleted-intro":"true"}`), 0o644))

	out, err := execute(t, "--config", cfg, "status", "intro", "other")
	require.NoError(t, err)
	assert.Regexp(t, `intro\s+.*completed`, out)
	assert.Regexp(t, `other\s+.*pending`, out)

	_, err = execute(t, "--config", cfg, "reset", "intro")
	require.NoError(t, err)

	out, err = execute(t, "--config", cfg, "status", "intro")
	require.NoError(t, err)
	assert.Regexp(t, `intro\s+.*pending`, out)
}
