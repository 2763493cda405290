package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/memory"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/gateway"
)

// run executes the CLI in-process against the config file and returns stdout.
func run(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	// flag values persist between executions of the global command tree
	verbose, configFile, backendName, dataPath = false, "", "", ""
	listJSON, addDescription, editTitle, editDescription = false, "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", config}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) (config, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	config = filepath.Join(dir, "notepad.yaml")
	require.NoError(t, os.WriteFile(config, []byte("backend: fs\npath: data\n"), 0644))
	return config, filepath.Join(dir, "data")
}

func TestCLI_Workflow(t *testing.T) {
	config, dataDir := setup(t)

	out, err := run(t, config, "add", "Milk", "buy", "2", "liters")
	require.NoError(t, err)
	assert.Contains(t, out, "created [1] Milk")

	out, err = run(t, config, "add", "Eggs", "-d", "dozen")
	require.NoError(t, err)
	assert.Contains(t, out, "[2] Eggs")

	out, err = run(t, config, "list")
	require.NoError(t, err)
	assert.Equal(t, "[1] Milk\n    buy 2 liters\n[2] Eggs\n    dozen\n", out)

	out, err = run(t, config, "search", "EGG")
	require.NoError(t, err)
	assert.Equal(t, "[2] Eggs\n    dozen\n", out)

	_, err = run(t, config, "edit", "2", "--description", "buy 2 dozen")
	require.NoError(t, err)

	out, err = run(t, config, "show", "2")
	require.NoError(t, err)
	assert.Equal(t, "[2] Eggs\n    buy 2 dozen\n", out)

	out, err = run(t, config, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 1 (Milk)")

	out, err = run(t, config, "list", "--json")
	require.NoError(t, err)
	var notes core.Collection
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	assert.Equal(t, core.Collection{{ID: 2, Title: "Eggs", Description: "buy 2 dozen"}}, notes)

	raw, err := os.ReadFile(filepath.Join(dataDir, "notes.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":2,"title":"Eggs","description":"buy 2 dozen"}]`, string(raw))
}

func TestCLI_Errors(t *testing.T) {
	config, _ := setup(t)

	_, err := run(t, config, "add", "")
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = run(t, config, "show", "7")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = run(t, config, "delete", "7")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = run(t, config, "edit", "7", "--title", "x")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = run(t, config, "edit", "1")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = run(t, config, "show", "abc")
	assert.ErrorContains(t, err, "invalid note id")

	out, err := run(t, config, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "(no notes)")
}

func TestCloseStore_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	kv.FailWith(nil, errors.New("disk full"))

	store := core.NewStore(gateway.New(kv, gateway.Config{}), core.StoreConfig{})
	require.NoError(t, store.Initialize(ctx))
	_, err := store.Create(ctx, "Milk", "")
	require.NoError(t, err)

	err = closeStore(ctx, store)
	require.Error(t, err)
	assert.ErrorIs(t, err, errNotPersisted)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, store.Len(), "the note is still in memory")
}

func TestCLI_Version(t *testing.T) {
	config, _ := setup(t)
	out, err := run(t, config, "version")
	require.NoError(t, err)
	assert.Regexp(t, `^notepad version \S+\n$`, out)
}
