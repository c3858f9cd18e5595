package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&out)
	err := app.Run(append([]string{"atomsel"}, args...))
	return out.String(), err
}

func TestParseCommandPrintsAST(t *testing.T) {
	out, err := runApp(t, "parse", "protein and name CA")
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	require.Equal(t, "Logical", tree["type"])
	require.Equal(t, "and", tree["operator"])
}

func TestParseCommandRejectsBadSelections(t *testing.T) {
	_, err := runApp(t, "parse", "protein and and")
	require.Error(t, err)

	_, err = runApp(t, "parse", "")
	require.Error(t, err)
}

func TestEvalCommand(t *testing.T) {
	snapshot := filepath.Join("testdata", "waterbox.yaml")

	out, err := runApp(t, "eval", "--mol", snapshot, "water")
	require.NoError(t, err)
	require.Equal(t, "3 of 4 atoms selected\n0 1 2\n", out)

	out, err = runApp(t, "eval", "--mol", snapshot, "noh and water")
	require.NoError(t, err)
	require.Equal(t, "1 of 4 atoms selected\n0\n", out)

	out, err = runApp(t, "eval", "--mol", snapshot, "within 2 of ion")
	require.NoError(t, err)
	require.Equal(t, "1 of 4 atoms selected\n3\n", out)

	out, err = runApp(t, "eval", "--mol", snapshot, "name OH2 and x > 1")
	require.NoError(t, err)
	require.Equal(t, "0 of 4 atoms selected\n", out)
}

func TestBatchCommand(t *testing.T) {
	out, err := runApp(t, "batch", filepath.Join("testdata", "batch.yaml"))
	require.NoError(t, err)
	require.Equal(t, "solvent: 4 of 4 atoms (water or ion)\nheavy: 2 of 4 atoms (noh)\n", out)
}

func TestBatchCommandErrors(t *testing.T) {
	_, err := runApp(t, "batch")
	require.Error(t, err)

	_, err = runApp(t, "batch", filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}

func TestEvalCommandErrors(t *testing.T) {
	snapshot := filepath.Join("testdata", "waterbox.yaml")

	_, err := runApp(t, "eval", "--mol", snapshot, "--frame", "3", "water")
	require.ErrorContains(t, err, "out of range")

	_, err = runApp(t, "eval", "--mol", snapshot, "frobnicate")
	require.Error(t, err)

	_, err = runApp(t, "eval", "--mol", filepath.Join("testdata", "missing.yaml"), "water")
	require.Error(t, err)
}
