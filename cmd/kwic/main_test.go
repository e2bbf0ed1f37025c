package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestDemo(t *testing.T) {
	out := execute(t, "demo")
	// "dover" ends in "er" as well. Matches come in rotation order:
	// "er|diver", "er|dover", then "er|" wrapping around to "driver".
	assert.Equal(t, "[2]\n[0, 1, 2]\n", out)
}

func TestQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.txt")
	require.NoError(t, os.WriteFile(path, []byte("cow dog cwd cat"), 0o644))

	out := execute(t, "query", "--file", path, "cw", "zz")
	assert.Equal(t, "cw: [2]\nzz: []\n", out)

	// "d|cat" sorts after "dog" because the separator is 0xFF.
	out = execute(t, "query", "--file", path, "d")
	assert.Equal(t, "d: [1, 2]\n", out)

	out = execute(t, "query", "--file", path, "--distinct", "1", "cw")
	assert.Equal(t, "cw: [2]\n", out)

	out = execute(t, "query", "--file", path, "--context", "2", "og")
	assert.Equal(t, "og: 1\n     1  d[og]\n", out)
}

func TestQueryConfigFile(t *testing.T) {
	dir := t.TempDir()
	records := filepath.Join(dir, "records.txt")
	require.NoError(t, os.WriteFile(records, []byte("Cow DOG"), 0o644))
	conf := filepath.Join(dir, "kwic.toml")
	require.NoError(t, os.WriteFile(conf, []byte("case_insensitive = true\n"), 0o644))

	out := execute(t, "--config", conf, "query", "-f", records, "dog")
	assert.Equal(t, "dog: [1]\n", out)
}

func TestQueryErrors(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"query", "x"})
	require.Error(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetArgs([]string{"query", "-f", filepath.Join(t.TempDir(), "missing"), "x"})
	require.Error(t, cmd.Execute())
}
