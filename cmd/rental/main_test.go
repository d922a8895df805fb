package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordbook/internal/cli"
)

func session(t *testing.T, dataDir string, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, cli.Execute(app, []string{"--data-dir", dataDir}, in, &out, &bytes.Buffer{}))
	return out.String()
}

func TestRentReturnAndPersistMovies(t *testing.T) {
	dataDir := t.TempDir()

	out := session(t, dataDir,
		"1", "1", "Alien", "Horror",
		"1", "2", "Heat", "Crime",
		"2", "7", "Dana", "555-0100",
		"3", "7", "1",
		"13",
		"3", "7", "1",
		"16",
		"4", "1",
		"13",
		"18",
	)
	assert.Contains(t, out, "Movie added: 1: Alien (Horror) - Available")
	assert.Contains(t, out, "Total Available Movies: 1")
	assert.Contains(t, out, "not available")
	assert.Contains(t, out, "Movies saved successfully.")
	assert.Contains(t, out, "Movie returned: Alien\n")
	assert.Contains(t, out, "Total Available Movies: 2")

	out = session(t, dataDir, "17", "5", "18")
	assert.Contains(t, out, "Loaded 2 movies.")
	assert.Contains(t, out, "1: Alien (Horror) - Rented")
	assert.Contains(t, out, "2: Heat (Crime) - Available")
}
