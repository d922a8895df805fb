package main

import (
	"bytes"
	"path/filepath"
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

func TestReservationSurvivesRestart(t *testing.T) {
	dataDir := t.TempDir()

	out := session(t, dataDir,
		"1", "101", "Deluxe", "100",
		"4", "Alice", "101", "2024-01-01", "2024-01-03",
		"4", "Bob", "101", "2024-01-02", "2024-01-04",
		"13",
		"15",
	)
	assert.Contains(t, out, "Room 101 added successfully.")
	assert.Contains(t, out, "Reservation made: Reservation for Alice: Room 101 from 2024-01-01 to 2024-01-03 - Total: $200.00")
	assert.Contains(t, out, "not available")
	assert.Contains(t, out, "Data saved successfully.")
	assert.FileExists(t, filepath.Join(dataDir, "rooms.txt"))
	assert.FileExists(t, filepath.Join(dataDir, "reservations.txt"))

	out = session(t, dataDir, "14", "3", "7", "10", "15")
	assert.Contains(t, out, "Loaded 2 records.")
	assert.Contains(t, out, "Room 101 - Deluxe ($100.00/night) - Reserved")
	assert.Contains(t, out, "Reservation for Alice: Room 101 from 2024-01-01 to 2024-01-03 - Total: $200.00")
	assert.Contains(t, out, "Total Reservations: 1")
	assert.Contains(t, out, "NIGHTS")
}

func TestLoadWithoutSavedData(t *testing.T) {
	out := session(t, t.TempDir(), "14", "15")
	assert.Contains(t, out, "failed to load rooms")
}
