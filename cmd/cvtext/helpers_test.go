package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleResume = `Name: Ada Lovelace
Email: ada@example.com

School: University of London
Start Date: 1832-09
End Date: 1835

# Research
Role: Analyst
- Wrote the first published algorithm
an unrecognized line
`

// getBinaryPath returns the path to the cvtext binary, skipping when it is not built
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "cvtext")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/cvtext ./cmd/cvtext'", binaryPath)
	}

	return binaryPath
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command in-process with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}
