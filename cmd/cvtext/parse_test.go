package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvtext/internal/parsing"
	"github.com/jonathan/cvtext/internal/types"
)

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		input string
		out   string
		multi bool
		want  string
	}{
		{name: "single to stdout", input: "cv/ada.txt", want: ""},
		{name: "single to file", input: "cv/ada.txt", out: "ada.json", want: "ada.json"},
		{name: "single into existing dir", input: "cv/ada.txt", out: dir, want: filepath.Join(dir, "ada.json")},
		{name: "multi next to input", input: filepath.Join("cv", "ada.txt"), multi: true, want: filepath.Join("cv", "ada.json")},
		{name: "multi into dir", input: "cv/ada.txt", out: "out", multi: true, want: filepath.Join("out", "ada.json")},
		{name: "no extension", input: "resume", out: "out", multi: true, want: filepath.Join("out", "resume.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outputPath(tt.input, tt.out, tt.multi))
		})
	}
}

func TestParseFiles_PreservesOrder(t *testing.T) {
	parser := parsing.NewParser(parsing.NewRegistry())
	var paths []string
	for _, name := range []string{"Ada", "Grace", "Edsger", "Barbara"} {
		paths = append(paths, writeTemp(t, name+".txt", "Name: "+name+"\n"))
	}

	results, err := parseFiles(context.Background(), parser, paths)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, name := range []string{"Ada", "Grace", "Edsger", "Barbara"} {
		assert.Equal(t, paths[i], results[i].Source)
		assert.Equal(t, name, results[i].Document.Name)
	}
}

func TestParseFiles_Unparsed(t *testing.T) {
	path := writeTemp(t, "ada.txt", sampleResume)

	results, err := parseFiles(context.Background(), parsing.NewParser(parsing.NewRegistry()), []string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{"an unrecognized line"}, results[0].Unparsed)
	assert.Equal(t, "Research", results[0].Document.Activities[0].Section)
}

func TestParseFiles_Errors(t *testing.T) {
	parser := parsing.NewParser(parsing.NewRegistry())
	good := writeTemp(t, "good.txt", "Name: Ada\n")

	_, err := parseFiles(context.Background(), parser, []string{good, filepath.Join(t.TempDir(), "missing.txt")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	bad := writeTemp(t, "bad.txt", "School: MIT\nEnd Date: 2020-02-30\n")
	_, err = parseFiles(context.Background(), parser, []string{good, bad})
	require.Error(t, err)
	var dateErr *parsing.DateError
	assert.ErrorAs(t, err, &dateErr)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestParseCommand_WritesDirectory(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outDir := t.TempDir()
	a := writeTemp(t, "ada.txt", sampleResume)
	b := writeTemp(t, "grace.txt", "Name: Grace Hopper\n")

	cmd := exec.Command(binaryPath, "parse", "--in", a, "--in", b, "--out", outDir, "--validate")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "1 unrecognized lines")

	data, err := os.ReadFile(filepath.Join(outDir, "grace.json"))
	require.NoError(t, err)
	var doc types.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Grace Hopper", doc.Name)
	assert.FileExists(t, filepath.Join(outDir, "ada.json"))
}

func TestParseCommand_MissingInFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "parse").CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag(s) \"in\" not set")
}

func TestParseCommand_FatalError(t *testing.T) {
	binaryPath := getBinaryPath(t)
	in := writeTemp(t, "bad.txt", "Degree: BSc\n")

	output, err := exec.Command(binaryPath, "parse", "--in", in).CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "Error:")
	assert.Contains(t, string(output), "unparsable line")
}
