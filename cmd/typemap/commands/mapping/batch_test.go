package mapping

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/speakeasy-api/openapi-typemapper/yml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		format   yml.OutputFormat
		expected string
	}{
		{name: "yaml input", input: "models/pet.yaml", format: yml.OutputFormatYAML, expected: "pet.swagger.yaml"},
		{name: "json output", input: "pet.yaml", format: yml.OutputFormatJSON, expected: "pet.swagger.json"},
		{name: "dotted name", input: "pet.v2.yml", format: yml.OutputFormatYAML, expected: "pet.v2.swagger.yaml"},
		{name: "no extension", input: "pet", format: yml.OutputFormatJSON, expected: "pet.swagger.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, OutputName(tt.input, tt.format))
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestBatch_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	files := []string{
		writeFile(t, dir, "pet.yaml", "type: string\nformat: uuid\n"),
		writeFile(t, dir, "id.json", `{"type": "integer"}`),
		writeFile(t, dir, "tags.yaml", "type: array\nitems:\n  type: string\n"),
	}

	var stderr bytes.Buffer
	err := Batch(t.Context(), files, BatchOptions{
		Options:     Options{Indent: -1, ParentActivated: true},
		OutDir:      outDir,
		Concurrency: 2,
	}, &stderr)
	require.NoError(t, err)

	expected := map[string]string{
		"pet.swagger.yaml":  "type: string\nformat: uuid\n",
		"id.swagger.json":   "{\n  \"type\": \"integer\"\n}\n",
		"tags.swagger.yaml": "type: array\nitems:\n  type: string\n",
	}

	for name, content := range expected {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, content, string(data), name)
	}

	assert.Contains(t, stderr.String(), "✅ Mapped 3 documents")
}

func TestBatch_FormatFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	input := writeFile(t, dir, "pet.yaml", "type: boolean\n")

	err := Batch(t.Context(), []string{input}, BatchOptions{
		Options: Options{Format: "json", Indent: 0, ParentActivated: true},
		OutDir:  outDir,
	}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "pet.swagger.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\"type\":\"boolean\"}\n", string(data))
}

func TestBatch_Error(t *testing.T) {
	t.Parallel()

	t.Run("missing output directory", func(t *testing.T) {
		t.Parallel()

		err := Batch(t.Context(), []string{"pet.yaml"}, BatchOptions{}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "output directory is required")
	})

	t.Run("colliding output names", func(t *testing.T) {
		t.Parallel()

		_, err := planBatch([]string{"a/pet.yaml", "b/pet.yml"}, BatchOptions{OutDir: "out"})
		assert.ErrorContains(t, err, "would both be written to")
	})

	t.Run("unreadable input stops the batch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		missing := filepath.Join(dir, "missing.yaml")

		err := Batch(t.Context(), []string{missing}, BatchOptions{
			Options: Options{Indent: -1, ParentActivated: true},
			OutDir:  filepath.Join(dir, "out"),
		}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), missing)
	})
}
