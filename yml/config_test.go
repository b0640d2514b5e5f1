package yml_test

import (
	"context"
	"testing"

	"github.com/speakeasy-api/openapi-typemapper/errors"
	"github.com/speakeasy-api/openapi-typemapper/yml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigFromData_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		data             string
		format           yml.OutputFormat
		indentation      int
		indentationStyle yml.IndentationStyle
	}{
		{
			name:             "yaml with two spaces",
			data:             "type: object\nproperties:\n  id:\n    type: string\n",
			format:           yml.OutputFormatYAML,
			indentation:      2,
			indentationStyle: yml.IndentationStyleSpace,
		},
		{
			name:             "yaml with four spaces",
			data:             "type: array\nitems:\n    type: integer\n",
			format:           yml.OutputFormatYAML,
			indentation:      4,
			indentationStyle: yml.IndentationStyleSpace,
		},
		{
			name:             "json with tabs",
			data:             "{\n\t\"type\": \"object\",\n\t\"properties\": {\n\t\t\"id\": {}\n\t}\n}\n",
			format:           yml.OutputFormatJSON,
			indentation:      1,
			indentationStyle: yml.IndentationStyleTab,
		},
		{
			name:             "flat yaml keeps defaults",
			data:             "type: string\n",
			format:           yml.OutputFormatYAML,
			indentation:      2,
			indentationStyle: yml.IndentationStyleSpace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := yml.GetConfigFromData([]byte(tt.data))
			assert.Equal(t, tt.format, cfg.OutputFormat)
			assert.Equal(t, tt.format, cfg.OriginalFormat)
			assert.Equal(t, tt.indentation, cfg.Indentation)
			assert.Equal(t, tt.indentationStyle, cfg.IndentationStyle)
		})
	}
}

func TestContextWithConfig_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, yml.GetDefaultConfig(), yml.GetConfigFromContext(ctx))

	cfg := &yml.Config{OutputFormat: yml.OutputFormatJSON, Indentation: 4}
	ctx = yml.ContextWithConfig(ctx, cfg)
	assert.Same(t, cfg, yml.GetConfigFromContext(ctx))

	assert.Same(t, cfg, yml.GetConfigFromContext(yml.ContextWithConfig(ctx, nil)))
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	f, err := yml.ParseOutputFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, yml.OutputFormatYAML, f)

	f, err = yml.ParseOutputFormat("json")
	require.NoError(t, err)
	assert.Equal(t, yml.OutputFormatJSON, f)

	_, err = yml.ParseOutputFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, yml.ErrUnsupportedFormat))
	assert.Equal(t, "unsupported output format -- xml", err.Error())
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	f, ok := yml.FormatFromPath("out/pet.swagger.JSON")
	assert.True(t, ok)
	assert.Equal(t, yml.OutputFormatJSON, f)
	assert.Equal(t, ".json", f.Extension())

	f, ok = yml.FormatFromPath("pet.yml")
	assert.True(t, ok)
	assert.Equal(t, ".yaml", f.Extension())

	_, ok = yml.FormatFromPath("pet")
	assert.False(t, ok)
}
