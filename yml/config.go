package yml

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/speakeasy-api/openapi-typemapper/errors"
)

// ErrUnsupportedFormat is returned when an output format name is not recognized.
const ErrUnsupportedFormat = errors.Error("unsupported output format")

type contextKey string

func (c contextKey) String() string {
	return "yml-context-key-" + string(c)
}

const configContextKey = contextKey("config")

type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat converts a user supplied format name into an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return OutputFormatJSON, nil
	case "yaml", "yml":
		return OutputFormatYAML, nil
	default:
		return "", ErrUnsupportedFormat.Wrap(errors.New(s))
	}
}

// FormatFromPath returns the output format implied by a file extension.
func FormatFromPath(path string) (OutputFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return OutputFormatJSON, true
	case ".yaml", ".yml":
		return OutputFormatYAML, true
	default:
		return "", false
	}
}

// Extension returns the file extension used when writing this format.
func (o OutputFormat) Extension() string {
	if o == OutputFormatJSON {
		return ".json"
	}
	return ".yaml"
}

type IndentationStyle string

const (
	IndentationStyleSpace IndentationStyle = "space"
	IndentationStyleTab   IndentationStyle = "tab"
)

func (i IndentationStyle) ToIndent() string {
	switch i {
	case IndentationStyleSpace:
		return " "
	case IndentationStyleTab:
		return "\t"
	default:
		return ""
	}
}

type Config struct {
	Indentation      int              // The indentation level of the output
	IndentationStyle IndentationStyle // The indentation style of the output valid for JSON only
	OutputFormat     OutputFormat     // The output format to use when marshalling
	OriginalFormat   OutputFormat     // The format the input was detected as
}

var defaultConfig = &Config{
	Indentation:      2,
	IndentationStyle: IndentationStyleSpace,
	OutputFormat:     OutputFormatYAML,
}

func GetDefaultConfig() *Config {
	def := *defaultConfig
	return &def
}

func ContextWithConfig(ctx context.Context, config *Config) context.Context {
	if config == nil {
		return ctx
	}

	return context.WithValue(ctx, configContextKey, config)
}

func GetConfigFromContext(ctx context.Context) *Config {
	val := ctx.Value(configContextKey)
	if val == nil {
		return GetDefaultConfig()
	}

	cfg, ok := val.(*Config)
	if !ok {
		return GetDefaultConfig()
	}

	return cfg
}

// GetConfigFromData builds a config matching the format and indentation of the input document.
func GetConfigFromData(data []byte) *Config {
	cfg := GetDefaultConfig()

	cfg.OutputFormat, cfg.Indentation, cfg.IndentationStyle = inspectData(data)
	cfg.OriginalFormat = cfg.OutputFormat

	return cfg
}

func inspectData(data []byte) (OutputFormat, int, IndentationStyle) {
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))

	foundIndentation := false
	foundDocFormat := false

	indentation := 2
	indentationStyle := IndentationStyleSpace
	docFormat := OutputFormatYAML

	// Track the minimum leading whitespace to establish baseline
	minLeadingWhitespace := -1

	for i, line := range lines {
		trimLine := bytes.TrimSpace(line)

		if len(trimLine) == 0 {
			continue
		}

		switch trimLine[0] {
		case '#':
			continue
		case '{':
			docFormat = OutputFormatJSON
			foundDocFormat = true
		default:
			currentLeading := 0
			for currentLeading < len(line) && (line[currentLeading] == ' ' || line[currentLeading] == '\t') {
				currentLeading++
			}

			if minLeadingWhitespace == -1 || currentLeading < minLeadingWhitespace {
				minLeadingWhitespace = currentLeading
			}

			if currentLeading > minLeadingWhitespace && !foundIndentation {
				leadingWhitespace := line[minLeadingWhitespace:currentLeading]

				indentationStyle = IndentationStyleSpace
				if leadingWhitespace[0] == '\t' {
					indentationStyle = IndentationStyleTab
				}

				indentation = 0
				for _, ch := range leadingWhitespace {
					if ch != leadingWhitespace[0] {
						break
					}
					indentation++
				}
				foundIndentation = true
			}
		}

		// If we have found everything we need or have iterated too long we can stop
		if foundIndentation && (foundDocFormat || i > 10) {
			break
		}
	}
	return docFormat, indentation, indentationStyle
}
