package mapping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/speakeasy-api/openapi-typemapper/cmd/typemap/commands/cmdutil"
	"github.com/speakeasy-api/openapi-typemapper/render"
	"github.com/speakeasy-api/openapi-typemapper/schema"
	"github.com/speakeasy-api/openapi-typemapper/selector"
	"github.com/speakeasy-api/openapi-typemapper/system"
	"github.com/speakeasy-api/openapi-typemapper/typemap"
	"github.com/speakeasy-api/openapi-typemapper/validate"
	"github.com/speakeasy-api/openapi-typemapper/yml"
	"gopkg.in/yaml.v3"
)

var errNoMatches = errors.New("no schema nodes matched the selection")

// Options are the mapping settings shared by every command.
type Options struct {
	// Format overrides the output format. Empty keeps the format implied by the output file or the input.
	Format string
	// Indent overrides the indentation detected on the input when not negative.
	Indent          int
	ParentActivated bool
	Validate        bool
	// Select is a JSONPath expression picking the schema nodes to map. Empty maps the whole document.
	Select         string
	LegacyJSONPath bool
}

func (o Options) query() (selector.Queryable, error) {
	if o.Select == "" {
		return nil, nil
	}

	syntax := selector.SyntaxRFC9535
	if o.LegacyJSONPath {
		syntax = selector.SyntaxLegacy
	}

	return selector.NewPath(o.Select, syntax)
}

// Source is a loaded input document along with the layout it was written in.
type Source struct {
	Document *yaml.Node
	Config   *yml.Config
}

// LoadSource parses a YAML or JSON document.
func LoadSource(ctx context.Context, r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, schema.ErrInvalidInput.Wrap(err)
	}

	return &Source{Document: &doc, Config: yml.GetConfigFromData(data)}, nil
}

// Schemas decodes the schema nodes to map: the nodes matched by q, or the whole document when q is nil.
func (s *Source) Schemas(ctx context.Context, q selector.Queryable) ([]*schema.Node, error) {
	if q == nil {
		node, err := schema.UnmarshalNode(ctx, s.Document)
		if err != nil {
			return nil, err
		}
		return []*schema.Node{node}, nil
	}

	nodes, err := selector.Select(ctx, s.Document, q)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errNoMatches
	}

	return nodes, nil
}

// MapSchemas maps each node. A single node yields its descriptor, several yield a list in the same order.
func MapSchemas(nodes []*schema.Node, parentActivated bool) any {
	values := make([]any, 0, len(nodes))
	for _, node := range nodes {
		values = append(values, typemap.MapType(node, parentActivated))
	}

	if len(values) == 1 {
		return values[0]
	}
	return values
}

// validateMapped returns the findings for a value produced by MapSchemas.
func validateMapped(ctx context.Context, value any) []error {
	values, ok := value.([]any)
	if !ok {
		return validate.Descriptor(ctx, value)
	}

	var findings []error
	for i, v := range values {
		for _, err := range validate.Descriptor(ctx, v) {
			findings = append(findings, fmt.Errorf("selected schema %d: %w", i, err))
		}
	}
	return findings
}

// outputConfig starts from the layout of the input, then applies the output file extension and the flags.
func outputConfig(detected *yml.Config, outputFile string, opts Options) (*yml.Config, error) {
	cfg := *detected

	if format, ok := yml.FormatFromPath(outputFile); ok {
		cfg.OutputFormat = format
	}

	if opts.Format != "" {
		format, err := yml.ParseOutputFormat(opts.Format)
		if err != nil {
			return nil, err
		}
		cfg.OutputFormat = format
	}

	if opts.Indent >= 0 {
		cfg.Indentation = opts.Indent
	}

	return &cfg, nil
}

// Processor handles reading a schema document and writing its mapping.
type Processor struct {
	InputFile     string
	OutputFile    string
	ReadFromStdin bool
	WriteToStdout bool

	// Optional overrides for testing. When nil, os.Stdin, os.Stdout, os.Stderr and the OS file system are used.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	FS     system.WritableVirtualFS
}

// NewProcessor creates a processor for the given files. Pass "-" as inputFile to read from stdin
// and an empty outputFile to write to stdout.
func NewProcessor(inputFile, outputFile string) *Processor {
	return &Processor{
		InputFile:     inputFile,
		OutputFile:    outputFile,
		ReadFromStdin: cmdutil.IsStdin(inputFile),
		WriteToStdout: outputFile == "",
	}
}

func (p *Processor) stdin() io.Reader {
	if p.Stdin != nil {
		return p.Stdin
	}
	return os.Stdin
}

func (p *Processor) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

func (p *Processor) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}

func (p *Processor) fs() system.WritableVirtualFS {
	if p.FS != nil {
		return p.FS
	}
	return &system.FileSystem{}
}

// Load reads the input document from the input file or stdin.
func (p *Processor) Load(ctx context.Context) (*Source, error) {
	var reader io.ReadCloser

	if p.ReadFromStdin {
		fmt.Fprintf(p.stderr(), "Processing schema document from stdin\n")
		reader = io.NopCloser(p.stdin())
	} else {
		cleanInputFile := filepath.Clean(p.InputFile)
		fmt.Fprintf(p.stderr(), "Processing schema document: %s\n", cleanInputFile)

		f, err := p.fs().Open(cleanInputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		reader = f
	}
	defer reader.Close()

	src, err := LoadSource(ctx, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema document: %w", err)
	}

	return src, nil
}

// Write renders value to the output destination using the config carried by ctx.
func (p *Processor) Write(ctx context.Context, value any) error {
	if p.WriteToStdout {
		return render.Write(ctx, value, p.stdout())
	}

	cleanOutputFile := filepath.Clean(p.OutputFile)

	data, err := render.Bytes(ctx, value)
	if err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}

	if err := p.fs().WriteFile(cleanOutputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(p.stderr(), "📄 Descriptor written to: %s\n", cleanOutputFile)

	return nil
}

// ReportFindings lists validation findings on stderr.
func (p *Processor) ReportFindings(findings []error) {
	fmt.Fprintf(p.stderr(), "❌ Descriptor is invalid - %d errors:\n\n", len(findings))
	for i, finding := range findings {
		fmt.Fprintf(p.stderr(), "%d. %s\n", i+1, finding.Error())
	}
}

// PrintSuccess prints a success message to stderr.
func (p *Processor) PrintSuccess(message string) {
	fmt.Fprintf(p.stderr(), "✅ %s\n", message)
}

// Map loads the input, maps the selected schema nodes and writes the result.
func (p *Processor) Map(ctx context.Context, opts Options) error {
	src, err := p.Load(ctx)
	if err != nil {
		return err
	}

	q, err := opts.query()
	if err != nil {
		return err
	}

	nodes, err := src.Schemas(ctx, q)
	if err != nil {
		return err
	}

	cfg, err := outputConfig(src.Config, p.OutputFile, opts)
	if err != nil {
		return err
	}

	value := MapSchemas(nodes, opts.ParentActivated)

	if opts.Validate {
		if findings := validateMapped(ctx, value); len(findings) > 0 {
			p.ReportFindings(findings)
			return errors.New("descriptor validation failed")
		}
	}

	return p.Write(yml.ContextWithConfig(ctx, cfg), value)
}

// Validate loads the input, maps the selected schema nodes and reports the findings against the Swagger Schema Object.
func (p *Processor) Validate(ctx context.Context, opts Options) error {
	src, err := p.Load(ctx)
	if err != nil {
		return err
	}

	q, err := opts.query()
	if err != nil {
		return err
	}

	nodes, err := src.Schemas(ctx, q)
	if err != nil {
		return err
	}

	findings := validateMapped(ctx, MapSchemas(nodes, opts.ParentActivated))
	if len(findings) == 0 {
		p.PrintSuccess("Descriptor is valid - 0 errors")
		return nil
	}

	p.ReportFindings(findings)

	return errors.New("descriptor validation failed")
}
