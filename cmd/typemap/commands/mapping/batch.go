package mapping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/speakeasy-api/openapi-typemapper/system"
	"github.com/speakeasy-api/openapi-typemapper/yml"
	"golang.org/x/sync/errgroup"
)

// OutputSuffix is inserted between the input file name and the extension of batch outputs.
const OutputSuffix = ".swagger"

// BatchOptions configure mapping several documents at once.
type BatchOptions struct {
	Options
	OutDir      string
	Concurrency int
	// FS overrides the OS file system inputs are read from and outputs are written to.
	FS system.WritableVirtualFS
}

// OutputName returns the name a batch writes the mapping of input under: the input base name without
// its extension, followed by OutputSuffix and the extension of format.
func OutputName(input string, format yml.OutputFormat) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + OutputSuffix + format.Extension()
}

// batchFormat picks the output format of one input: the --format flag, then the input file extension, then YAML.
func batchFormat(input string, opts Options) (yml.OutputFormat, error) {
	if opts.Format != "" {
		return yml.ParseOutputFormat(opts.Format)
	}
	if format, ok := yml.FormatFromPath(input); ok {
		return format, nil
	}
	return yml.OutputFormatYAML, nil
}

type batchJob struct {
	input  string
	output string
}

func planBatch(files []string, opts BatchOptions) ([]batchJob, error) {
	if opts.OutDir == "" {
		return nil, errors.New("an output directory is required")
	}
	if len(files) == 0 {
		return nil, errors.New("no input files given")
	}

	jobs := make([]batchJob, 0, len(files))
	seen := make(map[string]string, len(files))

	for _, file := range files {
		format, err := batchFormat(file, opts.Options)
		if err != nil {
			return nil, err
		}

		output := filepath.Join(opts.OutDir, OutputName(file, format))
		if previous, ok := seen[output]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", previous, file, output)
		}
		seen[output] = file

		jobs = append(jobs, batchJob{input: file, output: output})
	}

	return jobs, nil
}

// Batch maps every file into opts.OutDir, running at most opts.Concurrency mappings at once.
// The first failure cancels the mappings still pending.
func Batch(ctx context.Context, files []string, opts BatchOptions, stderr io.Writer) error {
	jobs, err := planBatch(files, opts)
	if err != nil {
		return err
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = &system.FileSystem{}
	}

	if err := fsys.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	out := &lockedWriter{w: stderr}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p := NewProcessor(job.input, job.output)
			p.Stderr = out
			p.FS = fsys

			if err := p.Map(ctx, opts.Options); err != nil {
				return fmt.Errorf("%s: %w", job.input, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Mapped %d documents into %s\n", len(jobs), filepath.Clean(opts.OutDir))

	return nil
}

// lockedWriter serializes the status lines of concurrent mappings.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.w == nil {
		return os.Stderr.Write(p)
	}
	return l.w.Write(p)
}
