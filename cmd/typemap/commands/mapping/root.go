// Package mapping holds the typemap commands: map, batch and validate.
package mapping

import (
	"runtime"

	"github.com/speakeasy-api/openapi-typemapper/cmd/typemap/commands/cmdutil"
	"github.com/spf13/cobra"
)

var mapCmd = &cobra.Command{
	Use:   "map [input-file|-] [output-file]",
	Short: "Map an annotated schema into a Swagger type descriptor",
	Long: `Map an annotated schema document into its Swagger 2.0 type descriptor.

The input is a YAML or JSON schema tree. Deactivated nodes are kept in the output
nested under the x-deactivated extension.

Output options:
- No output file specified: writes to stdout (pipe-friendly)
- Output file specified: writes to the specified file, in the format implied by its extension

Use '-' as the input file, or pipe the document, to read from stdin:
  cat pet.yaml | typemap map --format json

Use --select to map only part of a larger document:
  typemap map models.yaml --select '$.definitions.*'`,
	Args: cmdutil.StdinOrFileArgs(1, 2),
	RunE: runMap,
}

var batchCmd = &cobra.Command{
	Use:   "batch <input-file>... --out-dir <dir>",
	Short: "Map several schema documents concurrently",
	Long: `Map several schema documents into a directory.

Each input is written to <out-dir>/<name>` + OutputSuffix + `.<ext>, where the extension
follows --format, or else the input file extension. The first failing document
stops the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file|-]",
	Short: "Map a schema and validate the descriptor against the Swagger Schema Object",
	Long: `Map an annotated schema document and check the resulting descriptor against the
Swagger 2.0 Schema Object. Exits with a non-zero status when findings are reported.`,
	Args: cmdutil.StdinOrFileArgs(1, 1),
	RunE: runValidate,
}

var (
	mapOpts      = Options{}
	batchOpts    = BatchOptions{}
	validateOpts = Options{}
)

func init() {
	addMappingFlags(mapCmd, &mapOpts)
	mapCmd.Flags().StringVarP(&mapOpts.Format, "format", "f", "", "output format: json or yaml (default: output file extension, then input format)")
	mapCmd.Flags().IntVar(&mapOpts.Indent, "indent", -1, "indentation width (default: detected from the input)")
	mapCmd.Flags().BoolVar(&mapOpts.Validate, "validate", false, "validate the descriptor before writing it")

	addMappingFlags(batchCmd, &batchOpts.Options)
	batchCmd.Flags().StringVarP(&batchOpts.Format, "format", "f", "", "output format: json or yaml (default: input file extension)")
	batchCmd.Flags().IntVar(&batchOpts.Indent, "indent", -1, "indentation width (default: detected from each input)")
	batchCmd.Flags().BoolVar(&batchOpts.Validate, "validate", false, "validate each descriptor before writing it")
	batchCmd.Flags().StringVarP(&batchOpts.OutDir, "out-dir", "o", "", "directory the descriptors are written to")
	batchCmd.Flags().IntVarP(&batchOpts.Concurrency, "concurrency", "c", runtime.GOMAXPROCS(0), "maximum number of documents mapped at once")
	_ = batchCmd.MarkFlagRequired("out-dir")

	addMappingFlags(validateCmd, &validateOpts)
	validateOpts.Indent = -1
}

func addMappingFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().BoolVar(&opts.ParentActivated, "parent-activated", true, "treat the root schema as having activated ancestors")
	cmd.Flags().StringVar(&opts.Select, "select", "", "JSONPath expression selecting the schema nodes to map")
	cmd.Flags().BoolVar(&opts.LegacyJSONPath, "legacy-jsonpath", false, "evaluate --select with the legacy JSONPath syntax instead of RFC 9535")
}

// Apply registers the mapping commands on the provided parent command.
func Apply(rootCmd *cobra.Command) {
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	p := NewProcessor(cmdutil.InputFileFromArgs(args), cmdutil.ArgAt(args, 1, ""))
	return p.Map(cmd.Context(), mapOpts)
}

func runBatch(cmd *cobra.Command, args []string) error {
	return Batch(cmd.Context(), args, batchOpts, cmd.ErrOrStderr())
}

func runValidate(cmd *cobra.Command, args []string) error {
	p := NewProcessor(cmdutil.InputFileFromArgs(args), "")
	return p.Validate(cmd.Context(), validateOpts)
}
