package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"dat-manager/core/reconcile"
	"dat-manager/feature/catalog"
	"dat-manager/feature/update"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	updateReq       update.Request
	updateMode      string
	updateOut       string
	updateToStorage bool
	updateJSON      bool
)

// updateCmd runs one reconcile mode over local, storage or database catalogs.
var updateCmd = &cobra.Command{
	Use:   "update <mode> <inputs...>",
	Short: "Merge, diff or split DAT catalogs",
	Long: `Runs one reconcile mode over the given inputs and writes the resulting catalogs.

Inputs and bases may be files, directories, s3://key, s3://prefix/ or db://name.

Modes: ` + modeNames() + `

Examples:
  # Merge a directory of DATs into one deduplicated catalog
  update merge dats/ --dedupe full

  # Remove everything already present in a base catalog
  update against new/ --base db://Nintendo

  # Write outputs to object storage instead of --out
  update cascade a.dat b.dat c.dat --to-storage`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpdate,
}

func modeNames() string {
	names := make([]string, 0, len(update.Modes))
	for _, m := range update.Modes {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

func init() {
	f := updateCmd.Flags()
	f.StringSliceVar(&updateReq.Bases, "base", nil, "Base catalogs for against and base-replace modes")
	f.StringVar(&updateReq.Name, "name", "", "Name of the combined catalog")
	f.StringVar(&updateReq.Description, "description", "", "Description of the combined catalog")
	f.StringVar(&updateReq.Key, "key", "", "Bucketing key (crc, md5, sha1, sha256, sha384, sha512, machine)")
	f.BoolVar(&updateReq.Strict, "strict", false, "Treat items as duplicates only when every hash kind of the item type is present and equal")
	f.BoolVar(&updateReq.SuperDAT, "superdat", false, "Prefix machine names with their input path")
	f.StringVar(&updateReq.Dedupe, "dedupe", "", "Deduplication mode (none, internal, full)")
	f.BoolVar(&updateReq.SkipFirst, "skip-first", false, "Do not write the first cascade output")
	f.BoolVar(&updateReq.ByGame, "by-game", false, "Match against bases by machine instead of item")
	f.StringSliceVar(&updateReq.Fields, "field", nil, "Fields copied by base-replace")
	f.BoolVar(&updateReq.OnlySame, "only-same", false, "Only replace blank fields in base-replace")
	f.StringSliceVar(&updateReq.Extensions, "ext", nil, "Extensions matched by split")
	f.StringVar(&updateReq.Format, "format", "", "Output format (defaults to RECONCILE_OUTPUT_FORMAT)")
	f.StringVar(&updateReq.Prefix, "prefix", "", "Prefix for output file names")
	f.BoolVar(&updateReq.IgnoreBlanks, "ignore-blanks", false, "Skip blank placeholders in outputs")
	f.BoolVar(&updateReq.DryRun, "dry-run", false, "Plan without writing")
	f.BoolVar(&updateReq.Clean, "clean", false, "Remove earlier storage outputs first (with --to-storage)")
	f.StringVar(&updateOut, "out", "", "Output directory (defaults to RECONCILE_OUTPUT_DIR)")
	f.BoolVar(&updateToStorage, "to-storage", false, "Write outputs to object storage")
	f.BoolVar(&updateJSON, "json", false, "Print the run summary as JSON")

	RootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	mode, err := update.ParseMode(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q (expected one of %s)", err, args[0], modeNames())
	}

	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	req := updateReq
	req.Mode = mode
	req.Inputs = args[1:]

	svc, err := newUpdateService(ctx, rt, req, updateToStorage)
	if err != nil {
		return err
	}

	resp, err := svc.Run(ctx, req, outputSink(rt, updateOut, updateToStorage))
	if err != nil {
		return err
	}
	return printResponse(resp, updateJSON)
}

// newUpdateService wires only the backends the request refers to.
func newUpdateService(ctx context.Context, rt *env, req update.Request, toStorage bool) (*update.Service, error) {
	opts := update.Options{
		Bucket:       rt.cfg.Storage.Bucket,
		OutputPrefix: rt.cfg.Storage.OutputPrefix,
		Reconcile:    rt.cfg.Reconcile,
		Logger:       rt.logger,
	}
	if toStorage || usesScheme(req, update.S3Scheme) {
		opts.Client = rt.openStorage()
	}
	if usesScheme(req, catalog.Scheme) {
		catalogs, err := rt.openCatalogs(ctx, rt.openDatabase())
		if err != nil {
			return nil, err
		}
		opts.Catalogs = catalogs.Loader()
	}
	return update.NewService(opts), nil
}

// outputSink returns nil for storage runs so the service writes objects.
func outputSink(rt *env, dir string, toStorage bool) reconcile.Sink {
	if toStorage {
		return nil
	}
	if dir == "" {
		dir = rt.cfg.Reconcile.OutputDir
	}
	rt.logger.Info("Writing outputs", zap.String("dir", dir))
	return reconcile.DirSink{Dir: dir}
}

func printResponse(resp *update.Response, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Printf("\n=== %s ===\n", resp.Mode)
	for _, o := range resp.Outputs {
		fmt.Printf("%-40s items=%d removed=%d\n", o.Name, o.Items, o.Removed)
	}
	fmt.Printf("Inputs: %d\n", resp.Summary.Inputs)
	fmt.Printf("Written: %d\n", resp.Written)
	fmt.Printf("Execution Time: %s\n", resp.Duration)
	return nil
}

func usesScheme(req update.Request, scheme string) bool {
	for _, p := range append(append([]string{}, req.Inputs...), req.Bases...) {
		if strings.HasPrefix(p, scheme) {
			return true
		}
	}
	return false
}
