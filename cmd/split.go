package cmd

import (
	"dat-manager/feature/update"

	"github.com/spf13/cobra"
)

var (
	splitExts      []string
	splitFormat    string
	splitOut       string
	splitToStorage bool
)

// splitCmd partitions catalogs by item extension.
var splitCmd = &cobra.Command{
	Use:   "split <inputs...>",
	Short: "Split DAT catalogs by file extension",
	Long: `Writes two catalogs per input: items whose name ends in one of the given
extensions and everything else.

Example:
  split redump/ --ext cue --ext bin`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		req := update.Request{
			Mode:       update.ModeSplit,
			Inputs:     args,
			Extensions: splitExts,
			Format:     splitFormat,
		}
		svc, err := newUpdateService(ctx, rt, req, splitToStorage)
		if err != nil {
			return err
		}

		resp, err := svc.Run(ctx, req, outputSink(rt, splitOut, splitToStorage))
		if err != nil {
			return err
		}
		return printResponse(resp, false)
	},
}

func init() {
	splitCmd.Flags().StringSliceVar(&splitExts, "ext", nil, "Extensions to split out")
	splitCmd.Flags().StringVar(&splitFormat, "format", "", "Output format")
	splitCmd.Flags().StringVarP(&splitOut, "out", "o", "", "Output directory")
	splitCmd.Flags().BoolVar(&splitToStorage, "to-storage", false, "Write outputs to object storage")
	_ = splitCmd.MarkFlagRequired("ext")

	RootCmd.AddCommand(splitCmd)
}
