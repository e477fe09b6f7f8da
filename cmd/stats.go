package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"dat-manager/feature/update"

	"github.com/spf13/cobra"
)

var statsJSON bool

// statsCmd prints item counters for each catalog.
var statsCmd = &cobra.Command{
	Use:   "stats <inputs...>",
	Short: "Show statistics for DAT catalogs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		svc, err := newUpdateService(ctx, rt, update.Request{Inputs: args}, false)
		if err != nil {
			return err
		}
		stats, err := svc.Stats(ctx, args)
		if err != nil {
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		for _, s := range stats {
			fmt.Printf("\n=== %s ===\n", s.Name)
			fmt.Printf("Path: %s\n", s.Path)
			fmt.Printf("Machines: %d\n", s.Machines)
			fmt.Printf("Items: %d (removed %d)\n", s.Total, s.Removed)
			fmt.Printf("Total Size: %d\n", s.Size)

			keys := make([]string, 0, len(s.Counts))
			for k := range s.Counts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("  %-16s %d\n", k, s.Counts[k])
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")
	RootCmd.AddCommand(statsCmd)
}
