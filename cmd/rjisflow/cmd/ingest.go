package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ams627/rjisflow/feed"
	"github.com/ams627/rjisflow/internal/config"
)

var (
	configPath      string
	compressionName string
	noFingerprint   bool
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [feed file]",
	Short: "Load a feed file and report index counts",
	Long: `Load an RJIS flow/fare feed file into memory and print the record
and index counts.

The feed file may be given as an argument or as feed.path in a YAML config
file. Compressed feeds (.gz, .zst, .s2, .lz4) are detected by extension
unless --compression overrides it.

Example:
  rjisflow ingest RJFAF499.FFL.gz
  rjisflow ingest --config rjisflow.yml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = *loaded
		}

		path := cfg.Feed.Path
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return errors.New("no feed file: pass one as an argument or set feed.path in the config")
		}

		name := compressionName
		if name == "" {
			name = cfg.Feed.Compression
		}
		compression, err := feed.ParseCompressionType(name)
		if err != nil {
			return err
		}

		fingerprint := true
		if cfg.Feed.Fingerprint != nil {
			fingerprint = *cfg.Feed.Fingerprint
		}
		if noFingerprint {
			fingerprint = false
		}

		_, stats, err := feed.ProcessFile(path,
			feed.WithCompression(compression),
			feed.WithFingerprint(fingerprint),
		)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "lines:        %d\n", stats.Lines)
		fmt.Fprintf(out, "flows:        %d\n", stats.Flows)
		fmt.Fprintf(out, "fares:        %d\n", stats.Fares)
		fmt.Fprintf(out, "skipped:      %d\n", stats.Skipped)
		fmt.Fprintf(out, "unique keys:  %d\n", stats.UniqueKeys)
		fmt.Fprintf(out, "flow buckets: %d\n", stats.FlowBuckets)
		if fingerprint {
			fmt.Fprintf(out, "fingerprint:  %016x\n", stats.Fingerprint)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	ingestCmd.Flags().StringVar(&compressionName, "compression", "", "feed compression: auto|none|gzip|zstd|s2|lz4")
	ingestCmd.Flags().BoolVar(&noFingerprint, "no-fingerprint", false, "skip the xxHash64 feed fingerprint")
}
