// Package cli wires the pipecache command tree: a root command carrying
// global flags, plus one constructor function per subcommand, in the
// teacher's internal/cli idiom (§4.7).
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpucache/pipecache/internal/config"
)

// RootOptions holds flags and loaded configuration shared by every
// subcommand.
type RootOptions struct {
	Format     string // "json" | "text"
	ConfigPath string
	Config     config.Config // populated by PersistentPreRunE, from ConfigPath (§4.8)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pipecache CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pipecache",
		Short: "pipecache - GPU pipeline-state capture, replay, and archive",
		Long:  "Deterministically hashes, records, and replays GPU pipeline-creation descriptors against a content-addressed archive.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "pipecache.yaml", "path to a YAML config file (defaults applied if absent)")

	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewMergeCommand(opts))
	cmd.AddCommand(NewRecordDemoCommand(opts))

	return cmd
}

// isValidFormat checks if format is one of ValidFormats.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
