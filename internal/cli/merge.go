package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gpucache/pipecache/internal/archive"
)

// MergeOptions holds flags for the merge command.
type MergeOptions struct {
	*RootOptions
	Dest    string
	Buckets []string
}

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MergeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge writer bucket archives into one shared archive",
		Long: `Copy every record from the given bucket archives into dest.foz, keeping
only the first occurrence of each (kind, hash) pair in the order the buckets
were listed. With no --dest flag, the base path defaults to the config's
archivePath (§4.8), minus any trailing ".foz".

Example:
  pipecache merge --dest ./shared --bucket ./shared.1.foz --bucket ./shared.2.foz`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Dest == "" {
				opts.Dest = strings.TrimSuffix(opts.Config.ArchivePath, ".foz")
			}
			return runMerge(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dest, "dest", "", "destination base path, written to <dest>.foz (defaults to the config's archivePath)")
	cmd.Flags().StringArrayVar(&opts.Buckets, "bucket", nil, "source bucket path, may be given multiple times")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}

func runMerge(opts *MergeOptions, cmd *cobra.Command) error {
	if err := archive.Merge(opts.Dest, opts.Buckets); err != nil {
		return WrapExitError(ExitCommandError, "merge failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(map[string]string{"dest": opts.Dest + ".foz"})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "merged %d bucket(s) into %s.foz\n", len(opts.Buckets), opts.Dest)
	return nil
}
