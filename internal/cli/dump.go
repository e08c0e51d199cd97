package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpucache/pipecache/internal/archive"
	"github.com/gpucache/pipecache/internal/resource"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	ArchivePath string
	Kind        string
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "List the hashes stored in an archive",
		Long: `Open an archive read-only and print the hash list per resource kind.
With no --archive flag, the path defaults to the config's archivePath (§4.8).

Example:
  pipecache dump --archive ./pipecache.foz
  pipecache dump --archive ./pipecache.foz --kind sampler --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ArchivePath == "" {
				opts.ArchivePath = opts.Config.ArchivePath
			}
			return runDump(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ArchivePath, "archive", "", "path to the archive file (defaults to the config's archivePath)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "restrict output to one resource kind")

	return cmd
}

type dumpKindResult struct {
	Kind   string   `json:"kind"`
	Hashes []uint64 `json:"hashes"`
}

func runDump(opts *DumpOptions, cmd *cobra.Command) error {
	a := archive.New(opts.ArchivePath, archive.ReadOnly)
	if err := a.Prepare(); err != nil {
		return WrapExitError(ExitCommandError, "failed to open archive", err)
	}
	defer a.Close()

	kinds := resource.Kinds()
	if opts.Kind != "" {
		k, ok := parseKind(opts.Kind)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown kind %q", opts.Kind))
		}
		kinds = []resource.Kind{k}
	}

	results := make([]dumpKindResult, 0, len(kinds))
	for _, k := range kinds {
		hashes, err := a.HashList(k)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list hashes", err)
		}
		results = append(results, dumpKindResult{Kind: k.String(), Hashes: hashes})
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(results)
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(w, "%s: %d entries\n", r.Kind, len(r.Hashes))
		for _, h := range r.Hashes {
			fmt.Fprintf(w, "  %d\n", h)
		}
	}
	return nil
}

func parseKind(s string) (resource.Kind, bool) {
	for _, k := range resource.Kinds() {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
