package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpucache/pipecache/internal/recorder"
	"github.com/gpucache/pipecache/internal/resource"
)

// RecordDemoOptions holds flags for the record-demo command.
type RecordDemoOptions struct {
	*RootOptions
	Output string
}

// NewRecordDemoCommand creates the record-demo command. Unlike dump/replay/
// merge, which all operate on data produced elsewhere, record-demo drives
// internal/recorder directly: it interns a small fixed set of descriptors and
// writes the serialized result, giving both internal/recorder and
// internal/config a real CLI entry point (§4.7).
func NewRecordDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordDemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record-demo",
		Short: "Record a small fixed set of descriptors and serialize them",
		Long: `Intern a sampler, a shader module, and a descriptor set layout referencing the
sampler, then write the resulting serialized document to --output. The log
level the Recorder reports rejections at is taken from the config's logLevel
(§4.8).

Example:
  pipecache record-demo --output ./demo.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordDemo(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Output, "output", "demo.json", "path to write the serialized document to")

	return cmd
}

func parseLogLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func runRecordDemo(opts *RecordDemoOptions, cmd *cobra.Command) error {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLogLevel(opts.Config.LogLevel),
	}))

	r := recorder.New(recorder.WithLogger(logger))

	const samplerHandle resource.Handle = 1
	if err := r.RecordSampler(samplerHandle, resource.Sampler{
		MagFilter: 1,
		MinFilter: 1,
		MinLod:    0,
		MaxLod:    1,
	}); err != nil {
		return WrapExitError(ExitCommandError, "failed to record sampler", err)
	}

	const shaderHandle resource.Handle = 2
	if err := r.RecordShaderModule(shaderHandle, resource.ShaderModule{
		Code: []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00},
	}); err != nil {
		return WrapExitError(ExitCommandError, "failed to record shader module", err)
	}

	const dslHandle resource.Handle = 3
	if err := r.RecordDescriptorSetLayout(dslHandle, resource.DescriptorSetLayout{
		Bindings: []resource.DescriptorSetLayoutBinding{
			{
				Binding:           0,
				DescriptorType:    1,
				DescriptorCount:   1,
				StageFlags:        1,
				ImmutableSamplers: []resource.Handle{samplerHandle},
			},
		},
	}); err != nil {
		return WrapExitError(ExitCommandError, "failed to record descriptor set layout", err)
	}

	doc, err := r.Serialize()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to serialize recorder state", err)
	}

	if err := os.WriteFile(opts.Output, doc, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"output": opts.Output,
			"kinds": map[string]int{
				"sampler":             r.Len(resource.KindSampler),
				"shaderModule":        r.Len(resource.KindShaderModule),
				"descriptorSetLayout": r.Len(resource.KindDescriptorSetLayout),
			},
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "recorded 1 sampler, 1 shader module, 1 descriptor set layout -> %s\n", opts.Output)
	return nil
}
