package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gpucache/pipecache/internal/replayer"
	"github.com/gpucache/pipecache/internal/resource"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Input string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a serialized recorder payload and report acceptance",
		Long: `Parse a serialized recorder payload and replay it against a reporting sink
that re-verifies every object's content hash and reports which objects were
accepted or rejected.

Exit codes:
  0 - every object in the payload was accepted
  1 - one or more objects were rejected
  2 - command error (file not found, malformed payload, etc.)

Example:
  pipecache replay --input ./capture.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "path to a serialized recorder payload (required)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// reportingSink is a Sink that accepts every object unconditionally,
// handing out sequential placeholder handles. It exists so the replay
// subcommand can exercise re-verification end to end without a real driver
// on the other end.
type reportingSink struct {
	next resource.Handle
}

func (s *reportingSink) handle() resource.Handle {
	s.next++
	return s.next
}

func (s *reportingSink) AcceptSampler(resource.Hash, resource.Sampler) (resource.Handle, error) {
	return s.handle(), nil
}
func (s *reportingSink) AcceptDescriptorSetLayout(resource.Hash, resource.DescriptorSetLayout) (resource.Handle, error) {
	return s.handle(), nil
}
func (s *reportingSink) AcceptPipelineLayout(resource.Hash, resource.PipelineLayout) (resource.Handle, error) {
	return s.handle(), nil
}
func (s *reportingSink) AcceptShaderModule(resource.Hash, resource.ShaderModule) (resource.Handle, error) {
	return s.handle(), nil
}
func (s *reportingSink) AcceptRenderPass(resource.Hash, resource.RenderPass) (resource.Handle, error) {
	return s.handle(), nil
}
func (s *reportingSink) AcceptComputePipeline(resource.Hash, resource.ComputePipeline) (resource.Handle, error) {
	return s.handle(), nil
}
func (s *reportingSink) AcceptGraphicsPipeline(resource.Hash, resource.GraphicsPipeline) (resource.Handle, error) {
	return s.handle(), nil
}
func (s *reportingSink) AcceptApplicationInfo(resource.Hash, resource.ApplicationInfo) (resource.Handle, error) {
	return s.handle(), nil
}
func (s *reportingSink) AcceptPhysicalDeviceFeatures(resource.Hash, resource.PhysicalDeviceFeatures) (resource.Handle, error) {
	return s.handle(), nil
}

type replayObjectResult struct {
	Kind     string `json:"kind"`
	Hash     string `json:"hash"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}

type replaySummary struct {
	Objects  []replayObjectResult `json:"objects"`
	Accepted int                  `json:"accepted"`
	Rejected int                  `json:"rejected"`
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	res, err := replayer.Replay(data, &reportingSink{})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse payload", err)
	}

	summary := replaySummary{Accepted: res.Accepted(), Rejected: res.Rejected()}
	for _, o := range res.Objects {
		r := replayObjectResult{Kind: o.Kind.String(), Hash: o.Hash.String(), Accepted: o.Accepted}
		if o.Err != nil {
			r.Error = o.Err.Error()
		}
		summary.Objects = append(summary.Objects, r)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		if err := formatter.Success(summary); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, o := range summary.Objects {
			status := "accepted"
			if !o.Accepted {
				status = "rejected: " + o.Error
			}
			fmt.Fprintf(w, "%s %s: %s\n", o.Kind, o.Hash, status)
		}
		fmt.Fprintf(w, "\n%d accepted, %d rejected\n", summary.Accepted, summary.Rejected)
	}

	if summary.Rejected > 0 {
		return NewExitError(ExitFailure, "one or more objects were rejected during replay")
	}
	return nil
}
