// Command fingerprint renders a device fingerprint on the local host and
// prints its identifiers.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gogpu/fingerprint"
	"github.com/gogpu/fingerprint/backend"
	_ "github.com/gogpu/fingerprint/backend/wgpu"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around cfg. Flags default to the
// values already in cfg.
func newRootCmd(cfg *Config, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "fingerprint",
		Short: "Compute a rendering-based device fingerprint",
		Long: `Compute a rendering-based device fingerprint.

A reference image is drawn as a textured quad on a GPU (or the software
rasterizer), read back, and hashed together with the GPU identity and the
host's screen, platform and timezone.

Every flag can also be set with a FINGERPRINT_ environment variable, for
example FINGERPRINT_BACKEND=software or FINGERPRINT_FORMAT=json.

Examples:
  fingerprint
  fingerprint run --backend software --format json
  fingerprint backends
  fingerprint env --format yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if cfg.Verbose {
				fingerprint.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFingerprint(cmd.Context(), cfg, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.Format, "format", cfg.Format, "output format: text, json or yaml")
	pf.StringVar(&cfg.Screen, "screen", cfg.Screen, "screen attribute override (WIDTHxHEIGHTxDEPTH)")
	pf.StringVar(&cfg.Platform, "platform", cfg.Platform, "platform attribute override")
	pf.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "timezone attribute override")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log pipeline details to stderr")

	run := &cobra.Command{
		Use:   "run",
		Short: "Render the fingerprint and print the result (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFingerprint(cmd.Context(), cfg, stdout, stderr)
		},
	}
	for _, c := range []*cobra.Command{root, run} {
		f := c.Flags()
		f.StringVar(&cfg.Backend, "backend", cfg.Backend, "render backend: auto, "+backend.BackendSoftware+" or "+backend.BackendWGPU)
		f.IntVar(&cfg.Width, "width", cfg.Width, "surface width in pixels")
		f.IntVar(&cfg.Height, "height", cfg.Height, "surface height in pixels")
		f.StringVar(&cfg.Asset, "asset", cfg.Asset, "reference image file (default: embedded image)")
		f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "reference image load timeout (0 waits indefinitely)")
		f.StringVar(&cfg.Digest, "digest", cfg.Digest, "digest: sha256, sha3-256 or blake3")
		f.StringVar(&cfg.Readback, "readback", cfg.Readback, "readback rectangle: swapped or exact")
	}

	root.AddCommand(run, newBackendsCmd(stdout), newEnvCmd(cfg, stdout))
	return root
}

func newBackendsCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered render backends in priority order",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, name := range backend.Available() {
				if _, err := fmt.Fprintln(stdout, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newEnvCmd(cfg *Config, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the collected host environment attributes",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := validFormat(cfg.Format); err != nil {
				return err
			}
			e := fingerprint.CollectEnvironment(environmentProvider(cfg))
			return writeEnvironment(stdout, cfg.Format, e)
		},
	}
}
