package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gogpu/fingerprint"
	"github.com/gogpu/fingerprint/backend"
	"github.com/gogpu/fingerprint/hostenv"
)

const backendAuto = "auto"

// runFingerprint executes one pass on the configured backend and writes
// the result to stdout. Notices go to stderr.
func runFingerprint(ctx context.Context, cfg *Config, stdout, stderr io.Writer) error {
	if err := validFormat(cfg.Format); err != nil {
		return err
	}
	digest, err := fingerprint.DigestByName(cfg.Digest)
	if err != nil {
		return err
	}
	readback, err := fingerprint.ParseReadbackMode(cfg.Readback)
	if err != nil {
		return err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", cfg.Width, cfg.Height)
	}

	b, err := initBackend(cfg.Backend)
	if err != nil {
		return err
	}
	defer b.Close()

	surface, err := b.NewSurface(cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}

	opts := []fingerprint.Option{
		fingerprint.WithEnvironment(environmentProvider(cfg)),
		fingerprint.WithDigest(digest),
		fingerprint.WithReadback(readback),
		fingerprint.WithAssetTimeout(cfg.Timeout),
		fingerprint.WithNotifier(fingerprint.NotifierFunc(func(n fingerprint.Notice) {
			fmt.Fprintf(stderr, "warning: %s\n", n.Message)
		})),
	}
	if cfg.Asset != "" {
		opts = append(opts, fingerprint.WithAsset(fingerprint.FileAsset(cfg.Asset)))
	}

	fp := fingerprint.New(surface, opts...)
	res := fp.RunAndPublish(ctx, fingerprint.PublisherFunc(func(r fingerprint.Result) {
		if r.IsPending() && cfg.Format == formatText {
			fmt.Fprintln(stderr, fingerprint.Pending)
		}
	}))
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeResult(stdout, cfg.Format, res)
}

// initBackend initializes the named backend, or the best available one
// for "auto".
func initBackend(name string) (backend.RenderBackend, error) {
	if name == "" || name == backendAuto {
		return backend.InitDefault()
	}
	if !backend.IsRegistered(name) {
		return nil, fmt.Errorf("%w: %q (registered: %v)", backend.ErrBackendNotAvailable, name, backend.Available())
	}
	return backend.Init(name)
}

// environmentProvider returns the host provider with cfg's overrides.
func environmentProvider(cfg *Config) fingerprint.EnvironmentProvider {
	var opts []hostenv.Option
	if cfg.Screen != "" {
		opts = append(opts, hostenv.WithScreen(cfg.Screen))
	}
	if cfg.Platform != "" {
		opts = append(opts, hostenv.WithPlatform(cfg.Platform))
	}
	if cfg.Timezone != "" {
		opts = append(opts, hostenv.WithTimezone(cfg.Timezone))
	}
	return hostenv.New(opts...)
}
