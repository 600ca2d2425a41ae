package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Fingerprinter runs fingerprinting passes against one surface.
// Passes are serialized; a Fingerprinter is safe for concurrent use.
type Fingerprinter struct {
	mu      sync.Mutex
	surface Surface
	opts    options
	gen     Generator
}

// New creates a Fingerprinter for surface. A nil surface is valid and
// yields degraded results.
func New(surface Surface, opts ...Option) *Fingerprinter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Fingerprinter{
		surface: surface,
		opts:    o,
		gen: Generator{
			Asset:        o.asset,
			Readback:     o.readback,
			AssetTimeout: o.assetTimeout,
		},
	}
}

// Run performs one pass and returns its result. Run always returns a
// Result: failures empty the affected fields and raise a notice instead.
func (f *Fingerprinter) Run(ctx context.Context) Result {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := &passState{notifier: f.opts.notifier}

	env := CollectEnvironment(f.opts.env)

	c, width, height := f.acquire(p)

	gpuID, err := GPUIdentity(c)
	if errors.Is(err, ErrDebugInfoUnavailable) {
		p.notify(NoticeDebugInfoUnavailable, err)
	}

	payload, err := f.gen.Generate(ctx, c, width, height)
	switch {
	case err == nil, errors.Is(err, ErrContextUnavailable):
	case errors.Is(err, ErrAssetStalled):
		p.notify(NoticeAssetStalled, err)
	default:
		p.notify(NoticeRenderFailed, err)
	}

	res := Aggregate(Inputs{GPUID: gpuID, Payload: payload, Environment: env}, f.opts.digest)
	res.Degraded = p.kinds

	Logger().Debug("fingerprint: pass complete",
		"uniqueId", res.UniqueID,
		"renderId", res.RenderID,
		"degraded", len(res.Degraded))
	return res
}

// RunAndPublish publishes PendingResult, runs a pass and publishes its
// result, which it also returns.
func (f *Fingerprinter) RunAndPublish(ctx context.Context, pub Publisher) Result {
	if pub != nil {
		pub.Publish(PendingResult())
	}
	res := f.Run(ctx)
	if pub != nil {
		pub.Publish(res)
	}
	return res
}

// acquire obtains the rendering context once per pass so that a missing
// context raises a single notice.
func (f *Fingerprinter) acquire(p *passState) (Context, int, int) {
	if f.surface == nil {
		p.notify(NoticeContextUnavailable, ErrContextUnavailable)
		return nil, 0, 0
	}
	c, err := f.surface.Context()
	if err == nil && c == nil {
		err = ErrContextUnavailable
	}
	if err != nil {
		if !errors.Is(err, ErrContextUnavailable) {
			err = fmt.Errorf("%w: %w", ErrContextUnavailable, err)
		}
		p.notify(NoticeContextUnavailable, err)
		return nil, 0, 0
	}
	propagateLogger(c)
	return c, f.surface.Width(), f.surface.Height()
}

// passState collects the notices raised during one pass.
type passState struct {
	notifier Notifier
	kinds    []NoticeKind
}

func (p *passState) notify(kind NoticeKind, err error) {
	p.kinds = append(p.kinds, kind)
	p.notifier.Notify(Notice{Kind: kind, Message: noticeMessages[kind], Err: err})
}
