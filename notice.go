package fingerprint

import (
	"fmt"
)

// NoticeKind classifies a degradation that happened during a pass.
type NoticeKind uint8

const (
	// NoticeContextUnavailable means no rendering context was available;
	// gpuId and renderId are empty.
	NoticeContextUnavailable NoticeKind = iota + 1

	// NoticeDebugInfoUnavailable means the context hides its unmasked
	// vendor and renderer; gpuId is empty.
	NoticeDebugInfoUnavailable

	// NoticeAssetStalled means the reference image did not load in time;
	// renderId is empty.
	NoticeAssetStalled

	// NoticeRenderFailed means the reference image could not be decoded or
	// the context rejected the pass; renderId is empty.
	NoticeRenderFailed
)

var noticeKindNames = map[NoticeKind]string{
	NoticeContextUnavailable:   "context-unavailable",
	NoticeDebugInfoUnavailable: "debug-info-unavailable",
	NoticeAssetStalled:         "asset-stalled",
	NoticeRenderFailed:         "render-failed",
}

// String returns the kebab-case name of the kind.
func (k NoticeKind) String() string {
	if s, ok := noticeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NoticeKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k NoticeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NoticeKind) UnmarshalText(b []byte) error {
	for kind, name := range noticeKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("fingerprint: unknown notice kind %q", b)
}

// Notice is a user-visible degraded-mode signal.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

// Notifier delivers notices to the host. Notify is called synchronously
// from the pass and should return quickly.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

// logNotifier writes notices to the package logger. It is the default.
type logNotifier struct{}

func (logNotifier) Notify(n Notice) {
	Logger().Warn("fingerprint: "+n.Message, "kind", n.Kind.String(), "err", n.Err)
}

var noticeMessages = map[NoticeKind]string{
	NoticeContextUnavailable:   "unable to initialize a 3D rendering context; this machine may not support it",
	NoticeDebugInfoUnavailable: "rendering context does not expose the graphics driver identity",
	NoticeAssetStalled:         "reference image did not finish loading",
	NoticeRenderFailed:         "render pass failed",
}
