package fingerprint

// Pending is the value every field of a Result holds before a pass
// completes.
const Pending = "Loading..."

// Result is the outcome of one fingerprinting pass. It is a plain value;
// a new one is built for every pass.
type Result struct {
	GPUID      string `json:"gpuId" yaml:"gpuId"`
	RenderID   string `json:"renderId" yaml:"renderId"`
	ScreenID   string `json:"screenId" yaml:"screenId"`
	PlatformID string `json:"platformId" yaml:"platformId"`
	TimezoneID string `json:"timezoneId" yaml:"timezoneId"`
	UniqueID   string `json:"uniqueId" yaml:"uniqueId"`

	// Degraded lists what went wrong during the pass, in order. It does not
	// feed any digest.
	Degraded []NoticeKind `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// PendingResult returns the placeholder published before a pass completes.
func PendingResult() Result {
	return Result{
		GPUID:      Pending,
		RenderID:   Pending,
		ScreenID:   Pending,
		PlatformID: Pending,
		TimezoneID: Pending,
		UniqueID:   Pending,
	}
}

// IsPending reports whether r is the pending placeholder.
func (r Result) IsPending() bool {
	return r.UniqueID == Pending && r.RenderID == Pending && r.GPUID == Pending
}

// IsDegraded reports whether any notice was raised during the pass.
func (r Result) IsDegraded() bool {
	return len(r.Degraded) > 0
}

// Publisher receives results. A Fingerprinter publishes the pending
// placeholder first and the final result second.
type Publisher interface {
	Publish(r Result)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(r Result)

// Publish calls f(r).
func (f PublisherFunc) Publish(r Result) { f(r) }
