package fingerprint

import "time"

// Option configures a Fingerprinter during creation.
//
// Example:
//
//	fp := fingerprint.New(surface,
//	    fingerprint.WithEnvironment(hostenv.New()),
//	    fingerprint.WithAssetTimeout(5*time.Second),
//	)
type Option func(*options)

// options holds optional configuration for a Fingerprinter.
type options struct {
	env          EnvironmentProvider
	asset        Asset
	notifier     Notifier
	digest       Digest
	readback     ReadbackMode
	assetTimeout time.Duration
}

// defaultOptions returns the default Fingerprinter options.
func defaultOptions() options {
	return options{
		asset:        DefaultAsset(),
		notifier:     logNotifier{},
		digest:       DigestSHA256,
		readback:     ReadbackSwapped,
		assetTimeout: DefaultAssetTimeout,
	}
}

// WithEnvironment sets the provider of screen, platform and timezone.
// Without it those fields are empty.
func WithEnvironment(p EnvironmentProvider) Option {
	return func(o *options) {
		o.env = p
	}
}

// WithAsset replaces the bundled reference image.
func WithAsset(a Asset) Option {
	return func(o *options) {
		if a != nil {
			o.asset = a
		}
	}
}

// WithNotifier sets where degraded-mode notices go. The default writes
// them to Logger() at warn level.
func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithDigest selects the hash for renderId and uniqueId.
func WithDigest(d Digest) Option {
	return func(o *options) {
		if d != nil {
			o.digest = d
		}
	}
}

// WithReadback selects the readback rectangle. The default,
// ReadbackSwapped, matches reference fingerprints.
func WithReadback(m ReadbackMode) Option {
	return func(o *options) {
		o.readback = m
	}
}

// WithAssetTimeout bounds the wait for the reference image. Zero disables
// the bound; the context passed to Run still applies.
func WithAssetTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.assetTimeout = d
		}
	}
}
