// Package hostenv supplies the environment attributes of a fingerprint from
// the local host: display geometry, platform and timezone.
//
// Every probe is best effort. A value the host cannot supply is reported
// as an empty string, never as an error.
//
//	fp := fingerprint.New(surface, fingerprint.WithEnvironment(hostenv.New()))
package hostenv

import (
	"os"

	"github.com/gogpu/fingerprint"
)

// Provider implements fingerprint.EnvironmentProvider for the local host.
type Provider struct {
	root      string
	lookupEnv func(string) (string, bool)
	platform  func() string

	screen     *string
	platformID *string
	timezone   *string
}

var _ fingerprint.EnvironmentProvider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithRoot makes the provider read /sys and /etc below root instead of the
// filesystem root.
func WithRoot(root string) Option {
	return func(p *Provider) {
		p.root = root
	}
}

// WithScreen fixes the screen attribute.
func WithScreen(screen string) Option {
	return func(p *Provider) {
		p.screen = &screen
	}
}

// WithPlatform fixes the platform attribute.
func WithPlatform(platform string) Option {
	return func(p *Provider) {
		p.platformID = &platform
	}
}

// WithTimezone fixes the timezone attribute.
func WithTimezone(tz string) Option {
	return func(p *Provider) {
		p.timezone = &tz
	}
}

// New creates a host provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		root:      "/",
		lookupEnv: os.LookupEnv,
		platform:  hostPlatform,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Screen returns the geometry of the first connected display as
// "WIDTHxHEIGHTxDEPTH", or "" when no display is found.
func (p *Provider) Screen() string {
	if p.screen != nil {
		return *p.screen
	}
	s, ok := drmScreen(p.path("sys/class/drm"))
	if !ok {
		fingerprint.Logger().Debug("hostenv: no connected display found")
		return ""
	}
	return s.String()
}

// Platform returns the platform identifier, for example "Linux x86_64".
func (p *Provider) Platform() string {
	if p.platformID != nil {
		return *p.platformID
	}
	return p.platform()
}

// Timezone returns the IANA name of the host timezone.
func (p *Provider) Timezone() string {
	if p.timezone != nil {
		return *p.timezone
	}
	return p.resolveTimezone()
}
