package fingerprint

import "strconv"

// EnvironmentProvider supplies the host attributes that feed a fingerprint.
// Implementations return "" for values the host cannot supply and must not
// block.
type EnvironmentProvider interface {
	// Screen returns the display geometry as "WIDTHxHEIGHTxCOLORDEPTH".
	Screen() string

	// Platform returns the host platform identifier.
	Platform() string

	// Timezone returns the resolved IANA timezone name.
	Timezone() string
}

// Environment is a snapshot of the three environment attributes. It also
// serves as a fixed EnvironmentProvider.
type Environment struct {
	ScreenID   string `json:"screenId" yaml:"screenId"`
	PlatformID string `json:"platformId" yaml:"platformId"`
	TimezoneID string `json:"timezoneId" yaml:"timezoneId"`
}

// Screen implements EnvironmentProvider.
func (e Environment) Screen() string { return e.ScreenID }

// Platform implements EnvironmentProvider.
func (e Environment) Platform() string { return e.PlatformID }

// Timezone implements EnvironmentProvider.
func (e Environment) Timezone() string { return e.TimezoneID }

// CollectEnvironment reads all three attributes from p. A nil provider
// yields an empty environment.
func CollectEnvironment(p EnvironmentProvider) Environment {
	if p == nil {
		return Environment{}
	}
	return Environment{
		ScreenID:   p.Screen(),
		PlatformID: p.Platform(),
		TimezoneID: p.Timezone(),
	}
}

// Screen is display geometry.
type Screen struct {
	Width      int
	Height     int
	ColorDepth int
}

// String formats the geometry as "WIDTHxHEIGHTxCOLORDEPTH", or "" when the
// width or height is unknown.
func (s Screen) String() string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}
	b := make([]byte, 0, 16)
	b = strconv.AppendInt(b, int64(s.Width), 10)
	b = append(b, 'x')
	b = strconv.AppendInt(b, int64(s.Height), 10)
	b = append(b, 'x')
	b = strconv.AppendInt(b, int64(s.ColorDepth), 10)
	return string(b)
}
