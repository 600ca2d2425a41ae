package hostenv

import (
	"os"
	"strings"
	"time"
	_ "time/tzdata" // zone validation on hosts without a zoneinfo database
)

const zoneinfoMarker = "zoneinfo/"

// resolveTimezone tries, in order: the TZ variable, the /etc/localtime
// symlink, /etc/timezone and the Go runtime's local zone.
func (p *Provider) resolveTimezone() string {
	if tz, ok := p.lookupEnv("TZ"); ok {
		if tz == "" {
			return "UTC"
		}
		if name := zoneName(strings.TrimPrefix(tz, ":")); name != "" {
			return name
		}
	}

	if target, err := os.Readlink(p.path("etc/localtime")); err == nil {
		if name := zoneName(target); name != "" {
			return name
		}
	}

	if name := zoneName(readFirstLine(p.path("etc/timezone"))); name != "" {
		return name
	}

	if name := time.Local.String(); name != "Local" {
		if zoneName(name) != "" {
			return name
		}
	}
	return "UTC"
}

// zoneName extracts an IANA name from a zone name or zoneinfo path and
// returns it if Go knows the zone.
func zoneName(s string) string {
	if i := strings.LastIndex(s, zoneinfoMarker); i >= 0 {
		s = s[i+len(zoneinfoMarker):]
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "/") {
		return ""
	}
	if _, err := time.LoadLocation(s); err != nil {
		return ""
	}
	return s
}
