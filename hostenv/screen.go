package hostenv

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/fingerprint"
)

// defaultColorDepth is reported for DRM displays; sysfs does not expose
// the framebuffer depth of a connector.
const defaultColorDepth = 24

// isConnector reports whether name is a DRM connector such as
// "card0-HDMI-A-1", as opposed to a card ("card0") or render node.
func isConnector(name string) bool {
	if !strings.HasPrefix(name, "card") {
		return false
	}
	index, rest, ok := strings.Cut(name[4:], "-")
	if !ok || index == "" || rest == "" {
		return false
	}
	for _, c := range index {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// drmScreen returns the preferred mode of the first connected connector
// under dir.
func drmScreen(dir string) (fingerprint.Screen, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fingerprint.Screen{}, false
	}
	for _, entry := range entries {
		if !isConnector(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if readSysfsString(filepath.Join(path, "status")) != "connected" {
			continue
		}
		w, h, ok := parseMode(readFirstLine(filepath.Join(path, "modes")))
		if !ok {
			continue
		}
		return fingerprint.Screen{Width: w, Height: h, ColorDepth: defaultColorDepth}, true
	}
	return fingerprint.Screen{}, false
}

// parseMode parses a DRM mode name like "1920x1080" or "1920x1080i".
func parseMode(mode string) (width, height int, ok bool) {
	ws, hs, found := strings.Cut(mode, "x")
	if !found {
		return 0, 0, false
	}
	hs = strings.TrimRight(hs, "i")
	width, err := strconv.Atoi(ws)
	if err != nil || width <= 0 {
		return 0, 0, false
	}
	height, err = strconv.Atoi(hs)
	if err != nil || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

// readSysfsString reads a single-line sysfs file and returns its trimmed
// content. Returns "" on any error.
func readSysfsString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readFirstLine(path string) string {
	line, _, _ := strings.Cut(readSysfsString(path), "\n")
	return strings.TrimSpace(line)
}

func (p *Provider) path(rel string) string {
	return filepath.Join(p.root, rel)
}
