package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/fingerprint"
	"github.com/gogpu/fingerprint/backend"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(map[string]string{})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	want := Config{
		Backend:  "auto",
		Width:    800,
		Height:   500,
		Timeout:  30 * time.Second,
		Digest:   "sha256",
		Readback: "swapped",
		Format:   "text",
	}
	if *cfg != want {
		t.Errorf("loadConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadConfigEnvironment(t *testing.T) {
	cfg, err := loadConfig(map[string]string{
		"FINGERPRINT_BACKEND":  "software",
		"FINGERPRINT_WIDTH":    "64",
		"FINGERPRINT_TIMEOUT":  "2s",
		"FINGERPRINT_FORMAT":   "json",
		"FINGERPRINT_VERBOSE":  "true",
		"FINGERPRINT_TIMEZONE": "UTC",
		"BACKEND":              "ignored",
	})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Backend != "software" || cfg.Width != 64 || cfg.Height != 500 {
		t.Errorf("backend/size = %q %dx%d", cfg.Backend, cfg.Width, cfg.Height)
	}
	if cfg.Timeout != 2*time.Second || cfg.Format != "json" || !cfg.Verbose || cfg.Timezone != "UTC" {
		t.Errorf("config = %+v", *cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	if _, err := loadConfig(map[string]string{"FINGERPRINT_WIDTH": "wide"}); err == nil {
		t.Error("loadConfig() error = nil for non-numeric width")
	}
}

// execute runs the command tree with args on a software-backend config.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	orig := fingerprint.Logger()
	t.Cleanup(func() { fingerprint.SetLogger(orig) })

	cfg, err := loadConfig(map[string]string{})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd(cfg, &out, &errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

var fixedEnv = []string{"--screen", "1920x1080x24", "--platform", "TestOS", "--timezone", "UTC"}

func TestRunJSON(t *testing.T) {
	args := append([]string{"run", "--backend", "software", "--width", "64", "--height", "40", "--format", "json"}, fixedEnv...)
	stdout, stderr, err := execute(t, args...)
	if err != nil {
		t.Fatalf("run error = %v (stderr %q)", err, stderr)
	}

	var r fingerprint.Result
	if err := json.Unmarshal([]byte(stdout), &r); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if r.ScreenID != "1920x1080x24" || r.PlatformID != "TestOS" || r.TimezoneID != "UTC" {
		t.Errorf("environment = %q %q %q", r.ScreenID, r.PlatformID, r.TimezoneID)
	}
	if len(r.RenderID) != 64 || len(r.UniqueID) != 64 {
		t.Errorf("digests = %q, %q", r.RenderID, r.UniqueID)
	}
	// The software backend exposes no debug identity.
	if r.GPUID != "" || !strings.Contains(stderr, "warning:") {
		t.Errorf("gpuId = %q, stderr = %q", r.GPUID, stderr)
	}
	if strings.Contains(stderr, fingerprint.Pending) {
		t.Error("pending placeholder printed in JSON mode")
	}

	again, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}
	if again != stdout {
		t.Errorf("runs differ:\n%s\n%s", stdout, again)
	}
}

func TestRootRunsFingerprint(t *testing.T) {
	args := append([]string{"--backend", "software", "--width", "16", "--height", "10", "--digest", "blake3"}, fixedEnv...)
	stdout, stderr, err := execute(t, args...)
	if err != nil {
		t.Fatalf("root error = %v", err)
	}
	for _, label := range []string{"GPU:", "Render:", "Screen:", "Platform:", "Timezone:", "Unique:", "Degraded:"} {
		if !strings.Contains(stdout, label) {
			t.Errorf("text output missing %s:\n%s", label, stdout)
		}
	}
	if !strings.Contains(stderr, fingerprint.Pending) {
		t.Errorf("stderr = %q, want the pending placeholder", stderr)
	}
}

func TestRunYAML(t *testing.T) {
	args := append([]string{"run", "--backend", "software", "--width", "16", "--height", "10", "--format", "yaml", "--readback", "exact"}, fixedEnv...)
	stdout, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal([]byte(stdout), &m); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if m["platformId"] != "TestOS" {
		t.Errorf("platformId = %v", m["platformId"])
	}
	if _, ok := m["uniqueId"]; !ok {
		t.Errorf("YAML missing uniqueId:\n%s", stdout)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{"unknown backend", []string{"run", "--backend", "vulkan9"}, backend.ErrBackendNotAvailable, ""},
		{"unknown digest", []string{"run", "--backend", "software", "--digest", "md5"}, nil, "unknown digest"},
		{"unknown readback", []string{"run", "--backend", "software", "--readback", "diagonal"}, nil, "diagonal"},
		{"unknown format", []string{"run", "--backend", "software", "--format", "xml"}, nil, "unknown format"},
		{"bad size", []string{"run", "--backend", "software", "--width", "0"}, nil, "invalid surface size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestBackendsCommand(t *testing.T) {
	stdout, _, err := execute(t, "backends")
	if err != nil {
		t.Fatalf("backends error = %v", err)
	}
	lines := strings.Fields(stdout)
	want := []string{backend.BackendWGPU, backend.BackendSoftware}
	if len(lines) < 2 || lines[0] != want[0] || lines[1] != want[1] {
		t.Errorf("backends = %v, want prefix %v", lines, want)
	}
}

func TestEnvCommand(t *testing.T) {
	stdout, _, err := execute(t, append([]string{"env", "--format", "json"}, fixedEnv...)...)
	if err != nil {
		t.Fatalf("env error = %v", err)
	}
	var e fingerprint.Environment
	if err := json.Unmarshal([]byte(stdout), &e); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	want := fingerprint.Environment{ScreenID: "1920x1080x24", PlatformID: "TestOS", TimezoneID: "UTC"}
	if e != want {
		t.Errorf("env = %+v, want %+v", e, want)
	}

	stdout, _, err = execute(t, append([]string{"env"}, fixedEnv...)...)
	if err != nil {
		t.Fatalf("env error = %v", err)
	}
	if !strings.Contains(stdout, "Platform:") || !strings.Contains(stdout, "TestOS") {
		t.Errorf("text env = %q", stdout)
	}
}
