package backend

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/fingerprint"
)

func TestSoftwareBackendName(t *testing.T) {
	b := NewSoftwareBackend()
	if b.Name() != "software" {
		t.Errorf("Name() = %q, want %q", b.Name(), "software")
	}
}

func TestSoftwareBackendNewSurface(t *testing.T) {
	b := NewSoftwareBackend()
	if _, err := b.NewSurface(8, 5); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NewSurface() before Init error = %v, want ErrNotInitialized", err)
	}

	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Close()

	s, err := b.NewSurface(8, 5)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	if s.Width() != 8 || s.Height() != 5 {
		t.Errorf("surface size = %dx%d, want 8x5", s.Width(), s.Height())
	}
	if _, err := s.Context(); err != nil {
		t.Errorf("Context() error = %v", err)
	}

	if _, err := b.NewSurface(0, 5); err == nil {
		t.Error("NewSurface(0, 5) error = nil")
	}
}

func TestSoftwareBackendSurfaceOptions(t *testing.T) {
	b := NewSoftwareBackend(fingerprint.WithDebugIdentity("Stub~Inc", "StubGPU-1"))
	_ = b.Init()
	defer b.Close()

	s, err := b.NewSurface(4, 4)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	c, _ := s.Context()
	if id, err := fingerprint.GPUIdentity(c); err != nil || id != "Stub~Inc~StubGPU-1" {
		t.Errorf("GPUIdentity() = %q, %v", id, err)
	}
}

func TestSoftwareBackendFingerprint(t *testing.T) {
	b := NewSoftwareBackend()
	_ = b.Init()
	defer b.Close()

	s, _ := b.NewSurface(32, 20)
	res := fingerprint.New(s, fingerprint.WithNotifier(fingerprint.NotifierFunc(func(fingerprint.Notice) {}))).
		Run(context.Background())
	if len(res.RenderID) != 64 {
		t.Errorf("RenderID = %q, want a digest", res.RenderID)
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	// Software backend is auto-registered via init()
	if !IsRegistered("software") {
		t.Error("software backend should be auto-registered")
	}

	b := Get("software")
	if b == nil {
		t.Fatal("Get(software) returned nil")
	}
	if b.Name() != "software" {
		t.Errorf("Get(software).Name() = %q, want %q", b.Name(), "software")
	}
}

func TestRegistryGetUnregistered(t *testing.T) {
	if b := Get("nonexistent"); b != nil {
		t.Error("Get(nonexistent) should return nil")
	}
}

func TestRegistryAvailableOrder(t *testing.T) {
	Register("zz-test", func() RenderBackend { return &SoftwareBackend{} })
	Register("aa-test", func() RenderBackend { return &SoftwareBackend{} })
	t.Cleanup(func() {
		Unregister("zz-test")
		Unregister("aa-test")
	})

	got := Available()
	si := slices.Index(got, "software")
	ai := slices.Index(got, "aa-test")
	zi := slices.Index(got, "zz-test")
	if si < 0 || ai < 0 || zi < 0 {
		t.Fatalf("Available() = %v, missing entries", got)
	}
	if si > ai || ai > zi {
		t.Errorf("Available() = %v, want software first and the rest sorted", got)
	}
}

func TestRegistryDefault(t *testing.T) {
	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
	// Without backend/wgpu imported, software is the default.
	if b.Name() != "software" {
		t.Errorf("Default() = %q, want software", b.Name())
	}
}

func TestRegistryMustDefault(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustDefault() panicked: %v", r)
		}
	}()
	if MustDefault() == nil {
		t.Error("MustDefault() returned nil")
	}
}

type failingBackend struct{ SoftwareBackend }

func (b *failingBackend) Name() string { return "failing" }
func (b *failingBackend) Init() error  { return errors.New("no device") }

func TestRegistryInitDefaultSkipsFailingBackend(t *testing.T) {
	orig := backendPriority
	backendPriority = []string{"failing", BackendSoftware}
	Register("failing", func() RenderBackend { return &failingBackend{} })
	t.Cleanup(func() {
		backendPriority = orig
		Unregister("failing")
	})

	b, err := InitDefault()
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	defer b.Close()
	if b.Name() != "software" {
		t.Errorf("InitDefault() = %q, want software", b.Name())
	}
}

func TestRegistryInitDefaultAllFail(t *testing.T) {
	orig := backendPriority
	backendPriority = []string{"failing"}
	Register("failing", func() RenderBackend { return &failingBackend{} })
	Unregister(BackendSoftware)
	t.Cleanup(func() {
		backendPriority = orig
		Unregister("failing")
		Register(BackendSoftware, func() RenderBackend { return &SoftwareBackend{} })
	})

	if _, err := InitDefault(); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("InitDefault() error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistryInit(t *testing.T) {
	b, err := Init("software")
	if err != nil {
		t.Fatalf("Init(software) error = %v", err)
	}
	b.Close()

	if _, err := Init("nonexistent"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Init(nonexistent) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistryUnregister(t *testing.T) {
	Register("test-backend", func() RenderBackend { return &SoftwareBackend{} })
	if !IsRegistered("test-backend") {
		t.Error("test-backend should be registered")
	}

	Unregister("test-backend")
	if IsRegistered("test-backend") {
		t.Error("test-backend should be unregistered")
	}
}

func BenchmarkSoftwareBackendFingerprint(b *testing.B) {
	backend := NewSoftwareBackend()
	_ = backend.Init()
	defer backend.Close()

	s, _ := backend.NewSurface(800, 500)
	fp := fingerprint.New(s)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fp.Run(context.Background())
	}
}
