package fingerprint

import (
	"testing"
)

func TestNewPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"empty", nil, ""},
		{"single", []byte{7}, "7"},
		{"pixel", []byte{255, 0, 0, 255}, "255,0,0,255"},
		{"all widths", []byte{0, 9, 10, 99, 100, 255}, "0,9,10,99,100,255"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPayload(tt.raw)
			if got := p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if p.Len() != len(tt.raw) {
				t.Errorf("Len() = %d, want %d", p.Len(), len(tt.raw))
			}
			if p.IsEmpty() != (len(tt.raw) == 0) {
				t.Errorf("IsEmpty() = %v", p.IsEmpty())
			}
		})
	}
}

func TestPayloadKeepsRaw(t *testing.T) {
	raw := []byte{1, 2, 3}
	if got := NewPayload(raw).Bytes(); &got[0] != &raw[0] {
		t.Error("Bytes() does not return the readback slice")
	}
}
