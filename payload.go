package fingerprint

import "strconv"

// Payload is the raw readback of a render pass together with its canonical
// text form: every byte in decimal, separated by commas, with no spaces.
// The text form is what gets hashed.
type Payload struct {
	raw  []byte
	text string
}

// NewPayload builds a payload from readback bytes. The slice is retained.
func NewPayload(raw []byte) Payload {
	if len(raw) == 0 {
		return Payload{}
	}
	// Up to three digits and a separator per byte.
	buf := make([]byte, 0, len(raw)*4)
	for i, b := range raw {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(b), 10)
	}
	return Payload{raw: raw, text: string(buf)}
}

// String returns the canonical text form.
func (p Payload) String() string { return p.text }

// Bytes returns the raw readback. The caller must not modify it.
func (p Payload) Bytes() []byte { return p.raw }

// Len returns the number of raw bytes.
func (p Payload) Len() int { return len(p.raw) }

// IsEmpty reports whether the payload carries no pixels, as after a
// degraded pass.
func (p Payload) IsEmpty() bool { return len(p.raw) == 0 }
