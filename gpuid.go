package fingerprint

// GPUIDSeparator joins the vendor and renderer in a GPU identity.
const GPUIDSeparator = "~"

// GPUIdentity returns "vendor~renderer" read from the context's
// GraphicsDebugInfo capability.
//
// It returns ErrContextUnavailable for a nil context and
// ErrDebugInfoUnavailable when the capability is missing. GPUIdentity only
// reads from c.
func GPUIdentity(c Context) (string, error) {
	if c == nil {
		return "", ErrContextUnavailable
	}
	info, ok := c.(GraphicsDebugInfo)
	if !ok {
		return "", ErrDebugInfoUnavailable
	}
	return info.UnmaskedVendor() + GPUIDSeparator + info.UnmaskedRenderer(), nil
}
