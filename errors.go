package fingerprint

import "errors"

// Errors reported while producing a fingerprint. A Fingerprinter recovers
// from all of them and still returns a Result; they surface through the
// Notifier and from the lower-level functions.
var (
	// ErrContextUnavailable is returned when no 3D rendering context can be
	// obtained from the surface.
	ErrContextUnavailable = errors.New("fingerprint: rendering context unavailable")

	// ErrDebugInfoUnavailable is returned when the rendering context does not
	// expose unmasked vendor and renderer strings.
	ErrDebugInfoUnavailable = errors.New("fingerprint: graphics debug info unavailable")

	// ErrAssetStalled is returned when the reference image did not finish
	// loading before the wait was abandoned.
	ErrAssetStalled = errors.New("fingerprint: reference image load stalled")

	// ErrAssetDecode is returned when the reference image cannot be read or
	// decoded.
	ErrAssetDecode = errors.New("fingerprint: reference image decode failed")

	// ErrInvalidPass is returned by a rendering context for a malformed
	// RenderPass.
	ErrInvalidPass = errors.New("fingerprint: invalid render pass")

	// ErrUnsupportedProgram is returned by a rendering context that cannot
	// run the requested shader program.
	ErrUnsupportedProgram = errors.New("fingerprint: unsupported shader program")
)
