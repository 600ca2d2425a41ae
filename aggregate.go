package fingerprint

import "strings"

// Inputs are everything a Result is derived from.
type Inputs struct {
	GPUID       string
	Payload     Payload
	Environment Environment
}

// Aggregate builds a Result from its inputs. It is a pure function.
//
// renderId is the digest of the payload text, or "" when the payload is
// empty. uniqueId is the digest of gpuId, payload text, screenId,
// platformId and timezoneId concatenated in that order without
// separators. A nil digest selects DigestSHA256.
func Aggregate(in Inputs, d Digest) Result {
	if d == nil {
		d = DigestSHA256
	}

	payload := in.Payload.String()
	env := in.Environment

	var renderID string
	if payload != "" {
		renderID = d.Sum(payload)
	}

	var sb strings.Builder
	sb.Grow(len(in.GPUID) + len(payload) + len(env.ScreenID) + len(env.PlatformID) + len(env.TimezoneID))
	sb.WriteString(in.GPUID)
	sb.WriteString(payload)
	sb.WriteString(env.ScreenID)
	sb.WriteString(env.PlatformID)
	sb.WriteString(env.TimezoneID)

	return Result{
		GPUID:      in.GPUID,
		RenderID:   renderID,
		ScreenID:   env.ScreenID,
		PlatformID: env.PlatformID,
		TimezoneID: env.TimezoneID,
		UniqueID:   d.Sum(sb.String()),
	}
}
