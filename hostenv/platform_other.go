//go:build !linux && !darwin && !windows

package hostenv

import "runtime"

func hostPlatform() string { return runtime.GOOS + " " + runtime.GOARCH }
