package hostenv

import "golang.org/x/sys/unix"

// hostPlatform returns "Linux" followed by the uname machine, for example
// "Linux x86_64".
func hostPlatform() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "Linux"
	}
	machine := unix.ByteSliceToString(uts.Machine[:])
	if machine == "" {
		return "Linux"
	}
	return "Linux " + machine
}
