package hostenv

func hostPlatform() string { return "Win32" }
