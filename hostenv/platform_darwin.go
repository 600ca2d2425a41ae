package hostenv

func hostPlatform() string { return "MacIntel" }
