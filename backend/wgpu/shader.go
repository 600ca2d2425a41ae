package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Shader entry points.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

//go:embed shaders/passthrough.wgsl
var passthroughWGSL string

// compileSPIRV compiles WGSL source to SPIR-V words.
func compileSPIRV(src string) ([]uint32, error) {
	code, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("wgpu: compile shader: SPIR-V size %d is not word aligned", len(code))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words, nil
}

// shaderSource returns the passthrough program in the form the backend
// consumes. Vulkan takes SPIR-V; the other HAL backends translate WGSL
// themselves.
func shaderSource(backend gputypes.Backend) (hal.ShaderSource, error) {
	if backend != gputypes.BackendVulkan {
		return hal.ShaderSource{WGSL: passthroughWGSL}, nil
	}
	words, err := compileSPIRV(passthroughWGSL)
	if err != nil {
		return hal.ShaderSource{}, err
	}
	return hal.ShaderSource{SPIRV: words}, nil
}
