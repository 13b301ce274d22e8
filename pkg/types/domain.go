package types

// DefaultGPUMemoryUtilization is applied when a configuration leaves the fraction unset.
const DefaultGPUMemoryUtilization = 0.95

// Model is one entry of the configuration catalog: a fixed set of launch
// parameters for a backend inference server.
type Model struct {
	// Stable identifier used in API paths.
	// example: qwen-14b-fast
	ID string `json:"id" yaml:"id" toml:"id" example:"qwen-14b-fast"`
	// Artifact reference passed to the backend as --model.
	// example: Qwen/Qwen2.5-14B-Instruct
	Name string `json:"name" yaml:"name" toml:"name" example:"Qwen/Qwen2.5-14B-Instruct"`
	// Human-friendly description.
	// example: Fast model - 150-200 tokens/sec
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" example:"Fast model - 150-200 tokens/sec"`
	// Approximate accelerator memory footprint.
	// example: 28GB
	VRAM string `json:"vram,omitempty" yaml:"vram,omitempty" toml:"vram,omitempty" example:"28GB"`
	// Observed generation throughput.
	// example: 150-200 tok/s
	Speed string `json:"speed,omitempty" yaml:"speed,omitempty" toml:"speed,omitempty" example:"150-200 tok/s"`
	// Context-length limit passed as --max-model-len.
	// example: 32768
	MaxModelLen int `json:"max_model_len" yaml:"max_model_len" toml:"max_model_len" example:"32768"`
	// Resource-utilization target passed as --gpu-memory-utilization (0 means 0.95).
	// example: 0.95
	GPUMemoryUtilization float64 `json:"gpu_memory_utilization,omitempty" yaml:"gpu_memory_utilization,omitempty" toml:"gpu_memory_utilization,omitempty" example:"0.95"`
	// What the configuration is good at.
	// example: High throughput, fast responses
	BestFor string `json:"best_for,omitempty" yaml:"best_for,omitempty" toml:"best_for,omitempty" example:"High throughput, fast responses"`
}

// Utilization returns the effective GPU memory fraction.
func (m Model) Utilization() float64 {
	if m.GPUMemoryUtilization <= 0 {
		return DefaultGPUMemoryUtilization
	}
	return m.GPUMemoryUtilization
}
