package types

// ModelsResponse wraps the catalog returned by GET /models/available.
type ModelsResponse struct {
	// Configurations that can be loaded.
	Models []Model `json:"models"`
	// Number of configurations.
	// example: 10
	Count int `json:"count" example:"10"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: model configuration not found: nope
	Error string `json:"error" example:"model configuration not found: nope"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
	// Known configuration identifiers, included when the requested one is unknown.
	AvailableModels []string `json:"available_models,omitempty"`
}

// InstanceStatus describes one configuration's backend, loaded or not.
type InstanceStatus struct {
	// Configuration identifier.
	// example: qwen-14b-fast
	ModelID string `json:"model_id" example:"qwen-14b-fast"`
	// Catalog entry for the configuration.
	ModelInfo *Model `json:"model_info,omitempty"`
	// Port assigned to the backend, absent when not loaded.
	// example: 8002
	Port *int `json:"port" example:"8002"`
	// One of not_loaded, loading, ready, error, draining, stopped.
	// example: ready
	Status string `json:"status" example:"ready"`
	// Whether the backend process is alive.
	// example: true
	IsRunning bool `json:"is_running" example:"true"`
	// Base URL of the backend's OpenAI-compatible API, including /v1.
	// example: http://localhost:8002/v1
	URL string `json:"url,omitempty" example:"http://localhost:8002/v1"`
	// Backend server root without the /v1 suffix; clients append /v1 themselves.
	// example: http://localhost:8002
	VLLMURL string `json:"vllm_url,omitempty" example:"http://localhost:8002"`
	// Process ID of the backend.
	// example: 12345
	PID int `json:"pid,omitempty" example:"12345"`
	// Failure description for the error state.
	Error string `json:"error,omitempty"`
	// Identifier of the load attempt that produced this instance.
	// example: 5f0c6a8e-3a1b-4f7e-9a51-2b7f1c9d6e11
	LoadID string `json:"load_id,omitempty" example:"5f0c6a8e-3a1b-4f7e-9a51-2b7f1c9d6e11"`
	// When the load was accepted (unix seconds).
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix,omitempty" example:"1700000000"`
	// When the backend became ready (unix seconds).
	// example: 1700000090
	ReadyUnix int64 `json:"ready_unix,omitempty" example:"1700000090"`
}

// LoadedResponse is returned by GET /models/loaded.
type LoadedResponse struct {
	// Every registered instance, in identifier order.
	LoadedModels []InstanceStatus `json:"loaded_models"`
	// Number of registered instances.
	// example: 1
	Count int `json:"count" example:"1"`
}

// LoadResponse is returned by POST /models/{id}/load.
type LoadResponse struct {
	// loading for a newly accepted load, already_loaded when a ready backend exists.
	// example: loading
	Status string `json:"status" example:"loading"`
	// example: qwen-14b-fast
	ModelID string `json:"model_id" example:"qwen-14b-fast"`
	// example: 8002
	Port int `json:"port" example:"8002"`
	// OpenAI-compatible API base, including /v1.
	// example: http://localhost:8002/v1
	URL string `json:"url,omitempty" example:"http://localhost:8002/v1"`
	// Backend server root without /v1.
	// example: http://localhost:8002
	VLLMURL string `json:"vllm_url,omitempty" example:"http://localhost:8002"`
	// example: 5f0c6a8e-3a1b-4f7e-9a51-2b7f1c9d6e11
	LoadID string `json:"load_id,omitempty" example:"5f0c6a8e-3a1b-4f7e-9a51-2b7f1c9d6e11"`
	// example: Loading qwen-14b-fast on port 8002
	Message string `json:"message,omitempty" example:"Loading qwen-14b-fast on port 8002"`
}

// UnloadResponse is returned by POST /models/{id}/unload.
type UnloadResponse struct {
	// example: unloaded
	Status string `json:"status" example:"unloaded"`
	// example: qwen-14b-fast
	ModelID string `json:"model_id" example:"qwen-14b-fast"`
	// Port the backend was using.
	// example: 8002
	Port int `json:"port" example:"8002"`
	// example: Unloaded qwen-14b-fast from port 8002
	Message string `json:"message,omitempty" example:"Unloaded qwen-14b-fast from port 8002"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall manager state.
	// example: running
	ManagerStatus string `json:"manager_status" example:"running"`
	// Port the control plane listens on.
	// example: 8001
	ManagerPort int `json:"manager_port" example:"8001"`
	// First port handed to a backend.
	// example: 8002
	BasePort int `json:"base_port" example:"8002"`
	// Port the next accepted load will receive.
	// example: 8003
	NextPort int `json:"next_port" example:"8003"`
	// Number of registry entries.
	// example: 1
	LoadedCount int `json:"loaded_models_count" example:"1"`
	// Entries whose process is alive.
	// example: 1
	RunningCount int `json:"running_models_count" example:"1"`
	// example: 0
	LoadingCount int `json:"loading_models_count" example:"0"`
	// example: 1
	ReadyCount int `json:"ready_models_count" example:"1"`
	// example: 0
	ErrorCount int `json:"error_models_count" example:"0"`
	// Catalog size.
	// example: 10
	AvailableCount int `json:"available_models_count" example:"10"`
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Loads accepted since start.
	// example: 4
	LoadsTotal uint64 `json:"loads_total" example:"4"`
	// Loads that ended in the error state.
	// example: 1
	LoadFailuresTotal uint64 `json:"load_failures_total" example:"1"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
}
