// Package manager coordinates the lifecycle of backend inference processes,
// one per catalog configuration. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, event fan-out, task tracking.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: State, Instance snapshots and LoadResult.
//   - registry.go: the lock-protected id -> instance table.
//   - load.go: Load and the background task that spawns and probes a backend.
//   - unload.go: Unload, including unloading an instance that is still loading.
//   - shutdown.go: Shutdown terminates every backend and waits for load tasks.
//   - status_report.go: Status, BackendURL and the /status summary.
//   - service.go: API-shaped wrappers used by the HTTP layer.
//   - errors.go: error types and helpers (IsUnknownConfiguration, IsAlreadyLoading, ...).
//   - events.go, eventpub_memory.go: lifecycle events and publishers.
//   - metrics.go: Prometheus collectors.
//
// State machine per configuration id:
//
//	absent -> loading -> ready -> (unload) absent
//	          loading -> error -> (unload | re-load) absent / loading
//	          loading -> (unload) absent
//
// Every transition out of loading is guarded by the entry's generation, so a
// load task whose entry was unloaded or replaced can only abandon its work.
package manager
