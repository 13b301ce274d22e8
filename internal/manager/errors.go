package manager

import (
	"errors"
	"fmt"
	"net/http"
)

// unknownConfigurationError signals an id absent from the catalog.
type unknownConfigurationError struct {
	id        string
	available []string
}

func (e unknownConfigurationError) Error() string {
	return "model configuration not found: " + e.id
}
func (e unknownConfigurationError) StatusCode() int { return http.StatusNotFound }

// AvailableModels lists the identifiers the caller could have used.
func (e unknownConfigurationError) AvailableModels() []string { return e.available }

func ErrUnknownConfiguration(id string, available []string) error {
	return unknownConfigurationError{id: id, available: available}
}

// IsUnknownConfiguration reports whether err indicates an id missing from the catalog.
func IsUnknownConfiguration(err error) bool {
	var e unknownConfigurationError
	return errors.As(err, &e)
}

// alreadyLoadingError is returned when a load for the same id is in flight.
type alreadyLoadingError struct {
	id   string
	port int
}

func (e alreadyLoadingError) Error() string {
	return fmt.Sprintf("model %s is already loading on port %d", e.id, e.port)
}
func (e alreadyLoadingError) StatusCode() int { return http.StatusConflict }

func IsAlreadyLoading(err error) bool {
	var e alreadyLoadingError
	return errors.As(err, &e)
}

// alreadyLoadedError carries the live instance. Load converts it into a
// successful already_loaded result; it never reaches HTTP callers.
type alreadyLoadedError struct{ inst Instance }

func (e alreadyLoadedError) Error() string {
	return fmt.Sprintf("model %s is already loaded on port %d", e.inst.ModelID, e.inst.Port)
}

func IsAlreadyLoaded(err error) bool {
	var e alreadyLoadedError
	return errors.As(err, &e)
}

type notLoadedError struct{ id string }

func (e notLoadedError) Error() string   { return "model not loaded: " + e.id }
func (e notLoadedError) StatusCode() int { return http.StatusNotFound }

func ErrNotLoaded(id string) error { return notLoadedError{id: id} }

// IsNotLoaded reports whether err indicates no registry entry for the id.
func IsNotLoaded(err error) bool {
	var e notLoadedError
	return errors.As(err, &e)
}

// unloadingError is returned while another unload of the same id is running.
type unloadingError struct{ id string }

func (e unloadingError) Error() string   { return "model is being unloaded: " + e.id }
func (e unloadingError) StatusCode() int { return http.StatusConflict }

func IsUnloading(err error) bool {
	var e unloadingError
	return errors.As(err, &e)
}

type shuttingDownError struct{}

func (shuttingDownError) Error() string   { return "manager is shutting down" }
func (shuttingDownError) StatusCode() int { return http.StatusServiceUnavailable }

func ErrShuttingDown() error { return shuttingDownError{} }

func IsShuttingDown(err error) bool {
	var e shuttingDownError
	return errors.As(err, &e)
}

// notReadyError is returned when traffic is routed to a backend that cannot serve it.
type notReadyError struct {
	id    string
	state State
}

func (e notReadyError) Error() string {
	return fmt.Sprintf("model %s is not ready (status %s)", e.id, e.state)
}
func (e notReadyError) StatusCode() int { return http.StatusServiceUnavailable }

func IsNotReady(err error) bool {
	var e notReadyError
	return errors.As(err, &e)
}

// portsExhaustedError is returned when no backend port is left to allocate.
type portsExhaustedError struct {
	id  string
	err error
}

func (e portsExhaustedError) Error() string {
	return fmt.Sprintf("cannot load %s: %v; restart the manager or lower base_port", e.id, e.err)
}
func (e portsExhaustedError) StatusCode() int { return http.StatusServiceUnavailable }
func (e portsExhaustedError) Unwrap() error   { return e.err }

// IsPortsExhausted reports whether err is a failed port allocation.
func IsPortsExhausted(err error) bool {
	var e portsExhaustedError
	return errors.As(err, &e)
}
