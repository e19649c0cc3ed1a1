package ports

import "fmt"

// NotFoundError reports a location the geocoding provider could not
// resolve. Fatal to a scan: no routing is possible without coordinates.
type NotFoundError struct {
	Location string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no geocode results for %q", e.Location)
}

// ProviderError reports a transport, HTTP, or payload failure from an
// external provider call. Local to one routing call: the scan records a
// gap for the interval and continues.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ValidationError reports rejected caller input before any provider
// call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StorageError reports a failed history append or read. Recording is a
// side effect after the user's decision; a StorageError never
// invalidates already-computed scan results.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
