package source

import "fmt"

// UnavailableError is a fetch that reached the server but got a non-2xx reply.
type UnavailableError struct {
	URL    string
	Status int
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable: HTTP %d", e.URL, e.Status)
}

// UnreachableError is a transport failure: DNS, timeout, reset, TLS.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("source %s unreachable: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }
