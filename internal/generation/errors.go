package generation

import "fmt"

// TransportError covers connection failures and non-2xx responses from a
// generation provider. The message carries enough context for a user-facing
// error at the boundary.
type TransportError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the provider answered, but the payload did
// not have the expected nested structure or the embedded JSON did not parse.
type MalformedResponseError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s returned an unexpected response: %s", e.Provider, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
