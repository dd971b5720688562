package graph

import "fmt"

// ConnectionError reports a failed connect handshake or an operation
// attempted without a live connection. It is a distinct taxon from
// QueryError so callers can tell "not connected" apart from "query failed".
type ConnectionError struct {
	Op    string
	Cause error
}

func (e *ConnectionError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("graph: %s: not connected (call Connect first)", e.Op)
	}
	return fmt.Sprintf("graph: %s: connection failed: %v", e.Op, e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// QueryError reports a failure executing a well-formed request against the
// database, wrapping the driver-level cause for diagnostics.
type QueryError struct {
	Op    string
	Cause error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("graph: %s: query failed: %v", e.Op, e.Cause)
}

func (e *QueryError) Unwrap() error { return e.Cause }

func notConnected(op string) *ConnectionError {
	return &ConnectionError{Op: op}
}
