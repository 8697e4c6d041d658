package ports

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures reported by collaborators.
type ErrorKind string

const (
	// KindAuth means the credentials were rejected (invalid or expired token).
	KindAuth ErrorKind = "auth"
	// KindNetwork means the service could not be reached.
	KindNetwork ErrorKind = "network"
	// KindValidation means the service refused the request as invalid.
	KindValidation ErrorKind = "validation"
	// KindRemote is any other failure reported by the service.
	KindRemote ErrorKind = "remote"
)

// RemoteError is the typed failure returned by RemoteCart implementations.
type RemoteError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewRemoteError wraps err with a kind and the failing operation.
func NewRemoteError(kind ErrorKind, op string, err error) *RemoteError {
	return &RemoteError{Kind: kind, Op: op, Err: err}
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// KindOf returns the kind carried by err, or KindRemote for untyped errors.
func KindOf(err error) ErrorKind {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Kind
	}
	return KindRemote
}

// IsAuth reports whether err signals an invalidated session.
func IsAuth(err error) bool {
	return err != nil && KindOf(err) == KindAuth
}

// IsNetwork reports whether err signals an unreachable service.
func IsNetwork(err error) bool {
	return err != nil && KindOf(err) == KindNetwork
}
