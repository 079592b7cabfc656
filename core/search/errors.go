package search

import (
	"errors"
	"strings"
)

var (
	// ErrBackendUnavailable marks a backend that cannot serve requests at
	// all, for instance a missing index or an unreachable cluster.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	ErrNoBackend          = errors.New("no search backend configured")
	ErrInvalidEngine      = errors.New("unknown search engine")
)

type BackendError struct {
	Backend string
	Op      string
	Code    string
	Err     error
}

func (err BackendError) Error() string {
	var s strings.Builder
	s.WriteString("search backend error: ")
	if err.Backend != "" {
		s.WriteString(err.Backend + ": ")
	}
	if err.Op != "" {
		s.WriteString(err.Op + ": ")
	}
	if err.Code != "" {
		s.WriteString("code '" + err.Code + "': ")
	}
	if err.Err != nil {
		s.WriteString(err.Err.Error())
	}
	return s.String()
}

func (err BackendError) Unwrap() error { return err.Err }
