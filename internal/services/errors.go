package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormatUnrecognized indicates no input adapter signature matched.
	ErrFormatUnrecognized = errors.New("format unrecognized")
	// ErrRemoteLookup indicates a set, taxonomy, or image fetch failed.
	ErrRemoteLookup = errors.New("remote lookup failed")
	// ErrInvalidParameter indicates a caller-supplied parameter is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrCacheIntegrity indicates a duplicate-key cache insert, a logic bug.
	ErrCacheIntegrity = errors.New("cache integrity violation")
	// ErrConfiguration indicates required configuration is missing.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrRemoteLookup
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether the pipeline may continue past err by applying
// the local fallback policy (root-only labels, missing image).
func Recoverable(err error) bool {
	return errors.Is(err, ErrRemoteLookup)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
