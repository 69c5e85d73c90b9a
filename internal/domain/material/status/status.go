// Package status defines the material publication states.
package status

import (
	"fmt"
	"strings"
)

// Status is the publication state of a material.
type Status string

// Publication states. Only Approved materials are visible to search.
const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Rejected Status = "rejected"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Pending || s == Approved || s == Rejected
}

// String returns the lowercase status code.
func (s Status) String() string { return string(s) }

// Parse converts a status code (any case) into a Status.
func Parse(v string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}
