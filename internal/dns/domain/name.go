package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxLabelLength is the largest label the wire format can carry.
	MaxLabelLength = 63
	// MaxNameLength bounds the wire form of a name, length bytes and terminator included.
	MaxNameLength = 255
)

// Name is a domain name in dotted form, e.g. "example.com".
// Names compare with exact, case-sensitive string equality. The empty name is the root.
type Name string

// NewName trims surrounding whitespace and a single trailing dot from s and validates the result.
// The returned name never ends in a dot.
func NewName(s string) (Name, error) {
	n := Name(strings.TrimSuffix(strings.TrimSpace(s), "."))
	if strings.HasSuffix(string(n), ".") {
		return "", fmt.Errorf("%w: %q has an empty trailing label", ErrInvalidName, s)
	}
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}

// Canonical returns n without its fully-qualified trailing dot.
func (n Name) Canonical() Name {
	return Name(strings.TrimSuffix(string(n), "."))
}

// Labels splits the name into its labels. A single trailing dot is accepted as the
// fully-qualified marker; any other empty component is rejected.
func (n Name) Labels() ([]string, error) {
	s := strings.TrimSuffix(string(n), ".")
	if s == "" {
		return nil, nil
	}
	labels := strings.Split(s, ".")
	wireLen := 1 // terminating zero byte
	for i, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("%w: %q has an empty label at position %d", ErrInvalidName, string(n), i)
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w: label %q is %d bytes (max %d)", ErrInvalidName, label, len(label), MaxLabelLength)
		}
		wireLen += len(label) + 1
	}
	if wireLen > MaxNameLength {
		return nil, fmt.Errorf("%w: %q encodes to %d bytes (max %d)", ErrInvalidName, string(n), wireLen, MaxNameLength)
	}
	return labels, nil
}

// Validate reports whether the name can be encoded as a label sequence.
func (n Name) Validate() error {
	_, err := n.Labels()
	return err
}

// IsRoot reports whether n names the root.
func (n Name) IsRoot() bool {
	return n == "" || n == "."
}

// String returns the dotted form.
func (n Name) String() string {
	return string(n)
}

// NameFromLabels joins labels into a dotted name and validates it.
func NameFromLabels(labels []string) (Name, error) {
	for _, label := range labels {
		if label == "" {
			return "", fmt.Errorf("%w: empty label", ErrInvalidName)
		}
		if strings.Contains(label, ".") {
			return "", fmt.Errorf("%w: label %q contains a separator", ErrInvalidName, label)
		}
	}
	n := Name(strings.Join(labels, "."))
	if err := n.Validate(); err != nil {
		return "", err
	}
	return n, nil
}
