package identifier

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdentifier is returned when a participant identifier is malformed
var ErrInvalidIdentifier = errors.New("invalid participant identifier format")

// Participant is a PEPPOL participant identifier: an ISO 6523 scheme code
// and the value assigned within that scheme.
type Participant struct {
	Scheme string `json:"scheme"`
	Value  string `json:"value"`
}

// New creates a Participant from a scheme code and value.
// Both parts must be non-empty, and the scheme must not contain ':'
// since the canonical form uses it as the separator.
func New(scheme, value string) (Participant, error) {
	if scheme == "" || value == "" {
		return Participant{}, fmt.Errorf("%w: scheme and value must be non-empty", ErrInvalidIdentifier)
	}
	if strings.Contains(scheme, ":") {
		return Participant{}, fmt.Errorf("%w: scheme contains ':': %s", ErrInvalidIdentifier, scheme)
	}
	return Participant{Scheme: scheme, Value: value}, nil
}

// Parse parses a participant identifier in canonical form.
// Format: <scheme>:<value>
func Parse(s string) (Participant, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Participant{}, fmt.Errorf("%w: %s", ErrInvalidIdentifier, s)
	}
	return New(parts[0], parts[1])
}

// String returns the canonical form: <scheme>:<value>
func (p Participant) String() string {
	return p.Scheme + ":" + p.Value
}

// Hash returns the MD5 digest of the canonical form as lowercase hex.
// The SML zone is keyed by this exact encoding; MD5 is mandated by the
// PEPPOL SML specification and is not used here for security.
func (p Participant) Hash() string {
	sum := md5.Sum([]byte(p.String()))
	return hex.EncodeToString(sum[:])
}
