// Package ids generates entity identifiers.
//
// Production code uses UUID-backed identifiers of the form "<prefix>-<uuid>".
// Tests inject a Sequence so identifiers are predictable.
package ids

import (
	"strconv"

	"github.com/google/uuid"
)

// Identifier prefixes for each entity kind
const (
	SubjectPrefix   = "subj"
	TaskPrefix      = "task"
	ReferencePrefix = "ref"
	MemoPrefix      = "memo"
)

// Generator produces unique identifiers for a given prefix
type Generator interface {
	NewID(prefix string) string
}

// UUID generates "<prefix>-<random uuid>" identifiers
type UUID struct{}

// NewID implements Generator
func (UUID) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Sequence generates "<prefix>-<n>" identifiers with a counter per prefix.
// It is not safe for concurrent use.
type Sequence struct {
	next map[string]int
}

// NewSequence returns a Sequence starting at 1 for every prefix
func NewSequence() *Sequence {
	return &Sequence{next: make(map[string]int)}
}

// NewID implements Generator
func (s *Sequence) NewID(prefix string) string {
	s.next[prefix]++
	return prefix + "-" + strconv.Itoa(s.next[prefix])
}
