package element

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Allocator issues document-unique element identifiers and strictly
// increasing paint-order tokens. One allocator belongs to exactly one
// document; resetting it is only valid together with discarding every
// element it has named.
//
// Identifiers combine a readable prefix, a monotonic counter and a random
// uuid fragment. The counter alone guarantees uniqueness within the
// document; the fragment keeps ids unique across documents that are later
// merged by external tools (collision probability is negligible below
// 2^-64 for any realistic element count).
//
// The zero value is ready to use. Allocator is not safe for concurrent
// use, matching the single-writer model of the document it serves.
type Allocator struct {
	counter uint64
}

// NewAllocator returns an allocator starting at zero.
func NewAllocator() *Allocator { return &Allocator{} }

// NextID returns an identifier unique for the document's lifetime.
// The prefix names the element role ("rect", "text", "arrow", "group")
// purely for debuggability; uniqueness does not depend on it.
func (a *Allocator) NextID(prefix string) string {
	if prefix == "" {
		prefix = "element"
	}
	a.counter++
	frag := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", prefix, a.counter, frag)
}

// NextOrderToken returns a paint-order token that sorts strictly after
// every token issued before it. Tokens are fixed-width so lexicographic
// order equals issue order, which keeps re-serialization stable.
func (a *Allocator) NextOrderToken() string {
	a.counter++
	return fmt.Sprintf("a%012d", a.counter)
}

// Reset returns the allocator to its initial state. Only call this when
// clearing the owning document; previously issued ids must not outlive
// the reset.
func (a *Allocator) Reset() { a.counter = 0 }
