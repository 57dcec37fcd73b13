// internal/util/id.go
// Run-correlation IDs. Each covmerge invocation (one merge, or one
// iteration of the watch loop) is tagged with a ULID so its log lines can
// be grouped after the fact; ULIDs sort by mint time, so a
// series of run IDs also lists chronologically.
package util

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu sync.Mutex
	// Monotonic entropy over crypto/rand: IDs minted within the same
	// millisecond stay strictly increasing. The reader is not safe for
	// concurrent use, hence the mutex — the watch loop mints from its own
	// goroutine.
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID mints the next run ID, or an error if the entropy source failed.
func NewRunID() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// MustNewRunID panics when the entropy source fails; covmerge treats a
// broken crypto/rand as unrecoverable.
func MustNewRunID() string {
	s, err := NewRunID()
	if err != nil {
		panic(err)
	}
	return s
}
