package domain

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Clock supplies the current time. Injectable so that id generation and
// purchase timestamps are deterministic in tests.
type Clock func() time.Time

// hashID derives a prefixed, zero-padded 8-digit identifier from its parts.
// The same parts always produce the same id; callers that need per-call
// variation include a timestamp among the parts.
func hashID(prefix string, parts ...string) string {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'|'})
	}
	return fmt.Sprintf("%s%08d", prefix, h.Sum32()%100_000_000)
}
