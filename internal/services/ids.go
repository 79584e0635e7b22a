package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID builds record identifiers like "txn-1710057600000-1f3a9c2b":
// prefix, creation instant in unix milliseconds, and a random suffix.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
