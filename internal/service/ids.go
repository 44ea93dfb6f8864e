package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID returns prefix-<unix millis>-<8 hex chars>. The random suffix keeps
// two records created in the same millisecond apart.
func newID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), uuid.NewString()[:8])
}
