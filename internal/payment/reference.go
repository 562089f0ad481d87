package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewTransactionRef builds a globally unique settlement reference of
// the form MOB-<unix-millis>-<uuid>. The millisecond prefix keeps
// references roughly sortable by creation time; the UUID makes
// collisions impossible even within one millisecond.
func NewTransactionRef() string {
	return fmt.Sprintf("MOB-%d-%s", time.Now().UnixMilli(), uuid.NewString())
}
